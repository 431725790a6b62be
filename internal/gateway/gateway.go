package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// client is the shared relay HTTP client behind every channel sender.
type client struct {
	cfg        Config
	httpClient *http.Client
}

func newClient(cfg Config) *client {
	return &client{
		cfg:        cfg,
		httpClient: newHTTPClient(cfg.Timeout),
	}
}

// post sends one JSON payload to a relay endpoint and maps non-2xx
// responses to errors.
func (c *client) post(ctx context.Context, endpoint string, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := c.cfg.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &errResp)
		if errResp.Message != "" {
			return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	return nil
}
