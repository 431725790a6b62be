package gateway

import (
	"net/http"
	"time"
)

// Config points the senders at the school district's communication relay.
// Each channel posts to its own endpoint under BaseURL.
type Config struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	FromName    string
	Timeout     time.Duration
}

const defaultTimeout = 10 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
