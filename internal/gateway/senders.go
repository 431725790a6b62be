package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
)

// SMSSender posts single-segment text messages to the relay's SMS endpoint.
type SMSSender struct{ c *client }

// EmailSender posts rendered HTML messages to the relay's email endpoint.
type EmailSender struct{ c *client }

// PushSender posts structured push payloads to the relay's push endpoint.
type PushSender struct{ c *client }

// VoiceSender posts text-to-speech scripts to the relay's voice endpoint.
type VoiceSender struct{ c *client }

var (
	_ delivery.Sender = (*SMSSender)(nil)
	_ delivery.Sender = (*EmailSender)(nil)
	_ delivery.Sender = (*PushSender)(nil)
	_ delivery.Sender = (*VoiceSender)(nil)
)

// NewSenders builds one sender per supported channel over a shared relay
// client.
func NewSenders(cfg Config) []delivery.Sender {
	c := newClient(cfg)
	return []delivery.Sender{
		&SMSSender{c: c},
		&EmailSender{c: c},
		&PushSender{c: c},
		&VoiceSender{c: c},
	}
}

func (s *SMSSender) Channel() model.Channel { return model.ChannelSMS }

func (s *SMSSender) Send(ctx context.Context, req delivery.SendRequest) error {
	return s.c.post(ctx, "/v1/sms", map[string]any{
		"to":           req.Recipient.Phone,
		"body":         req.Payload,
		"reference_id": req.BroadcastID,
	})
}

func (s *EmailSender) Channel() model.Channel { return model.ChannelEmail }

func (s *EmailSender) Send(ctx context.Context, req delivery.SendRequest) error {
	from := s.c.cfg.FromAddress
	if s.c.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.c.cfg.FromName, s.c.cfg.FromAddress)
	}
	return s.c.post(ctx, "/v1/email", map[string]any{
		"from":         from,
		"to":           []string{req.Recipient.Email},
		"subject":      req.Title,
		"html":         req.Payload,
		"reference_id": req.BroadcastID,
	})
}

func (s *PushSender) Channel() model.Channel { return model.ChannelPush }

func (s *PushSender) Send(ctx context.Context, req delivery.SendRequest) error {
	// The formatted payload is already the structured push message.
	var notification json.RawMessage = []byte(req.Payload)
	return s.c.post(ctx, "/v1/push", map[string]any{
		"user_id":      req.Recipient.ID,
		"notification": notification,
		"reference_id": req.BroadcastID,
	})
}

func (s *VoiceSender) Channel() model.Channel { return model.ChannelVoice }

func (s *VoiceSender) Send(ctx context.Context, req delivery.SendRequest) error {
	return s.c.post(ctx, "/v1/voice", map[string]any{
		"to":           req.Recipient.Phone,
		"script":       req.Payload,
		"reference_id": req.BroadcastID,
	})
}
