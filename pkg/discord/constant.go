package discord

import (
	"errors"
	"time"
)

const (
	webhookURLTemplate = "https://discord.com/api/webhooks/%s/%s"

	// DefaultTimeout is the per-request timeout for webhook calls.
	DefaultTimeout = 10 * time.Second
	// DefaultRetryCount is how many times a failed webhook call is retried.
	DefaultRetryCount = 2
	// DefaultRetryDelay is the delay between webhook retries.
	DefaultRetryDelay = time.Second
	// DefaultUsername is the webhook display name.
	DefaultUsername = "Broadcast Service"

	// MaxMessageLength is Discord's content length limit.
	MaxMessageLength = 2000
	// MaxFieldLength is Discord's embed field value limit.
	MaxFieldLength = 1024
)

var errWebhookRequired = errors.New("discord: webhook is required")

var messageColors = map[MessageType]int{
	MessageTypeInfo:    0x3498DB,
	MessageTypeSuccess: 0x2ECC71,
	MessageTypeWarning: 0xFFA500,
	MessageTypeError:   0xFF0000,
}
