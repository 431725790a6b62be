package delivery

import (
	"encoding/json"
	"fmt"

	"broadcast-srv/internal/model"
)

const (
	// smsMaxLength is the single-segment SMS limit.
	smsMaxLength = 160

	emailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 16px;">
  <div style="border: 2px solid #c0392b; border-radius: 4px; padding: 16px;">
    <h1 style="color: #c0392b; margin-top: 0;">%s</h1>
    <p style="font-size: 16px; line-height: 1.5;">%s</p>
  </div>
  <p style="font-size: 12px; color: #777;">
    This is an automated emergency notification from your school.
    Do not reply to this message. If this is a life-threatening emergency, call 911.
  </p>
</body>
</html>`
)

type pushPayload struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
	Sound    string `json:"sound"`
}

// FormatForChannel renders the broadcast title and content for one delivery
// medium.
func FormatForChannel(channel model.Channel, title, content string) (string, error) {
	switch channel {
	case model.ChannelSMS:
		return formatSMS(title, content), nil
	case model.ChannelEmail:
		return fmt.Sprintf(emailTemplate, title, content), nil
	case model.ChannelPush:
		payload, err := json.Marshal(pushPayload{
			Title:    title,
			Body:     content,
			Priority: "high",
			Sound:    "emergency_alert",
		})
		if err != nil {
			return "", err
		}
		return string(payload), nil
	case model.ChannelVoice:
		return fmt.Sprintf("%s. %s. I repeat. %s. %s.", title, content, title, content), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChannel, channel)
	}
}

// formatSMS renders "{title}: {content}" capped at a single SMS segment,
// with a "..." suffix when truncated.
func formatSMS(title, content string) string {
	msg := fmt.Sprintf("%s: %s", title, content)
	if len(msg) <= smsMaxLength {
		return msg
	}
	return msg[:smsMaxLength-3] + "..."
}
