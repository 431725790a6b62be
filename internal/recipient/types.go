package recipient

import "broadcast-srv/internal/model"

// ChannelValidity is the result of checking one recipient against a set of
// requested channels.
type ChannelValidity struct {
	IsValid         bool
	MissingChannels []model.Channel
}

// ValidateForChannels checks whether a recipient has the contact info each
// requested channel needs. SMS and VOICE require a phone number, EMAIL an
// email address; PUSH has no prerequisite here (token lookup happens at the
// provider).
func ValidateForChannels(r model.Recipient, channels []model.Channel) ChannelValidity {
	var missing []model.Channel

	for _, ch := range channels {
		switch ch {
		case model.ChannelSMS, model.ChannelVoice:
			if !r.HasPhone() {
				missing = append(missing, ch)
			}
		case model.ChannelEmail:
			if !r.HasEmail() {
				missing = append(missing, ch)
			}
		}
	}

	return ChannelValidity{
		IsValid:         len(missing) < len(channels),
		MissingChannels: missing,
	}
}

// FilterValid splits recipients into those reachable over at least one of
// the requested channels and those reachable over none.
func FilterValid(recipients []model.Recipient, channels []model.Channel) (valid, invalid []model.Recipient) {
	for _, r := range recipients {
		if ValidateForChannels(r, channels).IsValid {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
