package broadcast

import (
	"fmt"
	"time"

	"broadcast-srv/internal/model"
)

// priorityTable maps each emergency type to its severity tier. Types missing
// from the table classify as LOW.
var priorityTable = map[model.EmergencyType]model.Priority{
	model.EmergencyActiveThreat:    model.PriorityCritical,
	model.EmergencyMedical:         model.PriorityCritical,
	model.EmergencyFire:            model.PriorityCritical,
	model.EmergencyNaturalDisaster: model.PriorityCritical,

	model.EmergencyLockdown:       model.PriorityHigh,
	model.EmergencyEvacuation:     model.PriorityHigh,
	model.EmergencyShelterInPlace: model.PriorityHigh,

	model.EmergencyWeatherAlert:   model.PriorityMedium,
	model.EmergencyTransportation: model.PriorityMedium,
	model.EmergencyFacilityIssue:  model.PriorityMedium,
}

// DeterminePriority maps an emergency type to its priority tier.
// Total over the enum domain: unknown types classify as LOW.
func DeterminePriority(t model.EmergencyType) model.Priority {
	if p, ok := priorityTable[t]; ok {
		return p
	}
	return model.PriorityLow
}

// DefaultChannels returns the advisory channel set for a priority tier.
// Callers may override with an explicit channel list.
func DefaultChannels(p model.Priority) []model.Channel {
	switch p {
	case model.PriorityCritical:
		return []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelPush, model.ChannelVoice}
	case model.PriorityHigh:
		return []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelPush}
	case model.PriorityMedium:
		return []model.Channel{model.ChannelEmail, model.ChannelPush}
	default:
		return []model.Channel{model.ChannelEmail}
	}
}

// DefaultExpiration returns the default expiration for a priority tier:
// one hour for CRITICAL, 24 hours otherwise.
func DefaultExpiration(p model.Priority, now time.Time) time.Time {
	if p == model.PriorityCritical {
		return now.Add(time.Hour)
	}
	return now.Add(24 * time.Hour)
}

// ValidateChannels performs an advisory check of a priority/channel
// combination. Warnings never reject the broadcast.
func ValidateChannels(p model.Priority, channels []model.Channel) (bool, []string) {
	var warnings []string

	has := func(c model.Channel) bool {
		for _, ch := range channels {
			if ch == c {
				return true
			}
		}
		return false
	}

	if len(channels) == 0 {
		warnings = append(warnings, "no delivery channels selected")
	}

	if p == model.PriorityCritical && !has(model.ChannelSMS) && !has(model.ChannelVoice) {
		warnings = append(warnings, fmt.Sprintf("%s broadcast without SMS or VOICE may not reach recipients promptly", p))
	}
	if p == model.PriorityHigh && !has(model.ChannelSMS) {
		warnings = append(warnings, fmt.Sprintf("%s broadcast without SMS may not reach recipients promptly", p))
	}

	return len(warnings) == 0, warnings
}
