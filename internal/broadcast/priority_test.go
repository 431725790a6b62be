package broadcast

import (
	"testing"
	"time"

	"broadcast-srv/internal/model"
)

func TestDeterminePriority(t *testing.T) {
	tests := []struct {
		emergencyType model.EmergencyType
		want          model.Priority
	}{
		{model.EmergencyActiveThreat, model.PriorityCritical},
		{model.EmergencyMedical, model.PriorityCritical},
		{model.EmergencyFire, model.PriorityCritical},
		{model.EmergencyNaturalDisaster, model.PriorityCritical},
		{model.EmergencyLockdown, model.PriorityHigh},
		{model.EmergencyEvacuation, model.PriorityHigh},
		{model.EmergencyShelterInPlace, model.PriorityHigh},
		{model.EmergencyWeatherAlert, model.PriorityMedium},
		{model.EmergencyTransportation, model.PriorityMedium},
		{model.EmergencyFacilityIssue, model.PriorityMedium},
		{model.EmergencyEarlyDismissal, model.PriorityLow},
		{model.EmergencySchoolClosure, model.PriorityLow},
		{model.EmergencyGeneralAnnouncement, model.PriorityLow},
		// Unknown types classify as LOW rather than erroring
		{model.EmergencyType("ALIEN_INVASION"), model.PriorityLow},
		{model.EmergencyType(""), model.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.emergencyType), func(t *testing.T) {
			if got := DeterminePriority(tt.emergencyType); got != tt.want {
				t.Errorf("DeterminePriority(%q) = %q, want %q", tt.emergencyType, got, tt.want)
			}
		})
	}
}

func TestDeterminePriorityTotal(t *testing.T) {
	// Every enum value must resolve to a valid tier.
	for _, et := range model.EmergencyTypes {
		if p := DeterminePriority(et); !model.IsValidPriority(p) {
			t.Errorf("DeterminePriority(%q) = %q, not a valid priority", et, p)
		}
	}
}

func TestDefaultChannels(t *testing.T) {
	tests := []struct {
		priority model.Priority
		want     []model.Channel
	}{
		{model.PriorityCritical, []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelPush, model.ChannelVoice}},
		{model.PriorityHigh, []model.Channel{model.ChannelSMS, model.ChannelEmail, model.ChannelPush}},
		{model.PriorityMedium, []model.Channel{model.ChannelEmail, model.ChannelPush}},
		{model.PriorityLow, []model.Channel{model.ChannelEmail}},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			got := DefaultChannels(tt.priority)
			if len(got) != len(tt.want) {
				t.Fatalf("DefaultChannels(%q) = %v, want %v", tt.priority, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("DefaultChannels(%q)[%d] = %q, want %q", tt.priority, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDefaultExpiration(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	if got := DefaultExpiration(model.PriorityCritical, now); !got.Equal(now.Add(time.Hour)) {
		t.Errorf("CRITICAL expiration = %v, want %v", got, now.Add(time.Hour))
	}
	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if got := DefaultExpiration(p, now); !got.Equal(now.Add(24 * time.Hour)) {
			t.Errorf("%s expiration = %v, want %v", p, got, now.Add(24*time.Hour))
		}
	}
}

func TestValidateChannels(t *testing.T) {
	tests := []struct {
		name     string
		priority model.Priority
		channels []model.Channel
		wantOK   bool
	}{
		{"critical with sms", model.PriorityCritical, []model.Channel{model.ChannelSMS}, true},
		{"critical with voice only", model.PriorityCritical, []model.Channel{model.ChannelVoice}, true},
		{"critical email only warns", model.PriorityCritical, []model.Channel{model.ChannelEmail}, false},
		{"high without sms warns", model.PriorityHigh, []model.Channel{model.ChannelEmail, model.ChannelPush}, false},
		{"high with sms", model.PriorityHigh, []model.Channel{model.ChannelSMS}, true},
		{"low email only", model.PriorityLow, []model.Channel{model.ChannelEmail}, true},
		{"empty channels warns", model.PriorityLow, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, warnings := ValidateChannels(tt.priority, tt.channels)
			if ok != tt.wantOK {
				t.Errorf("ValidateChannels(%q, %v) ok = %v, want %v (warnings: %v)",
					tt.priority, tt.channels, ok, tt.wantOK, warnings)
			}
			if !ok && len(warnings) == 0 {
				t.Error("not ok but no warnings returned")
			}
		})
	}
}
