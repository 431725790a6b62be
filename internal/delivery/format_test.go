package delivery

import (
	"encoding/json"
	"strings"
	"testing"

	"broadcast-srv/internal/model"
)

func TestFormatSMS(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"short", "Fire Drill", "This is a drill."},
		{"exactly at limit", "T", strings.Repeat("a", 157)},
		{"one over limit", "T", strings.Repeat("a", 158)},
		{"far over limit", "Lockdown", strings.Repeat("details ", 100)},
		{"empty content", "Alert", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatForChannel(model.ChannelSMS, tt.title, tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) > 160 {
				t.Errorf("SMS length = %d, must be <= 160", len(got))
			}

			full := tt.title + ": " + tt.content
			if len(full) <= 160 {
				if got != full {
					t.Errorf("got %q, want %q", got, full)
				}
			} else {
				if !strings.HasSuffix(got, "...") {
					t.Errorf("truncated SMS %q missing ... suffix", got)
				}
				if got[:157] != full[:157] {
					t.Errorf("truncated SMS does not preserve prefix")
				}
			}
		})
	}
}

func TestFormatVoiceRepeatsTwice(t *testing.T) {
	got, err := FormatForChannel(model.ChannelVoice, "Evacuation", "Leave the building now")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "Evacuation") != 2 {
		t.Errorf("voice script should speak the title twice: %q", got)
	}
	if strings.Count(got, "Leave the building now") != 2 {
		t.Errorf("voice script should speak the content twice: %q", got)
	}
	if !strings.Contains(got, "I repeat") {
		t.Errorf("voice script missing repeat marker: %q", got)
	}
}

func TestFormatPush(t *testing.T) {
	got, err := FormatForChannel(model.ChannelPush, "Weather Alert", "School closes at noon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatalf("push payload is not valid JSON: %v", err)
	}

	want := map[string]string{
		"title":    "Weather Alert",
		"body":     "School closes at noon",
		"priority": "high",
		"sound":    "emergency_alert",
	}
	for k, v := range want {
		if payload[k] != v {
			t.Errorf("payload[%q] = %q, want %q", k, payload[k], v)
		}
	}
}

func TestFormatEmail(t *testing.T) {
	got, err := FormatForChannel(model.ChannelEmail, "Fire", "Evacuate now")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"Fire", "Evacuate now", "call 911", "<html>"} {
		if !strings.Contains(got, fragment) {
			t.Errorf("email missing %q", fragment)
		}
	}
}

func TestFormatUnsupportedChannel(t *testing.T) {
	if _, err := FormatForChannel(model.Channel("FAX"), "t", "c"); err == nil {
		t.Error("expected error for unsupported channel")
	}
}
