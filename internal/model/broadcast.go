package model

import "time"

// EmergencyType classifies what kind of emergency a broadcast announces.
type EmergencyType string

const (
	EmergencyActiveThreat        EmergencyType = "ACTIVE_THREAT"
	EmergencyMedical             EmergencyType = "MEDICAL_EMERGENCY"
	EmergencyFire                EmergencyType = "FIRE"
	EmergencyNaturalDisaster     EmergencyType = "NATURAL_DISASTER"
	EmergencyLockdown            EmergencyType = "LOCKDOWN"
	EmergencyEvacuation          EmergencyType = "EVACUATION"
	EmergencyShelterInPlace      EmergencyType = "SHELTER_IN_PLACE"
	EmergencyWeatherAlert        EmergencyType = "WEATHER_ALERT"
	EmergencyTransportation      EmergencyType = "TRANSPORTATION"
	EmergencyFacilityIssue       EmergencyType = "FACILITY_ISSUE"
	EmergencyEarlyDismissal      EmergencyType = "EARLY_DISMISSAL"
	EmergencySchoolClosure       EmergencyType = "SCHOOL_CLOSURE"
	EmergencyGeneralAnnouncement EmergencyType = "GENERAL_ANNOUNCEMENT"
)

// EmergencyTypes lists every known emergency type.
var EmergencyTypes = []EmergencyType{
	EmergencyActiveThreat,
	EmergencyMedical,
	EmergencyFire,
	EmergencyNaturalDisaster,
	EmergencyLockdown,
	EmergencyEvacuation,
	EmergencyShelterInPlace,
	EmergencyWeatherAlert,
	EmergencyTransportation,
	EmergencyFacilityIssue,
	EmergencyEarlyDismissal,
	EmergencySchoolClosure,
	EmergencyGeneralAnnouncement,
}

// IsValidEmergencyType reports whether t is a known emergency type.
func IsValidEmergencyType(t EmergencyType) bool {
	for _, known := range EmergencyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority is the severity tier driving default channel selection and expiration.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// IsValidPriority reports whether p is a known priority tier.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Channel is a delivery medium.
type Channel string

const (
	ChannelSMS   Channel = "SMS"
	ChannelEmail Channel = "EMAIL"
	ChannelPush  Channel = "PUSH"
	ChannelVoice Channel = "VOICE"
)

// IsValidChannel reports whether c is a known delivery channel.
func IsValidChannel(c Channel) bool {
	switch c {
	case ChannelSMS, ChannelEmail, ChannelPush, ChannelVoice:
		return true
	}
	return false
}

// BroadcastStatus is the lifecycle state of a broadcast.
// Transitions are one-directional: DRAFT -> SENDING -> SENT, or
// DRAFT/SENDING -> CANCELLED, or SENDING -> FAILED. SENT, CANCELLED and
// FAILED are terminal.
type BroadcastStatus string

const (
	BroadcastDraft     BroadcastStatus = "DRAFT"
	BroadcastSending   BroadcastStatus = "SENDING"
	BroadcastSent      BroadcastStatus = "SENT"
	BroadcastCancelled BroadcastStatus = "CANCELLED"
	BroadcastFailed    BroadcastStatus = "FAILED"
)

// Audience is a targeting group for a broadcast.
type Audience string

const (
	AudienceAllParents        Audience = "ALL_PARENTS"
	AudienceAllStaff          Audience = "ALL_STAFF"
	AudienceAllStudents       Audience = "ALL_STUDENTS"
	AudienceSpecificGrade     Audience = "SPECIFIC_GRADE"
	AudienceSpecificClass     Audience = "SPECIFIC_CLASS"
	AudienceSpecificGroups    Audience = "SPECIFIC_GROUPS"
	AudienceEmergencyContacts Audience = "EMERGENCY_CONTACTS"
)

// IsValidAudience reports whether a is a known audience value.
func IsValidAudience(a Audience) bool {
	switch a {
	case AudienceAllParents, AudienceAllStaff, AudienceAllStudents,
		AudienceSpecificGrade, AudienceSpecificClass, AudienceSpecificGroups,
		AudienceEmergencyContacts:
		return true
	}
	return false
}

// EmergencyBroadcast is a single emergency notification campaign.
//
// Aggregate counters are monotonic non-decreasing during a single send and
// DeliveredCount + FailedCount never exceeds TotalRecipients.
type EmergencyBroadcast struct {
	ID       string        `json:"id"`
	Type     EmergencyType `json:"type"`
	Priority Priority      `json:"priority"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`

	Audience   []Audience `json:"audience"`
	SchoolID   *string    `json:"school_id,omitempty"`
	GradeLevel *int       `json:"grade_level,omitempty"`
	ClassID    *string    `json:"class_id,omitempty"`
	GroupIDs   []string   `json:"group_ids,omitempty"`

	Channels               []Channel `json:"channels"`
	RequiresAcknowledgment bool      `json:"requires_acknowledgment"`
	ExpiresAt              time.Time `json:"expires_at"`

	SentBy string          `json:"sent_by"`
	Status BroadcastStatus `json:"status"`

	TotalRecipients   int `json:"total_recipients"`
	DeliveredCount    int `json:"delivered_count"`
	FailedCount       int `json:"failed_count"`
	AcknowledgedCount int `json:"acknowledged_count"`

	CancelReason *string    `json:"cancel_reason,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasChannel reports whether the broadcast targets the given channel.
func (b EmergencyBroadcast) HasChannel(c Channel) bool {
	for _, ch := range b.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the broadcast reached a terminal state.
func (b EmergencyBroadcast) IsTerminal() bool {
	switch b.Status {
	case BroadcastSent, BroadcastCancelled, BroadcastFailed:
		return true
	}
	return false
}

// IsExpired reports whether the broadcast passed its expiration at the given time.
func (b EmergencyBroadcast) IsExpired(now time.Time) bool {
	return !b.ExpiresAt.IsZero() && now.After(b.ExpiresAt)
}
