package model

// RecipientType classifies a resolved addressable target.
type RecipientType string

const (
	RecipientStudent RecipientType = "STUDENT"
	RecipientParent  RecipientType = "PARENT"
	RecipientStaff   RecipientType = "STAFF"
)

// Recipient is a resolved addressable target with contact info.
// Recipients are transient: resolved fresh on each send and never persisted.
type Recipient struct {
	ID    string        `json:"id"`
	Type  RecipientType `json:"type"`
	Name  string        `json:"name"`
	Phone string        `json:"phone,omitempty"`
	Email string        `json:"email,omitempty"`
}

// HasPhone reports whether the recipient can be reached over SMS or VOICE.
func (r Recipient) HasPhone() bool {
	return r.Phone != ""
}

// HasEmail reports whether the recipient can be reached over EMAIL.
func (r Recipient) HasEmail() bool {
	return r.Email != ""
}
