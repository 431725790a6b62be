package broadcast

import "errors"

var (
	// ErrBroadcastNotFound is returned when the broadcast id does not resolve.
	ErrBroadcastNotFound = errors.New("broadcast not found")
	// ErrInvalidTransition is returned for a lifecycle transition out of a
	// terminal state, e.g. sending a cancelled broadcast.
	ErrInvalidTransition = errors.New("invalid broadcast status transition")
	// ErrSendInProgress is returned when another send holds the lock.
	ErrSendInProgress = errors.New("broadcast send already in progress")
	// ErrNotSent is returned when acknowledging a broadcast that has not
	// been sent yet.
	ErrNotSent = errors.New("broadcast has not been sent")
	// ErrAckNotRequired is returned when acknowledging a broadcast that does
	// not request acknowledgments.
	ErrAckNotRequired = errors.New("broadcast does not require acknowledgment")
	// ErrRecipientResolution is returned when the recipient directory fails.
	// Resolver failures abort the send: silently broadcasting to nobody is
	// not acceptable for an emergency system.
	ErrRecipientResolution = errors.New("recipient resolution failed")
)
