package errors

const (
	// MessageNotFound is the default message for 404 errors.
	MessageNotFound = "Resource not found"
	// MessageBadRequest is the default message for 400 errors.
	MessageBadRequest = "Bad request"
)
