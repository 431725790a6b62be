package response

const (
	DefaultStackTraceDepth = 32
	DefaultErrorMessage    = "Something went wrong"
	MessageSuccess         = "Success"

	ValidationErrorCode = 400
	ValidationErrorMsg  = "Validation error"

	InternalServerErrorCode = 500

	DateTimeFormat = "2006-01-02 15:04:05"
)
