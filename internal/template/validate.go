package template

import (
	"regexp"
	"strings"
)

const (
	// MaxTitleLength caps broadcast titles.
	MaxTitleLength = 100
	// MaxMessageLength caps broadcast message bodies.
	MaxMessageLength = 1000
)

// blockedPatterns is a conservative content-safety net against HTML/script
// injection, not a full sanitizer.
var blockedPatterns = []string{
	"<script",
	"javascript:",
	"<iframe",
	"<object",
	"<embed",
}

var eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)

// ValidationResult reports template content problems.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// Validate checks title/message content for emptiness, length, and the
// injection blocklist.
func Validate(title, message string) ValidationResult {
	var errs []string

	if strings.TrimSpace(title) == "" {
		errs = append(errs, "title must not be empty")
	} else if len(title) > MaxTitleLength {
		errs = append(errs, "title exceeds maximum length")
	}

	if strings.TrimSpace(message) == "" {
		errs = append(errs, "message must not be empty")
	} else if len(message) > MaxMessageLength {
		errs = append(errs, "message exceeds maximum length")
	}

	for _, content := range []string{title, message} {
		lowered := strings.ToLower(content)
		for _, pattern := range blockedPatterns {
			if strings.Contains(lowered, pattern) {
				errs = append(errs, "content contains blocked pattern: "+pattern)
			}
		}
		if eventHandlerPattern.MatchString(content) {
			errs = append(errs, "content contains an inline event handler")
		}
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
