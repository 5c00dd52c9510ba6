package types

import "strings"

// ErrorCategory classifies a generation failure so the orchestrator can pick
// a user-safe message. The raw error never reaches the caller.
type ErrorCategory string

const (
	ErrorCategoryAuth      ErrorCategory = "auth"
	ErrorCategoryRateLimit ErrorCategory = "rate-limit"
	ErrorCategoryNetwork   ErrorCategory = "network"
	ErrorCategoryOther     ErrorCategory = "other"
)

// String returns the string representation of the error category
func (c ErrorCategory) String() string {
	return string(c)
}

// CategorizeError inspects an error chain and classifies it. Provider SDKs
// surface these failures with differing concrete types, so classification
// relies on well-known status markers in the message text.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryOther
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "authentication"):
		return ErrorCategoryAuth

	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource exhausted"),
		strings.Contains(msg, "too many requests"):
		return ErrorCategoryRateLimit

	case strings.Contains(msg, "network"),
		strings.Contains(msg, "connection"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "unavailable"):
		return ErrorCategoryNetwork

	default:
		return ErrorCategoryOther
	}
}
