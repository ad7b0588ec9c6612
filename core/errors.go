package core

import "errors"

// ErrorCode classifies every distinguishable pipeline failure.
// All codes are terminal: the pipeline never retries internally.
type ErrorCode string

const (
	ErrInvalidURL    ErrorCode = "invalid_url"
	ErrFetchFailed   ErrorCode = "fetch_failed"
	ErrTimeout       ErrorCode = "timeout"
	ErrBlocked       ErrorCode = "blocked"
	ErrNotHTML       ErrorCode = "not_html"
	ErrTooLarge      ErrorCode = "too_large"
	ErrParseFailed   ErrorCode = "parse_failed" // reserved, not produced by any current path
	ErrNoProductData ErrorCode = "no_product_data"
)

// ImportError is the single error type crossing stage boundaries.
// Internal extractor failures never surface here; they degrade to
// absent fields instead.
type ImportError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
}

func (e *ImportError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// NewImportError builds an ImportError with the given code and message.
func NewImportError(code ErrorCode, message string) *ImportError {
	return &ImportError{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from err, if it wraps an ImportError.
func CodeOf(err error) (ErrorCode, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Code, true
	}
	return "", false
}
