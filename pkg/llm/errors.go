package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies model invocation failures.
type ErrorType string

const (
	// ErrorTypeMisconfigured means the invocation credential is missing.
	// Raised before any network call is attempted.
	ErrorTypeMisconfigured ErrorType = "misconfigured"
	// ErrorTypeInvalidOutput means the model responded but the text failed
	// JSON parsing or post-parse schema validation.
	ErrorTypeInvalidOutput ErrorType = "invalid_output"
	// ErrorTypeAuth means the provider rejected the credential.
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeTransport covers network and provider-side failures.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeUnknown is the fallback classification.
	ErrorTypeUnknown ErrorType = "unknown"
)

// rawExcerptLimit bounds how much raw model output an invalid-output error
// carries for diagnostics.
const rawExcerptLimit = 500

// Error is a structured model invocation error.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status code if applicable
	RawExcerpt string // Truncated raw model output for invalid_output errors
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := []string{string(e.Type)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a structured model error.
func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// NewInvalidOutputError creates an invalid-output error carrying a truncated
// prefix of the raw model text for diagnostics.
func NewInvalidOutputError(message string, raw string, cause error) *Error {
	if len(raw) > rawExcerptLimit {
		raw = raw[:rawExcerptLimit]
	}
	return &Error{
		Type:       ErrorTypeInvalidOutput,
		Message:    message,
		RawExcerpt: raw,
		Cause:      cause,
	}
}

// ClassifyError categorizes a provider error into a structured Error.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	switch {
	case strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key"):
		llmErr = NewError(ErrorTypeAuth, "authentication failed", err)
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "context canceled"):
		llmErr = NewError(ErrorTypeTransport, "model service unreachable", err)
	case strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit"):
		llmErr = NewError(ErrorTypeTransport, "rate limited", err)
	case strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504"):
		llmErr = NewError(ErrorTypeTransport, "model service error", err)
	default:
		llmErr = NewError(ErrorTypeUnknown, "model error", err)
	}

	llmErr.StatusCode = statusCode
	return llmErr
}

// TypeOf extracts the ErrorType from an error.
func TypeOf(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
