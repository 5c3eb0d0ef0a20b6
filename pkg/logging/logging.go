// Package logging provides the shared zap logger and helpers for keeping
// user-submitted feedback and model output out of full-length log lines.
package logging

import (
	"regexp"

	"go.uber.org/zap"
)

const (
	// MaxExcerptLength is the longest slice of raw model output or user
	// text that may appear in a log line.
	MaxExcerptLength = 200

	// RedactedText is the replacement text for sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// Matches credential material that can leak through upstream error
	// strings (api_key=..., Bearer tokens, user:pass@host URLs).
	apiKeyPattern     = regexp.MustCompile(`(?i)(api[_-]?key|apikey|key|password|pwd)=[^;&\s]+`)
	bearerPattern     = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)
	connStringPattern = regexp.MustCompile(`://[^:]+:[^@]+@[^/\s]+`)
)

// New builds the process logger. The local environment gets the development
// console encoder; everything else logs production JSON.
func New(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// SanitizeError sanitizes error text that might contain credentials before
// it is logged. Use this for errors returned by the model client or database.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	s := apiKeyPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	s = bearerPattern.ReplaceAllString(s, "Bearer "+RedactedText)
	s = connStringPattern.ReplaceAllString(s, "://"+RedactedText+"@"+RedactedText)
	return s
}

// Truncate shortens s to maxLen and appends an ellipsis when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Excerpt truncates raw model output or user text to the standard log length.
func Excerpt(s string) string {
	return Truncate(s, MaxExcerptLength)
}
