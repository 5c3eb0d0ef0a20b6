// Package llm adapts the external generative model service. It is a thin,
// single-attempt wrapper: one Invoke call maps to one provider request with
// no retries, backoff, or circuit breaking.
package llm

import "context"

// Mode selects how the model's response is treated.
type Mode string

const (
	// ModeJSONStrict requests constrained JSON output and fails with an
	// invalid-output error when the response does not parse.
	ModeJSONStrict Mode = "json_strict"
	// ModeFreeText returns the fence-stripped text verbatim.
	ModeFreeText Mode = "free_text"
)

// Request describes one model invocation.
type Request struct {
	Prompt string
	System string
	Mode   Mode
	// Model overrides the client's default model when non-empty (the chat
	// route uses the configured fast variant).
	Model string
}

// Invoker sends one prompt to the backing model and returns the cleaned
// response text (valid JSON text in ModeJSONStrict).
// Use this interface for dependency injection to enable mocking in tests.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)

	// DefaultModel returns the configured default model name.
	DefaultModel() string
}
