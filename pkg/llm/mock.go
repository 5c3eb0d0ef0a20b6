package llm

import "context"

// MockInvoker is a configurable mock for testing model-backed services.
// Set the function field to control behavior in tests.
type MockInvoker struct {
	// InvokeFunc is called when Invoke is invoked. If nil, returns "{}".
	InvokeFunc func(ctx context.Context, req Request) (string, error)

	// Model is returned by DefaultModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification.
	InvokeCalls []Request
}

// NewMockInvoker creates a new mock with sensible defaults.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{Model: "mock-model"}
}

// Invoke implements Invoker.
func (m *MockInvoker) Invoke(ctx context.Context, req Request) (string, error) {
	m.InvokeCalls = append(m.InvokeCalls, req)
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, req)
	}
	return "{}", nil
}

// DefaultModel implements Invoker.
func (m *MockInvoker) DefaultModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// Reset clears call tracking.
func (m *MockInvoker) Reset() {
	m.InvokeCalls = nil
}

var _ Invoker = (*MockInvoker)(nil)
