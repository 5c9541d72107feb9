package llm

import (
	"context"
)

// MockOracleClient is a configurable test double for oracle-backed code.
// Set the function fields to control behavior in tests.
type MockOracleClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns an empty result and nil error.
	CompleteFunc func(ctx context.Context, prompt string, systemMessage string, temperature float64) (*CompletionResult, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// CompleteCalls counts invocations for verification.
	CompleteCalls int
}

// NewMockOracleClient creates a new mock with sensible defaults.
func NewMockOracleClient() *MockOracleClient {
	return &MockOracleClient{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

// Complete implements OracleClient.
func (m *MockOracleClient) Complete(ctx context.Context, prompt string, systemMessage string, temperature float64) (*CompletionResult, error) {
	m.CompleteCalls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage, temperature)
	}
	return &CompletionResult{}, nil
}

// GetModel implements OracleClient.
func (m *MockOracleClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetEndpoint implements OracleClient.
func (m *MockOracleClient) GetEndpoint() string {
	if m.Endpoint == "" {
		return "http://mock-endpoint"
	}
	return m.Endpoint
}

// Reset clears call tracking counters.
func (m *MockOracleClient) Reset() {
	m.CompleteCalls = 0
}

// Ensure MockOracleClient implements OracleClient at compile time.
var _ OracleClient = (*MockOracleClient)(nil)
