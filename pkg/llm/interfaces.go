// Package llm provides the oracle client layer: OpenAI-compatible and
// Anthropic chat completion clients behind a single capability interface,
// plus the error classification, JSON extraction, bounded fan-out, and
// circuit breaking the matching pipeline builds on.
package llm

import (
	"context"
)

// CompletionResult holds an oracle completion with usage stats.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// OracleClient is the capability interface for the analysis and scoring
// oracles. Any backend that maps (prompt, system message) to structured
// text satisfies it. Use this interface for dependency injection to enable
// deterministic test doubles.
type OracleClient interface {
	// Complete generates a chat completion for the prompt.
	Complete(ctx context.Context, prompt string, systemMessage string, temperature float64) (*CompletionResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}
