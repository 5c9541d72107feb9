package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/config"
)

// Default endpoints for the OpenAI-compatible providers.
const (
	openAIEndpoint     = "https://api.openai.com/v1"
	grokEndpoint       = "https://api.x.ai/v1"
	perplexityEndpoint = "https://api.perplexity.ai"
)

// NewOracleClient builds the configured oracle client. OpenAI, Grok, and
// Perplexity share the OpenAI-compatible Client with different base URLs;
// Anthropic gets its own client.
func NewOracleClient(cfg *config.OracleConfig, logger *zap.Logger) (OracleClient, error) {
	if cfg.Provider == "anthropic" {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ORACLE_API_KEY is required for provider anthropic")
		}
		return NewAnthropicClient(cfg.APIKey, cfg.Model, logger), nil
	}

	endpoint := cfg.BaseURL
	if endpoint == "" {
		switch cfg.Provider {
		case "openai":
			endpoint = openAIEndpoint
		case "grok":
			endpoint = grokEndpoint
		case "perplexity":
			endpoint = perplexityEndpoint
		default:
			return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
		}
	}

	return NewClient(&ClientConfig{
		Endpoint: endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}, logger)
}
