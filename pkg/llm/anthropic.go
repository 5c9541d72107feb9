package llm

import (
	"context"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

const anthropicEndpoint = "https://api.anthropic.com/v1"

// anthropicMaxTokens bounds completion length; characterization and scoring
// replies are small JSON objects well under this.
const anthropicMaxTokens = 2000

// AnthropicClient provides oracle completions backed by the Anthropic
// Messages API. It satisfies the same OracleClient interface as the
// OpenAI-compatible Client.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a new Anthropic-backed oracle client.
func NewAnthropicClient(apiKey, model string, logger *zap.Logger) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  model,
		logger: logger.Named("oracle"),
	}
}

// Complete generates a chat completion response via the Messages API.
func (c *AnthropicClient) Complete(
	ctx context.Context,
	prompt string,
	systemMessage string,
	temperature float64,
) (*CompletionResult, error) {
	temp := float32(temperature)

	c.logger.Debug("oracle request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemMessage,
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		c.logger.Error("oracle request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, ClassifyError(err)
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			content = *block.Text
			break
		}
	}
	if content == "" {
		return nil, NewError(ErrorTypeMalformed, "no text content in response", false, nil)
	}

	c.logger.Debug("oracle request completed",
		zap.Int("prompt_tokens", resp.Usage.InputTokens),
		zap.Int("completion_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Content:          content,
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
		TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.model
}

// GetEndpoint returns the Anthropic API endpoint.
func (c *AnthropicClient) GetEndpoint() string {
	return anthropicEndpoint
}

// Ensure AnthropicClient implements OracleClient at compile time.
var _ OracleClient = (*AnthropicClient)(nil)
