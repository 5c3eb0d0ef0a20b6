package llm

import (
	"context"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/logging"
)

// anthropicMaxTokens bounds the response size for report and analysis tasks.
const anthropicMaxTokens = 4096

// AnthropicClient invokes the Anthropic Messages API. Anthropic has no
// server-side JSON response format, so strict mode relies on the prompt's
// JSON-only instruction plus extraction and validation on our side.
type AnthropicClient struct {
	client       *anthropic.Client
	apiKey       string
	defaultModel string
	logger       *zap.Logger
}

// NewAnthropicClient creates an Anthropic-backed client.
func NewAnthropicClient(apiKey, baseURL, defaultModel string, logger *zap.Logger) *AnthropicClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &AnthropicClient{
		client:       anthropic.NewClient(apiKey, opts...),
		apiKey:       apiKey,
		defaultModel: defaultModel,
		logger:       logger.Named("llm-anthropic"),
	}
}

// Invoke implements Invoker. Single call, single attempt.
func (c *AnthropicClient) Invoke(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", NewError(ErrorTypeMisconfigured,
			"model API key is not set (set AI_API_KEY)", nil)
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	c.logger.Debug("model request",
		zap.String("model", model),
		zap.String("mode", string(req.Mode)),
		zap.Int("prompt_len", len(req.Prompt)))

	start := time.Now()
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(model),
		System:    req.System,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(req.Prompt),
		},
	})
	if err != nil {
		c.logger.Error("model request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			content = *block.Text
			break
		}
	}
	if content == "" {
		return "", NewInvalidOutputError("no text content in model response", "", nil)
	}

	c.logger.Info("model request completed",
		zap.String("model", model),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return finishResponse(content, req.Mode)
}

// DefaultModel implements Invoker.
func (c *AnthropicClient) DefaultModel() string {
	return c.defaultModel
}

var _ Invoker = (*AnthropicClient)(nil)
