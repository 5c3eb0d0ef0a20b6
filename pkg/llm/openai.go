package llm

import (
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/logging"
)

// OpenAIClient invokes OpenAI-compatible chat completion endpoints.
type OpenAIClient struct {
	client       *openai.Client
	apiKey       string
	defaultModel string
	logger       *zap.Logger
}

// NewOpenAIClient creates an OpenAI-compatible client. An empty API key is
// not an error here; it surfaces as a misconfiguration on first Invoke so
// routes that never reach the model keep working.
func NewOpenAIClient(apiKey, baseURL, defaultModel string, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &OpenAIClient{
		client:       openai.NewClientWithConfig(clientConfig),
		apiKey:       apiKey,
		defaultModel: defaultModel,
		logger:       logger.Named("llm-openai"),
	}
}

// Invoke implements Invoker. Single call, single attempt.
func (c *OpenAIClient) Invoke(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", NewError(ErrorTypeMisconfigured,
			"model API key is not set (set AI_API_KEY)", nil)
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Mode == ModeJSONStrict {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.logger.Debug("model request",
		zap.String("model", model),
		zap.String("mode", string(req.Mode)),
		zap.Int("prompt_len", len(req.Prompt)))

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		c.logger.Error("model request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewInvalidOutputError("no choices in model response", "", nil)
	}

	content := resp.Choices[0].Message.Content
	c.logger.Info("model request completed",
		zap.String("model", model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return finishResponse(content, req.Mode)
}

// DefaultModel implements Invoker.
func (c *OpenAIClient) DefaultModel() string {
	return c.defaultModel
}

// finishResponse strips formatting artifacts and, in strict mode, verifies
// the text parses as JSON before handing it to the caller.
func finishResponse(content string, mode Mode) (string, error) {
	if mode == ModeFreeText {
		return StripCodeFences(content), nil
	}

	jsonStr, ok := ExtractJSON(content)
	if !ok {
		return "", NewInvalidOutputError("model did not return valid JSON", content, nil)
	}
	return jsonStr, nil
}

var _ Invoker = (*OpenAIClient)(nil)
