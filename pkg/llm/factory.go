package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/config"
)

// NewInvoker builds the configured provider client.
func NewInvoker(cfg config.AIConfig, logger *zap.Logger) (Invoker, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, logger), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.BaseURL, cfg.Model, logger), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
