package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
)

// DiscoveryRequest carries a category discovery batch.
type DiscoveryRequest struct {
	UnitName          string
	CurrentCategories []models.Category
	Instructions      []string
	Comments          []string
}

// DiscoveryService proposes new taxonomy categories from uncategorized
// comments.
type DiscoveryService interface {
	DiscoverCategories(ctx context.Context, req DiscoveryRequest) ([]models.DiscoveredCategory, error)
}

type discoveryService struct {
	invoker     llm.Invoker
	institution string
	logger      *zap.Logger
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(invoker llm.Invoker, institution string, logger *zap.Logger) DiscoveryService {
	return &discoveryService{
		invoker:     invoker,
		institution: institution,
		logger:      logger.Named("discovery-service"),
	}
}

var _ DiscoveryService = (*discoveryService)(nil)

type aiDiscoveryResponse struct {
	Categories []models.DiscoveredCategory `json:"categories"`
}

func (s *discoveryService) DiscoverCategories(ctx context.Context, req DiscoveryRequest) ([]models.DiscoveredCategory, error) {
	prompt := prompts.BuildCategoryDiscoveryPrompt(
		s.institution, req.UnitName, req.CurrentCategories, req.Instructions, req.Comments)

	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.AnalysisSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery invocation: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[aiDiscoveryResponse](raw)
	if err != nil {
		return nil, err
	}

	// Proposals that merely repeat an existing category are filtered so the
	// caller only sees genuine extensions.
	existing := make(map[string]struct{}, len(req.CurrentCategories))
	for _, c := range req.CurrentCategories {
		existing[c.Name] = struct{}{}
	}

	var out []models.DiscoveredCategory
	for _, c := range parsed.Categories {
		if c.Name == "" {
			return nil, llm.NewInvalidOutputError("discovered category has empty name", raw, nil)
		}
		if _, dup := existing[c.Name]; dup {
			s.logger.Debug("dropping duplicate category proposal", zap.String("name", c.Name))
			continue
		}
		out = append(out, c)
	}

	s.logger.Info("discovered categories",
		zap.String("unit", req.UnitName),
		zap.Int("proposals", len(out)))
	return out, nil
}
