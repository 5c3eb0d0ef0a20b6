package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
)

// SuggestionRequest carries one taxonomy suggestion task.
type SuggestionRequest struct {
	UnitName           string
	UnitDescription    string
	SampleComments     []string
	ExistingCategories []models.Category
	Mode               prompts.SuggestionMode
}

// TaxonomyService proposes starter taxonomies and subcategory refinements.
type TaxonomyService interface {
	Suggest(ctx context.Context, req SuggestionRequest) ([]models.DiscoveredCategory, error)
}

type taxonomyService struct {
	invoker     llm.Invoker
	institution string
	logger      *zap.Logger
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(invoker llm.Invoker, institution string, logger *zap.Logger) TaxonomyService {
	return &taxonomyService{
		invoker:     invoker,
		institution: institution,
		logger:      logger.Named("taxonomy-service"),
	}
}

var _ TaxonomyService = (*taxonomyService)(nil)

type aiSuggestionResponse struct {
	Suggestions []models.DiscoveredCategory `json:"suggestions"`
}

func (s *taxonomyService) Suggest(ctx context.Context, req SuggestionRequest) ([]models.DiscoveredCategory, error) {
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("invalid suggestion mode %q", req.Mode)
	}

	prompt := prompts.BuildTaxonomySuggestionPrompt(
		s.institution, req.UnitName, req.UnitDescription,
		req.SampleComments, req.ExistingCategories, req.Mode)

	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.AnalysisSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return nil, fmt.Errorf("taxonomy suggestion invocation: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[aiSuggestionResponse](raw)
	if err != nil {
		return nil, err
	}

	for _, c := range parsed.Suggestions {
		if c.Name == "" {
			return nil, llm.NewInvalidOutputError("suggestion has empty name", raw, nil)
		}
	}

	s.logger.Info("suggested taxonomy entries",
		zap.String("unit", req.UnitName),
		zap.String("mode", string(req.Mode)),
		zap.Int("suggestions", len(parsed.Suggestions)))
	return parsed.Suggestions, nil
}
