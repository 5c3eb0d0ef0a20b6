package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/jsonutil"
	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
)

// ColumnType is the closed set of column classifications for survey uploads.
type ColumnType string

const (
	ColumnFeedback ColumnType = "feedback"
	ColumnRating   ColumnType = "rating"
	ColumnMetadata ColumnType = "metadata"
	ColumnIgnore   ColumnType = "ignore"
)

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnFeedback, ColumnRating, ColumnMetadata, ColumnIgnore:
		return true
	}
	return false
}

// ColumnMapping is the resolved mapping for one spreadsheet column.
type ColumnMapping struct {
	UnitID *int64     `json:"unit_id"`
	Type   ColumnType `json:"type"`
	Rule   string     `json:"rule,omitempty"`
}

// IdentityMapping lists which headers identify the respondent.
type IdentityMapping struct {
	Location []string `json:"location"`
	Faculty  []string `json:"faculty"`
	Major    []string `json:"major"`
	Year     []string `json:"year"`
}

// MappingService maps uploaded survey columns to units, types, and identity
// fields.
type MappingService interface {
	MapColumns(ctx context.Context, headers []string, samples map[string][]string, units []models.OrganizationUnit) (map[string]ColumnMapping, error)
	MapIdentityColumns(ctx context.Context, headers []string) (IdentityMapping, error)
}

type mappingService struct {
	invoker     llm.Invoker
	institution string
	logger      *zap.Logger
}

// NewMappingService creates a new MappingService.
func NewMappingService(invoker llm.Invoker, institution string, logger *zap.Logger) MappingService {
	return &mappingService{
		invoker:     invoker,
		institution: institution,
		logger:      logger.Named("mapping-service"),
	}
}

var _ MappingService = (*mappingService)(nil)

type aiColumnMapping struct {
	UnitID *jsonutil.FlexibleInt64 `json:"unit_id"`
	Type   string                  `json:"type"`
	Rule   string                  `json:"rule"`
}

type aiColumnMappingResponse struct {
	Mappings map[string]aiColumnMapping `json:"mappings"`
}

func (s *mappingService) MapColumns(ctx context.Context, headers []string, samples map[string][]string, units []models.OrganizationUnit) (map[string]ColumnMapping, error) {
	prompt := prompts.BuildColumnMappingPrompt(s.institution, headers, samples, units)

	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.AnalysisSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return nil, fmt.Errorf("column mapping invocation: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[aiColumnMappingResponse](raw)
	if err != nil {
		return nil, err
	}

	knownUnits := make(map[int64]struct{}, len(units))
	for _, u := range units {
		knownUnits[u.ID] = struct{}{}
	}

	out := make(map[string]ColumnMapping, len(headers))
	for _, h := range headers {
		m, ok := parsed.Mappings[h]
		if !ok {
			// A header the model skipped maps to ignore rather than
			// failing the upload.
			out[h] = ColumnMapping{Type: ColumnIgnore}
			continue
		}

		colType := ColumnType(m.Type)
		if !colType.Valid() {
			return nil, llm.NewInvalidOutputError(
				fmt.Sprintf("column %q has invalid type %q", h, m.Type), raw, nil)
		}

		mapping := ColumnMapping{Type: colType, Rule: m.Rule}
		if m.UnitID != nil {
			id := m.UnitID.Int64()
			if _, known := knownUnits[id]; known {
				mapping.UnitID = &id
			} else {
				// A unit id not in the supplied list is fabricated;
				// null it instead of trusting it.
				s.logger.Warn("dropping fabricated unit id from column mapping",
					zap.String("header", h), zap.Int64("unit_id", id))
			}
		}
		out[h] = mapping
	}

	return out, nil
}

type aiIdentityResponse struct {
	Mapping IdentityMapping `json:"mapping"`
}

func (s *mappingService) MapIdentityColumns(ctx context.Context, headers []string) (IdentityMapping, error) {
	prompt := prompts.BuildIdentityMappingPrompt(headers)

	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.AnalysisSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return IdentityMapping{}, fmt.Errorf("identity mapping invocation: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[aiIdentityResponse](raw)
	if err != nil {
		return IdentityMapping{}, err
	}

	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}

	// Headers the model did not copy exactly are dropped, never guessed.
	filter := func(in []string) []string {
		var out []string
		for _, h := range in {
			if _, ok := known[h]; ok {
				out = append(out, h)
			}
		}
		return out
	}

	return IdentityMapping{
		Location: filter(parsed.Mapping.Location),
		Faculty:  filter(parsed.Mapping.Faculty),
		Major:    filter(parsed.Mapping.Major),
		Year:     filter(parsed.Mapping.Year),
	}, nil
}
