package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/jsonutil"
	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/logging"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
	"github.com/campus-pulse/insight-engine/pkg/reconcile"
)

// AnalysisResult groups the segments extracted from one comment. Comments
// that produced no segments (noise) have no entry.
type AnalysisResult struct {
	RawInputID int64            `json:"raw_input_id"`
	Segments   []models.Segment `json:"segments"`
}

// AnalyzeRequest carries one segmentation batch.
type AnalyzeRequest struct {
	Unit     prompts.UnitContext
	Taxonomy models.Taxonomy
	AllUnits []models.OrganizationUnit
	Comments []models.RawFeedbackInput
}

// AnalysisService segments and classifies batches of raw comments.
type AnalysisService interface {
	// Analyze runs segmentation and classification, returning raw
	// (unreconciled) segments grouped per comment.
	Analyze(ctx context.Context, req AnalyzeRequest) ([]AnalysisResult, error)

	// Classify runs Analyze and reconciles every segment against the
	// request's taxonomy and unit list, returning a flat result set.
	Classify(ctx context.Context, req AnalyzeRequest) ([]models.ReconciledSegment, error)
}

type analysisService struct {
	invoker     llm.Invoker
	institution string
	logger      *zap.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(invoker llm.Invoker, institution string, logger *zap.Logger) AnalysisService {
	return &analysisService{
		invoker:     invoker,
		institution: institution,
		logger:      logger.Named("analysis-service"),
	}
}

var _ AnalysisService = (*analysisService)(nil)

// aiSegment is the wire shape of one model-produced segment. Identifier and
// boolean fields use flexible decoding because models occasionally quote
// them.
type aiSegment struct {
	SegmentText     string                `json:"segment_text"`
	Sentiment       string                `json:"sentiment"`
	CategoryName    string                `json:"category_name"`
	SubCategoryName string                `json:"sub_category_name"`
	IsSuggestion    jsonutil.FlexibleBool `json:"is_suggestion"`
	RelatedUnitName string                `json:"related_unit_name"`
}

// aiAnalysisResponse is the strict output schema of the segmentation task.
type aiAnalysisResponse struct {
	Results []struct {
		RawInputID jsonutil.FlexibleInt64 `json:"raw_input_id"`
		Segments   []aiSegment            `json:"segments"`
	} `json:"results"`
}

func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) ([]AnalysisResult, error) {
	if len(req.Comments) == 0 {
		return nil, nil
	}

	s.auditComments(req.Comments)

	prompt := prompts.BuildAnalysisPrompt(s.institution, req.Unit, req.Taxonomy, req.AllUnits, req.Comments)
	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.AnalysisSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis invocation: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[aiAnalysisResponse](raw)
	if err != nil {
		return nil, err
	}

	// Ids must echo back from the request; anything else the model made up.
	knownIDs := make(map[int64]struct{}, len(req.Comments))
	for _, c := range req.Comments {
		knownIDs[c.ID] = struct{}{}
	}

	var results []AnalysisResult
	for _, r := range parsed.Results {
		id := r.RawInputID.Int64()
		if _, ok := knownIDs[id]; !ok {
			s.logger.Warn("dropping result for unknown comment id", zap.Int64("raw_input_id", id))
			continue
		}

		result := AnalysisResult{RawInputID: id}
		for _, seg := range r.Segments {
			segment := models.Segment{
				RawInputID:      id,
				SegmentText:     seg.SegmentText,
				Sentiment:       models.Sentiment(seg.Sentiment),
				CategoryName:    seg.CategoryName,
				SubCategoryName: seg.SubCategoryName,
				IsSuggestion:    seg.IsSuggestion.Bool(),
				RelatedUnitName: seg.RelatedUnitName,
			}
			if err := segment.Validate(); err != nil {
				return nil, llm.NewInvalidOutputError(
					fmt.Sprintf("segment for comment %d failed validation: %v", id, err), raw, err)
			}
			result.Segments = append(result.Segments, segment)
		}

		// A comment may legitimately yield zero segments (noise filter);
		// an empty entry is dropped rather than reported.
		if len(result.Segments) > 0 {
			results = append(results, result)
		}
	}

	return results, nil
}

func (s *analysisService) Classify(ctx context.Context, req AnalyzeRequest) ([]models.ReconciledSegment, error) {
	results, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	var flat []models.Segment
	for _, r := range results {
		flat = append(flat, r.Segments...)
	}

	reconciled := reconcile.Segments(flat, req.Taxonomy, req.AllUnits)
	s.logger.Info("classified comment batch",
		zap.Int("comments", len(req.Comments)),
		zap.Int("segments", len(reconciled)))
	return reconciled, nil
}

// auditComments logs (never blocks) feedback that trips the injection
// detectors, so attempted prompt attacks leave a trace.
func (s *analysisService) auditComments(comments []models.RawFeedbackInput) {
	for _, c := range comments {
		if prompts.LooksHostile(c.RawText) {
			s.logger.Warn("comment looks like an injection attempt",
				zap.Int64("raw_input_id", c.ID),
				zap.String("excerpt", logging.Excerpt(c.RawText)))
		}
	}
}
