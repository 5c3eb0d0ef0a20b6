package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/apperrors"
	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/logging"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
)

// ReportRequest carries one executive report synthesis task.
type ReportRequest struct {
	UnitID          int64
	SurveyID        *int64
	UnitName        string
	UnitDescription string
	Stats           models.ReportStats
	Breakdown       []models.CategoryMetric
	Segments        []models.Segment
}

// ReportService synthesizes and persists executive reports.
type ReportService interface {
	Generate(ctx context.Context, req ReportRequest) (*models.SavedReport, error)
}

// sampleLimit caps how many stored segments feed a report when the request
// does not supply its own sample.
const sampleLimit = 200

type reportService struct {
	invoker     llm.Invoker
	reportRepo  repositories.ReportRepository
	segmentRepo repositories.SegmentRepository
	institution string
	logger      *zap.Logger
}

// NewReportService creates a new ReportService. reportRepo and segmentRepo
// may be nil when the service runs without a database; generated reports are
// then returned but not persisted, and every request must carry its own
// segment sample.
func NewReportService(invoker llm.Invoker, reportRepo repositories.ReportRepository, segmentRepo repositories.SegmentRepository, institution string, logger *zap.Logger) ReportService {
	return &reportService{
		invoker:     invoker,
		reportRepo:  reportRepo,
		segmentRepo: segmentRepo,
		institution: institution,
		logger:      logger.Named("report-service"),
	}
}

var _ ReportService = (*reportService)(nil)

func (s *reportService) Generate(ctx context.Context, req ReportRequest) (*models.SavedReport, error) {
	if len(req.Segments) == 0 {
		sampled, err := s.sampleSegments(ctx, req.UnitID)
		if err != nil {
			return nil, err
		}
		req.Segments = sampled
	}

	prompt := prompts.BuildExecutiveReportPrompt(
		s.institution, req.UnitName, req.UnitDescription,
		req.Stats, req.Breakdown, req.Segments)

	raw, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.ReportSystemMessage(),
		Mode:   llm.ModeJSONStrict,
	})
	if err != nil {
		return nil, fmt.Errorf("report invocation: %w", err)
	}

	report, err := llm.ParseJSONResponse[models.ExecutiveReport](raw)
	if err != nil {
		return nil, err
	}
	if err := report.Validate(); err != nil {
		return nil, llm.NewInvalidOutputError(
			fmt.Sprintf("report failed schema validation: %v", err), raw, err)
	}

	saved := &models.SavedReport{
		UnitID:        req.UnitID,
		SurveyID:      req.SurveyID,
		Report:        report,
		QuoteVerified: s.verifyQuotes(report, req.Segments),
	}

	if s.reportRepo != nil {
		if err := s.reportRepo.Save(ctx, saved); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	s.logger.Info("generated executive report",
		zap.Int64("unit_id", req.UnitID),
		zap.String("verdict", string(report.Verdict)),
		zap.Bool("quote_verified", saved.QuoteVerified))
	return saved, nil
}

// sampleSegments pulls recent stored segments for a unit so a report can be
// generated without the caller shipping the sample itself.
func (s *reportService) sampleSegments(ctx context.Context, unitID int64) ([]models.Segment, error) {
	if s.segmentRepo == nil {
		return nil, fmt.Errorf("no segments supplied for unit %d: %w", unitID, apperrors.ErrNotFound)
	}
	sampled, err := s.segmentRepo.Sample(ctx, unitID, sampleLimit)
	if err != nil {
		return nil, fmt.Errorf("sample segments for unit %d: %w", unitID, err)
	}
	if len(sampled) == 0 {
		return nil, fmt.Errorf("no stored segments for unit %d: %w", unitID, apperrors.ErrNotFound)
	}
	s.logger.Debug("sampled stored segments for report",
		zap.Int64("unit_id", unitID),
		zap.Int("segments", len(sampled)))
	return sampled, nil
}

// verifyQuotes checks that every evidence quote is a verbatim substring of a
// sampled segment. The model is trusted either way; a failed check only
// flags the report and leaves an audit trace.
func (s *reportService) verifyQuotes(report models.ExecutiveReport, sample []models.Segment) bool {
	verified := true
	check := func(points []models.ReportPoint) {
		for _, p := range points {
			if p.Evidence == "" {
				continue
			}
			if !quoteInSample(p.Evidence, sample) {
				verified = false
				s.logger.Warn("report evidence is not a verbatim quote",
					zap.String("evidence", logging.Excerpt(p.Evidence)))
			}
		}
	}
	check(report.Strengths)
	check(report.Concerns)
	check(report.Recommendations)
	return verified
}

func quoteInSample(quote string, sample []models.Segment) bool {
	for _, seg := range sample {
		if strings.Contains(seg.SegmentText, quote) {
			return true
		}
	}
	return false
}
