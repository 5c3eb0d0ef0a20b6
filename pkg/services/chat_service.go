package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/prompts"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
)

// ChatRequest carries one conversational turn.
type ChatRequest struct {
	UnitID   int64
	SurveyID *int64
	History  []models.ChatMessage
	Prompt   string
}

// ChatService answers administrator questions about a unit's feedback,
// grounded in the latest executive report and dashboard metrics.
type ChatService interface {
	Answer(ctx context.Context, req ChatRequest) (string, error)
}

type chatService struct {
	invoker     llm.Invoker
	unitRepo    repositories.UnitRepository
	reportRepo  repositories.ReportRepository
	metricsRepo repositories.MetricsRepository
	institution string
	fastModel   string
	logger      *zap.Logger
}

// NewChatService creates a new ChatService. The fast model variant serves
// conversational turns; analytical tasks keep the default model.
func NewChatService(
	invoker llm.Invoker,
	unitRepo repositories.UnitRepository,
	reportRepo repositories.ReportRepository,
	metricsRepo repositories.MetricsRepository,
	institution string,
	fastModel string,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		invoker:     invoker,
		unitRepo:    unitRepo,
		reportRepo:  reportRepo,
		metricsRepo: metricsRepo,
		institution: institution,
		fastModel:   fastModel,
		logger:      logger.Named("chat-service"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) Answer(ctx context.Context, req ChatRequest) (string, error) {
	for i, m := range req.History {
		if err := m.Validate(); err != nil {
			return "", fmt.Errorf("history[%d]: %w", i, err)
		}
	}

	unit, err := s.unitRepo.GetByID(ctx, req.UnitID)
	if err != nil {
		return "", fmt.Errorf("load unit %d: %w", req.UnitID, err)
	}

	// Report and metrics lookups are independent; fetch them concurrently
	// and join before the model call. Either failure fails the request
	// immediately, no retries.
	var (
		report     *models.SavedReport
		metrics    *models.DashboardMetrics
		reportErr  error
		metricsErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		report, reportErr = s.reportRepo.GetLatest(ctx, req.UnitID, req.SurveyID)
	}()
	metrics, metricsErr = s.metricsRepo.GetDashboardMetrics(ctx, req.UnitID, req.SurveyID)
	<-done

	if reportErr != nil {
		return "", fmt.Errorf("load latest report: %w", reportErr)
	}
	if metricsErr != nil {
		return "", fmt.Errorf("load dashboard metrics: %w", metricsErr)
	}

	prompt := prompts.BuildChatPrompt(s.institution, prompts.ChatContext{
		Unit:    *unit,
		Report:  report,
		Metrics: metrics,
	}, req.History, req.Prompt)

	reply, err := s.invoker.Invoke(ctx, llm.Request{
		Prompt: prompt,
		System: prompts.ChatSystemMessage(),
		Mode:   llm.ModeFreeText,
		Model:  s.fastModel,
	})
	if err != nil {
		return "", fmt.Errorf("chat invocation: %w", err)
	}

	s.logger.Info("answered chat turn",
		zap.Int64("unit_id", req.UnitID),
		zap.Int("history_len", len(req.History)))
	return reply, nil
}
