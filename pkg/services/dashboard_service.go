package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
)

// UnitDashboard merges a unit's metadata, its taxonomy, and its precomputed
// metrics for rendering one workspace tab. The taxonomy drives the category
// filter controls alongside the per-category counts.
type UnitDashboard struct {
	Unit     models.OrganizationUnit `json:"unit"`
	Taxonomy models.Taxonomy         `json:"taxonomy"`
	Metrics  models.DashboardMetrics `json:"metrics"`
}

// ExecutiveOverview is the cross-unit rollup for the leadership view.
type ExecutiveOverview struct {
	Units []models.ExecutiveMetrics `json:"units"`
}

// DashboardService assembles dashboard payloads from the aggregation
// gateway. It performs no aggregation of its own.
type DashboardService interface {
	GetUnitDashboard(ctx context.Context, unitID int64, surveyID *int64) (*UnitDashboard, error)
	GetExecutiveOverview(ctx context.Context) (*ExecutiveOverview, error)
}

type dashboardService struct {
	unitRepo     repositories.UnitRepository
	taxonomyRepo repositories.TaxonomyRepository
	metricsRepo  repositories.MetricsRepository
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(unitRepo repositories.UnitRepository, taxonomyRepo repositories.TaxonomyRepository, metricsRepo repositories.MetricsRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		unitRepo:     unitRepo,
		taxonomyRepo: taxonomyRepo,
		metricsRepo:  metricsRepo,
		logger:       logger.Named("dashboard-service"),
	}
}

var _ DashboardService = (*dashboardService)(nil)

func (s *dashboardService) GetUnitDashboard(ctx context.Context, unitID int64, surveyID *int64) (*UnitDashboard, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("load unit %d: %w", unitID, err)
	}

	taxonomy, err := s.taxonomyRepo.GetSnapshot(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy for unit %d: %w", unitID, err)
	}

	metrics, err := s.metricsRepo.GetDashboardMetrics(ctx, unitID, surveyID)
	if err != nil {
		return nil, fmt.Errorf("load metrics for unit %d: %w", unitID, err)
	}

	return &UnitDashboard{Unit: *unit, Taxonomy: taxonomy, Metrics: *metrics}, nil
}

func (s *dashboardService) GetExecutiveOverview(ctx context.Context) (*ExecutiveOverview, error) {
	metrics, err := s.metricsRepo.GetAllExecutiveMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("load executive metrics: %w", err)
	}

	s.logger.Debug("assembled executive overview", zap.Int("units", len(metrics)))
	return &ExecutiveOverview{Units: metrics}, nil
}
