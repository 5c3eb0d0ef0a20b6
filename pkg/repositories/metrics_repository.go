package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// MetricsRepository is the aggregation gateway: it fetches precomputed
// dashboard aggregates through the database's RPC-style functions. All
// aggregation happens in SQL; this layer only decodes the JSON the functions
// return.
type MetricsRepository interface {
	// GetDashboardMetrics calls get_dashboard_metrics(unit_id, survey_id).
	GetDashboardMetrics(ctx context.Context, unitID int64, surveyID *int64) (*models.DashboardMetrics, error)

	// GetAllExecutiveMetrics calls get_all_executive_metrics().
	GetAllExecutiveMetrics(ctx context.Context) ([]models.ExecutiveMetrics, error)
}

type metricsRepository struct {
	db *database.DB
}

// NewMetricsRepository creates a new MetricsRepository.
func NewMetricsRepository(db *database.DB) MetricsRepository {
	return &metricsRepository{db: db}
}

var _ MetricsRepository = (*metricsRepository)(nil)

func (r *metricsRepository) GetDashboardMetrics(ctx context.Context, unitID int64, surveyID *int64) (*models.DashboardMetrics, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT get_dashboard_metrics($1, $2)`, unitID, surveyID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("call get_dashboard_metrics: %w", err)
	}

	var metrics models.DashboardMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("decode dashboard metrics: %w", err)
	}
	return &metrics, nil
}

func (r *metricsRepository) GetAllExecutiveMetrics(ctx context.Context) ([]models.ExecutiveMetrics, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT get_all_executive_metrics()`).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("call get_all_executive_metrics: %w", err)
	}

	var metrics []models.ExecutiveMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("decode executive metrics: %w", err)
	}
	return metrics, nil
}
