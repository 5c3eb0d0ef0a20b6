package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// ReportRepository stores generated executive reports so the conversational
// endpoint can ground answers in the most recent one.
type ReportRepository interface {
	Save(ctx context.Context, report *models.SavedReport) error

	// GetLatest returns the newest report for a unit, optionally scoped to
	// one survey. Returns nil when the unit has no reports.
	GetLatest(ctx context.Context, unitID int64, surveyID *int64) (*models.SavedReport, error)
}

type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *database.DB) ReportRepository {
	return &reportRepository{db: db}
}

var _ ReportRepository = (*reportRepository)(nil)

func (r *reportRepository) Save(ctx context.Context, report *models.SavedReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	reportJSON, err := json.Marshal(report.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO saved_reports (id, unit_id, survey_id, report, quote_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID, report.UnitID, report.SurveyID, reportJSON, report.QuoteVerified, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *reportRepository) GetLatest(ctx context.Context, unitID int64, surveyID *int64) (*models.SavedReport, error) {
	var (
		report     models.SavedReport
		reportJSON []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, unit_id, survey_id, report, quote_verified, created_at
		 FROM saved_reports
		 WHERE unit_id = $1 AND ($2::bigint IS NULL OR survey_id = $2)
		 ORDER BY created_at DESC
		 LIMIT 1`,
		unitID, surveyID).Scan(&report.ID, &report.UnitID, &report.SurveyID,
		&reportJSON, &report.QuoteVerified, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest report: %w", err)
	}

	if err := json.Unmarshal(reportJSON, &report.Report); err != nil {
		return nil, fmt.Errorf("unmarshal stored report: %w", err)
	}
	return &report, nil
}
