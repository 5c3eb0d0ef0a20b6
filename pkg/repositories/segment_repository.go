package repositories

import (
	"context"
	"fmt"

	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// SegmentRepository persists reconciled segments after the pipeline returns
// them. Persistence is the caller's side of the contract; the pipeline
// itself never writes.
type SegmentRepository interface {
	// SaveBatch stores reconciled segments for a unit in one transaction.
	SaveBatch(ctx context.Context, unitID int64, segments []models.ReconciledSegment) error

	// Sample returns up to limit recent segments for a unit, newest first.
	Sample(ctx context.Context, unitID int64, limit int) ([]models.Segment, error)
}

type segmentRepository struct {
	db *database.DB
}

// NewSegmentRepository creates a new SegmentRepository.
func NewSegmentRepository(db *database.DB) SegmentRepository {
	return &segmentRepository{db: db}
}

var _ SegmentRepository = (*segmentRepository)(nil)

func (r *segmentRepository) SaveBatch(ctx context.Context, unitID int64, segments []models.ReconciledSegment) error {
	if len(segments) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin segment transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	for _, s := range segments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO feedback_segments
			 (raw_input_id, unit_id, segment_text, sentiment, category_id, subcategory_id, is_suggestion, related_unit_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.RawInputID, unitID, s.SegmentText, string(s.Sentiment),
			s.CategoryID, s.SubcategoryID, s.IsSuggestion, s.RelatedUnitID); err != nil {
			return fmt.Errorf("insert segment for input %d: %w", s.RawInputID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *segmentRepository) Sample(ctx context.Context, unitID int64, limit int) ([]models.Segment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT fs.raw_input_id, fs.segment_text, fs.sentiment,
		        COALESCE(c.name, ''), COALESCE(sc.name, ''), fs.is_suggestion
		 FROM feedback_segments fs
		 LEFT JOIN categories c ON c.id = fs.category_id
		 LEFT JOIN subcategories sc ON sc.id = fs.subcategory_id
		 WHERE fs.unit_id = $1
		 ORDER BY fs.created_at DESC
		 LIMIT $2`,
		unitID, limit)
	if err != nil {
		return nil, fmt.Errorf("query segment sample: %w", err)
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var s models.Segment
		var sentiment string
		if err := rows.Scan(&s.RawInputID, &s.SegmentText, &sentiment,
			&s.CategoryName, &s.SubCategoryName, &s.IsSuggestion); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		s.Sentiment = models.Sentiment(sentiment)
		segments = append(segments, s)
	}
	return segments, rows.Err()
}
