package repositories

import (
	"context"
	"fmt"

	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// TaxonomyRepository provides access to a unit's category taxonomy. The
// analysis pipeline reads immutable snapshots; writes happen only through
// the seeding path.
type TaxonomyRepository interface {
	// GetSnapshot returns the unit's full taxonomy at a point in time.
	GetSnapshot(ctx context.Context, unitID int64) (models.Taxonomy, error)

	// SeedUnit inserts the core category list for a unit that has no
	// categories yet. Idempotent: a unit with categories is left alone.
	SeedUnit(ctx context.Context, unitID int64, seed []models.Category, subNames map[string][]string) error
}

type taxonomyRepository struct {
	db *database.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(db *database.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

var _ TaxonomyRepository = (*taxonomyRepository)(nil)

func (r *taxonomyRepository) GetSnapshot(ctx context.Context, unitID int64) (models.Taxonomy, error) {
	var t models.Taxonomy

	rows, err := r.db.Query(ctx,
		`SELECT id, unit_id, name, description FROM categories WHERE unit_id = $1 ORDER BY id`,
		unitID)
	if err != nil {
		return t, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UnitID, &c.Name, &c.Description); err != nil {
			return t, fmt.Errorf("scan category: %w", err)
		}
		t.Categories = append(t.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return t, err
	}

	subRows, err := r.db.Query(ctx,
		`SELECT s.id, s.category_id, s.name, s.description
		 FROM subcategories s
		 JOIN categories c ON c.id = s.category_id
		 WHERE c.unit_id = $1
		 ORDER BY s.id`,
		unitID)
	if err != nil {
		return t, fmt.Errorf("query subcategories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var s models.Subcategory
		if err := subRows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description); err != nil {
			return t, fmt.Errorf("scan subcategory: %w", err)
		}
		t.Subcategories = append(t.Subcategories, s)
	}
	return t, subRows.Err()
}

func (r *taxonomyRepository) SeedUnit(ctx context.Context, unitID int64, seed []models.Category, subNames map[string][]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	var existing int64
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM categories WHERE unit_id = $1`, unitID).Scan(&existing); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if existing > 0 {
		return nil
	}

	for _, c := range seed {
		var categoryID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO categories (unit_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
			unitID, c.Name, c.Description).Scan(&categoryID); err != nil {
			return fmt.Errorf("insert seed category %q: %w", c.Name, err)
		}
		for _, sub := range subNames[c.Name] {
			if _, err := tx.Exec(ctx,
				`INSERT INTO subcategories (category_id, name) VALUES ($1, $2)`,
				categoryID, sub); err != nil {
				return fmt.Errorf("insert seed subcategory %q: %w", sub, err)
			}
		}
	}

	return tx.Commit(ctx)
}
