package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-pulse/insight-engine/pkg/apperrors"
	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

// UnitRepository provides read access to organizational units.
type UnitRepository interface {
	GetAll(ctx context.Context) ([]models.OrganizationUnit, error)
	GetByID(ctx context.Context, unitID int64) (*models.OrganizationUnit, error)
}

type unitRepository struct {
	db *database.DB
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(db *database.DB) UnitRepository {
	return &unitRepository{db: db}
}

var _ UnitRepository = (*unitRepository)(nil)

func (r *unitRepository) GetAll(ctx context.Context) ([]models.OrganizationUnit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, short_name, description FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	var units []models.OrganizationUnit
	for rows.Next() {
		var u models.OrganizationUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.ShortName, &u.Description); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *unitRepository) GetByID(ctx context.Context, unitID int64) (*models.OrganizationUnit, error) {
	var u models.OrganizationUnit
	err := r.db.QueryRow(ctx,
		`SELECT id, name, short_name, description FROM units WHERE id = $1`,
		unitID).Scan(&u.ID, &u.Name, &u.ShortName, &u.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query unit %d: %w", unitID, err)
	}
	return &u, nil
}
