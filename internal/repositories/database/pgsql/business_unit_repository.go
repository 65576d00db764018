package pgsql

import (
	"context"
	"errors"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/fixedops/asset_management_app/internal/models"
	"github.com/fixedops/asset_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessUnitRepository struct {
	BaseRepository
}

// newPgxBusinessUnitRepository creates a new repository for business unit data.
func newPgxBusinessUnitRepository(pool *pgxpool.Pool) portsrepo.BusinessUnitRepositoryFacade {
	return &PgxBusinessUnitRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BusinessUnitRepositoryFacade = (*PgxBusinessUnitRepository)(nil)

// FindBusinessUnitByID retrieves a business unit by its ID.
func (r *PgxBusinessUnitRepository) FindBusinessUnitByID(ctx context.Context, businessUnitID string) (*domain.BusinessUnit, error) {
	query := `
		SELECT business_unit_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM business_units
		WHERE business_unit_id = $1;
	`
	var m models.BusinessUnit
	err := r.Pool.QueryRow(ctx, query, businessUnitID).Scan(
		&m.BusinessUnitID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find business unit by ID "+businessUnitID, err)
	}

	domainBU := mapping.ToDomainBusinessUnit(m)
	return &domainBU, nil
}

// ListBusinessUnits retrieves all business units, optionally only active ones.
func (r *PgxBusinessUnitRepository) ListBusinessUnits(ctx context.Context, activeOnly bool) ([]domain.BusinessUnit, error) {
	query := `
		SELECT business_unit_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM business_units
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query business units", err)
	}
	defer rows.Close()

	var units []domain.BusinessUnit
	for rows.Next() {
		var m models.BusinessUnit
		if scanErr := rows.Scan(
			&m.BusinessUnitID,
			&m.Name,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan business unit row", scanErr)
		}
		units = append(units, mapping.ToDomainBusinessUnit(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating business unit rows", err)
	}

	return units, nil
}
