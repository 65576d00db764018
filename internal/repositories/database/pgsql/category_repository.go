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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category reference data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, code_prefix, next_seq, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.CodePrefix,
		&m.NextSeq,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}

	domainCategory := mapping.ToDomainCategory(m)
	return &domainCategory, nil
}

// FindCategoriesByIDs retrieves the given categories keyed by category ID.
// Missing IDs are simply absent from the map.
func (r *PgxCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	if len(categoryIDs) == 0 {
		return map[string]domain.Category{}, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories by IDs", err)
	}
	defer rows.Close()

	categories := make(map[string]domain.Category, len(categoryIDs))
	for rows.Next() {
		m, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", scanErr)
		}
		categories[m.CategoryID] = mapping.ToDomainCategory(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}

	return categories, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		m, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", scanErr)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}

	return categories, nil
}
