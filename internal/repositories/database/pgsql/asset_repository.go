package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/fixedops/asset_management_app/internal/models"
	"github.com/fixedops/asset_management_app/internal/utils/mapping"
	"github.com/fixedops/asset_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for asset data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `
	asset_id, item_code, description, category_id, business_unit_id, department_id,
	quantity, location, notes, status, is_active, assigned_to,
	purchase_date, purchase_price, salvage_value, depreciation_method,
	useful_life_years, useful_life_extra_months, depreciation_start_date,
	book_value, accumulated_depreciation, monthly_depreciation,
	declining_balance_rate, total_production_units, per_unit_rate,
	last_depreciation_date, next_depreciation_date, is_fully_depreciated,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	var method *string
	err := row.Scan(
		&m.AssetID,
		&m.ItemCode,
		&m.Description,
		&m.CategoryID,
		&m.BusinessUnitID,
		&m.DepartmentID,
		&m.Quantity,
		&m.Location,
		&m.Notes,
		&m.Status,
		&m.IsActive,
		&m.AssignedTo,
		&m.PurchaseDate,
		&m.PurchasePrice,
		&m.SalvageValue,
		&method,
		&m.UsefulLifeYears,
		&m.UsefulLifeExtraMonths,
		&m.DepreciationStartDate,
		&m.BookValue,
		&m.AccumulatedDepreciation,
		&m.MonthlyDepreciation,
		&m.DecliningBalanceRate,
		&m.TotalProductionUnits,
		&m.PerUnitRate,
		&m.LastDepreciationDate,
		&m.NextDepreciationDate,
		&m.IsFullyDepreciated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if method != nil {
		mm := models.DepreciationMethod(*method)
		m.Method = &mm
	}
	return m, nil
}

// SaveAsset persists a new asset and its creation history entry within a DB
// transaction. When the asset carries no item code, one is claimed from the
// category's sequence counter inside the same transaction so concurrent
// creates never collide.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset, history domain.AssetHistory) (*domain.Asset, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if asset.ItemCode == "" {
		var prefix string
		var seq int
		claimQuery := `
			UPDATE categories
			SET next_seq = next_seq + 1
			WHERE category_id = $1
			RETURNING code_prefix, next_seq - 1;
		`
		if err := tx.QueryRow(ctx, claimQuery, asset.CategoryID).Scan(&prefix, &seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFoundError("category " + asset.CategoryID + " not found for item code generation")
			}
			return nil, apperrors.NewAppError(500, "failed to claim item code sequence for category "+asset.CategoryID, err)
		}
		asset.ItemCode = fmt.Sprintf("%s-%04d", prefix, seq)
	}

	modelAsset := mapping.ToModelAsset(asset)
	insertQuery := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelAsset.AssetID,
		modelAsset.ItemCode,
		modelAsset.Description,
		modelAsset.CategoryID,
		modelAsset.BusinessUnitID,
		modelAsset.DepartmentID,
		modelAsset.Quantity,
		modelAsset.Location,
		modelAsset.Notes,
		modelAsset.Status,
		modelAsset.IsActive,
		modelAsset.AssignedTo,
		modelAsset.PurchaseDate,
		modelAsset.PurchasePrice,
		modelAsset.SalvageValue,
		modelAsset.Method,
		modelAsset.UsefulLifeYears,
		modelAsset.UsefulLifeExtraMonths,
		modelAsset.DepreciationStartDate,
		modelAsset.BookValue,
		modelAsset.AccumulatedDepreciation,
		modelAsset.MonthlyDepreciation,
		modelAsset.DecliningBalanceRate,
		modelAsset.TotalProductionUnits,
		modelAsset.PerUnitRate,
		modelAsset.LastDepreciationDate,
		modelAsset.NextDepreciationDate,
		modelAsset.IsFullyDepreciated,
		modelAsset.CreatedAt,
		modelAsset.CreatedBy,
		modelAsset.LastUpdatedAt,
		modelAsset.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "item code "+modelAsset.ItemCode+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert asset "+modelAsset.AssetID, err)
	}

	history.AssetID = asset.AssetID
	if err := insertAssetHistoryTx(ctx, tx, mapping.ToModelAssetHistory(history)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &asset, nil
}

// UpdateAsset persists asset changes and the history entries describing them
// within a DB transaction.
func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset, histories []domain.AssetHistory) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelAsset := mapping.ToModelAsset(asset)
	updateQuery := `
		UPDATE assets
		SET description = $2,
		    category_id = $3,
		    department_id = $4,
		    quantity = $5,
		    location = $6,
		    notes = $7,
		    status = $8,
		    is_active = $9,
		    assigned_to = $10,
		    purchase_date = $11,
		    purchase_price = $12,
		    salvage_value = $13,
		    depreciation_method = $14,
		    useful_life_years = $15,
		    useful_life_extra_months = $16,
		    depreciation_start_date = $17,
		    book_value = $18,
		    accumulated_depreciation = $19,
		    monthly_depreciation = $20,
		    declining_balance_rate = $21,
		    total_production_units = $22,
		    per_unit_rate = $23,
		    last_depreciation_date = $24,
		    next_depreciation_date = $25,
		    is_fully_depreciated = $26,
		    last_updated_at = $27,
		    last_updated_by = $28
		WHERE asset_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		modelAsset.AssetID,
		modelAsset.Description,
		modelAsset.CategoryID,
		modelAsset.DepartmentID,
		modelAsset.Quantity,
		modelAsset.Location,
		modelAsset.Notes,
		modelAsset.Status,
		modelAsset.IsActive,
		modelAsset.AssignedTo,
		modelAsset.PurchaseDate,
		modelAsset.PurchasePrice,
		modelAsset.SalvageValue,
		modelAsset.Method,
		modelAsset.UsefulLifeYears,
		modelAsset.UsefulLifeExtraMonths,
		modelAsset.DepreciationStartDate,
		modelAsset.BookValue,
		modelAsset.AccumulatedDepreciation,
		modelAsset.MonthlyDepreciation,
		modelAsset.DecliningBalanceRate,
		modelAsset.TotalProductionUnits,
		modelAsset.PerUnitRate,
		modelAsset.LastDepreciationDate,
		modelAsset.NextDepreciationDate,
		modelAsset.IsFullyDepreciated,
		modelAsset.LastUpdatedAt,
		modelAsset.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset "+modelAsset.AssetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + modelAsset.AssetID + " not found for update")
	}

	for _, h := range histories {
		if err := insertAssetHistoryTx(ctx, tx, mapping.ToModelAssetHistory(h)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1;`

	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset by ID "+assetID, err)
	}

	domainAsset := mapping.ToDomainAsset(m)
	return &domainAsset, nil
}

// FindAssetsByIDs retrieves the given assets within a business unit, keyed by
// asset ID. Missing IDs are simply absent from the map.
func (r *PgxAssetRepository) FindAssetsByIDs(ctx context.Context, businessUnitID string, assetIDs []string) (map[string]domain.Asset, error) {
	if len(assetIDs) == 0 {
		return map[string]domain.Asset{}, nil
	}

	query := `SELECT ` + assetColumns + ` FROM assets WHERE business_unit_id = $1 AND asset_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, businessUnitID, assetIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets by IDs for business unit "+businessUnitID, err)
	}
	defer rows.Close()

	assets := make(map[string]domain.Asset, len(assetIDs))
	for rows.Next() {
		m, scanErr := scanAsset(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", scanErr)
		}
		assets[m.AssetID] = mapping.ToDomainAsset(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}

	return assets, nil
}

// ListAssets retrieves a paginated list of assets for a business unit using
// token-based pagination.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, businessUnitID string, limit int, nextToken *string) ([]domain.Asset, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + assetColumns + ` FROM assets WHERE business_unit_id = $1`
	// Ordering is crucial and must be stable; asset_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, asset_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{businessUnitID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastAssetID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (created_at, asset_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastAssetID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query assets for business unit "+businessUnitID, err)
	}
	defer rows.Close()

	modelAssets := make([]models.Asset, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAsset(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan asset row for business unit "+businessUnitID, scanErr)
		}
		modelAssets = append(modelAssets, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating asset rows for business unit "+businessUnitID, err)
	}

	var nextTokenVal *string
	results := modelAssets
	if len(modelAssets) > limit {
		last := modelAssets[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AssetID)
		nextTokenVal = &token
		results = modelAssets[:limit]
	}

	return mapping.ToDomainAssetSlice(results), nextTokenVal, nil
}

// ListDepreciableAssets retrieves the coarse candidate set for a depreciation
// run. Purchase price is deliberately not filtered here: assets selected with
// corrupted financial data must surface as failures in the run report rather
// than vanish from it.
func (r *PgxAssetRepository) ListDepreciableAssets(ctx context.Context, businessUnitID string, calcDate time.Time) ([]domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE business_unit_id = $1
		  AND is_active
		  AND status IN ('AVAILABLE', 'DEPLOYED', 'IN_MAINTENANCE')
		  AND is_fully_depreciated = FALSE
		  AND depreciation_method IS NOT NULL
		  AND depreciation_start_date IS NOT NULL
		  AND depreciation_start_date <= $2
		ORDER BY item_code;
	`
	rows, err := r.Pool.Query(ctx, query, businessUnitID, calcDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query depreciable assets for business unit "+businessUnitID, err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		m, scanErr := scanAsset(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan depreciable asset row", scanErr)
		}
		assets = append(assets, mapping.ToDomainAsset(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating depreciable asset rows", err)
	}

	return assets, nil
}

// ListRetirableAssets retrieves assets in a retirable lifecycle state,
// optionally restricted to one category. Assets that already have an active
// retirement record are excluded.
func (r *PgxAssetRepository) ListRetirableAssets(ctx context.Context, businessUnitID string, categoryID *string) ([]domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets a
		WHERE a.business_unit_id = $1
		  AND a.is_active
		  AND a.status IN ('AVAILABLE', 'DEPLOYED', 'IN_MAINTENANCE', 'DAMAGED')
		  AND NOT EXISTS (
		      SELECT 1 FROM retirements r
		      WHERE r.asset_id = a.asset_id AND r.is_active
		  )
	`
	args := []interface{}{businessUnitID}
	if categoryID != nil && *categoryID != "" {
		query += ` AND a.category_id = $2`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY a.item_code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query retirable assets for business unit "+businessUnitID, err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		m, scanErr := scanAsset(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan retirable asset row", scanErr)
		}
		assets = append(assets, mapping.ToDomainAsset(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating retirable asset rows", err)
	}

	return assets, nil
}
