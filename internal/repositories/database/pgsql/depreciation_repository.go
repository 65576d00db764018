package pgsql

import (
	"context"
	"strconv"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/fixedops/asset_management_app/internal/models"
	"github.com/fixedops/asset_management_app/internal/utils/mapping"
	"github.com/fixedops/asset_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDepreciationRepository struct {
	BaseRepository
}

// newPgxDepreciationRepository creates a new repository for the depreciation
// ledger.
func newPgxDepreciationRepository(pool *pgxpool.Pool) portsrepo.DepreciationRepositoryFacade {
	return &PgxDepreciationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepreciationRepositoryFacade = (*PgxDepreciationRepository)(nil)

// ApplyDepreciation persists one processed period for one asset within a DB
// transaction: the ledger entry, the asset's financial rollforward and the
// history row commit together or not at all. The unique (asset_id,
// period_start) index turns a concurrent double-apply into ErrDuplicate, which
// the scheduler reports as a skip.
func (r *PgxDepreciationRepository) ApplyDepreciation(ctx context.Context, entry domain.DepreciationEntry, asset domain.Asset, history domain.AssetHistory) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// 1. Append the ledger entry.
	modelEntry := mapping.ToModelDepreciationEntry(entry)
	entryQuery := `
		INSERT INTO depreciation_entries (
			entry_id, asset_id, calculation_date, period_start, period_end,
			book_value_before, book_value_after, amount, accumulated_depreciation_after,
			method, notes, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.AssetID,
		modelEntry.CalculationDate,
		modelEntry.PeriodStart,
		modelEntry.PeriodEnd,
		modelEntry.BookValueBefore,
		modelEntry.BookValueAfter,
		modelEntry.Amount,
		modelEntry.AccumulatedDepreciationAfter,
		modelEntry.Method,
		modelEntry.Notes,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "depreciation already recorded for asset "+modelEntry.AssetID+" in this period", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert depreciation entry for asset "+modelEntry.AssetID, err)
	}

	// 2. Roll the asset's financial fields forward.
	modelAsset := mapping.ToModelAsset(asset)
	assetQuery := `
		UPDATE assets
		SET book_value = $2,
		    accumulated_depreciation = $3,
		    monthly_depreciation = $4,
		    last_depreciation_date = $5,
		    next_depreciation_date = $6,
		    is_fully_depreciated = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE asset_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, assetQuery,
		modelAsset.AssetID,
		modelAsset.BookValue,
		modelAsset.AccumulatedDepreciation,
		modelAsset.MonthlyDepreciation,
		modelAsset.LastDepreciationDate,
		modelAsset.NextDepreciationDate,
		modelAsset.IsFullyDepreciated,
		modelAsset.LastUpdatedAt,
		modelAsset.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset financials for "+modelAsset.AssetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + modelAsset.AssetID + " not found for depreciation update")
	}

	// 3. Append the audit trail row.
	if err := insertAssetHistoryTx(ctx, tx, mapping.ToModelAssetHistory(history)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ListEntriesByAsset retrieves a paginated list of ledger entries for an
// asset, newest period first, using token-based pagination.
func (r *PgxDepreciationRepository) ListEntriesByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.DepreciationEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, asset_id, calculation_date, period_start, period_end,
		       book_value_before, book_value_after, amount, accumulated_depreciation_after,
		       method, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM depreciation_entries
		WHERE asset_id = $1
	`
	orderByClause := `ORDER BY period_start DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{assetID}

	if nextToken != nil && *nextToken != "" {
		lastPeriodStart, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (period_start, entry_id) < ($2, $3)`
		args = append(args, lastPeriodStart, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query depreciation entries for asset "+assetID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.DepreciationEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.DepreciationEntry
		if scanErr := rows.Scan(
			&m.EntryID,
			&m.AssetID,
			&m.CalculationDate,
			&m.PeriodStart,
			&m.PeriodEnd,
			&m.BookValueBefore,
			&m.BookValueAfter,
			&m.Amount,
			&m.AccumulatedDepreciationAfter,
			&m.Method,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan depreciation entry row for asset "+assetID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating depreciation entry rows for asset "+assetID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.PeriodStart, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainDepreciationEntrySlice(results), nextTokenVal, nil
}
