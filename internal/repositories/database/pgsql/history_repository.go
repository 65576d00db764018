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

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new repository for the asset audit trail.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

const insertHistoryQuery = `
	INSERT INTO asset_history (
		history_id, asset_id, action, previous_status, new_status,
		previous_location, new_location, book_value_before, book_value_after,
		notes, acted_by, occurred_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// insertAssetHistoryTx appends one audit trail row inside an existing
// transaction. Every mutating repository writes its history rows through
// this so the trail always commits atomically with the change it records.
func insertAssetHistoryTx(ctx context.Context, tx pgx.Tx, h models.AssetHistory) error {
	_, err := tx.Exec(ctx, insertHistoryQuery,
		h.HistoryID,
		h.AssetID,
		h.Action,
		h.PreviousStatus,
		h.NewStatus,
		h.PreviousLocation,
		h.NewLocation,
		h.BookValueBefore,
		h.BookValueAfter,
		h.Notes,
		h.ActedBy,
		h.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history for asset "+h.AssetID, err)
	}
	return nil
}

// ListHistoryByAsset retrieves a paginated list of audit trail rows for an
// asset, newest first, using token-based pagination.
func (r *PgxHistoryRepository) ListHistoryByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.AssetHistory, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT history_id, asset_id, action, previous_status, new_status,
		       previous_location, new_location, book_value_before, book_value_after,
		       notes, acted_by, occurred_at
		FROM asset_history
		WHERE asset_id = $1
	`
	orderByClause := `ORDER BY occurred_at DESC, history_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{assetID}

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (occurred_at, history_id) < ($2, $3)`
		args = append(args, lastOccurredAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query history for asset "+assetID, err)
	}
	defer rows.Close()

	modelHistories := make([]models.AssetHistory, 0, fetchLimit)
	for rows.Next() {
		var h models.AssetHistory
		if scanErr := rows.Scan(
			&h.HistoryID,
			&h.AssetID,
			&h.Action,
			&h.PreviousStatus,
			&h.NewStatus,
			&h.PreviousLocation,
			&h.NewLocation,
			&h.BookValueBefore,
			&h.BookValueAfter,
			&h.Notes,
			&h.ActedBy,
			&h.OccurredAt,
		); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan history row for asset "+assetID, scanErr)
		}
		modelHistories = append(modelHistories, h)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating history rows for asset "+assetID, err)
	}

	var nextTokenVal *string
	results := modelHistories
	if len(modelHistories) > limit {
		last := modelHistories[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.HistoryID)
		nextTokenVal = &token
		results = modelHistories[:limit]
	}

	return mapping.ToDomainAssetHistorySlice(results), nextTokenVal, nil
}
