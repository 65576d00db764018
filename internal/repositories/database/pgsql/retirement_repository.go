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

type PgxRetirementRepository struct {
	BaseRepository
}

// newPgxRetirementRepository creates a new repository for retirement and
// disposal records.
func newPgxRetirementRepository(pool *pgxpool.Pool) portsrepo.RetirementRepositoryFacade {
	return &PgxRetirementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RetirementRepositoryFacade = (*PgxRetirementRepository)(nil)

const retirementColumns = `
	retirement_id, asset_id, business_unit_id, retirement_date, reason, method,
	condition, notes, replacement_asset_id, disposal_planned, planned_disposal_at,
	approved_by, is_active, created_at, created_by, last_updated_at, last_updated_by
`

func scanRetirement(row pgx.Row) (models.Retirement, error) {
	var m models.Retirement
	err := row.Scan(
		&m.RetirementID,
		&m.AssetID,
		&m.BusinessUnitID,
		&m.RetirementDate,
		&m.Reason,
		&m.Method,
		&m.Condition,
		&m.Notes,
		&m.ReplacementAssetID,
		&m.DisposalPlanned,
		&m.PlannedDisposalAt,
		&m.ApprovedBy,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveRetirementsByAssetIDs retrieves active retirement records keyed by
// asset ID. Assets without one are absent from the map.
func (r *PgxRetirementRepository) FindActiveRetirementsByAssetIDs(ctx context.Context, assetIDs []string) (map[string]domain.Retirement, error) {
	if len(assetIDs) == 0 {
		return map[string]domain.Retirement{}, nil
	}

	query := `SELECT ` + retirementColumns + ` FROM retirements WHERE asset_id = ANY($1) AND is_active;`
	rows, err := r.Pool.Query(ctx, query, assetIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active retirements", err)
	}
	defer rows.Close()

	retirements := make(map[string]domain.Retirement)
	for rows.Next() {
		m, scanErr := scanRetirement(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan retirement row", scanErr)
		}
		retirements[m.AssetID] = mapping.ToDomainRetirement(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating retirement rows", err)
	}

	return retirements, nil
}

// FindActiveRetirementByAssetID retrieves the active retirement record for a
// single asset.
func (r *PgxRetirementRepository) FindActiveRetirementByAssetID(ctx context.Context, assetID string) (*domain.Retirement, error) {
	query := `SELECT ` + retirementColumns + ` FROM retirements WHERE asset_id = $1 AND is_active;`

	m, err := scanRetirement(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active retirement for asset "+assetID, err)
	}

	domainRetirement := mapping.ToDomainRetirement(m)
	return &domainRetirement, nil
}

// RetireAssetsInTx persists a whole retirement batch within one DB
// transaction: retirement records, asset status updates, deployment
// auto-returns and history rows all commit together, so either every asset
// in the request is retired or none are.
func (r *PgxRetirementRepository) RetireAssetsInTx(ctx context.Context, batch portsrepo.RetirementBatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// 1. Insert the retirement records as a batch.
	pgxBatch := &pgx.Batch{}
	retirementQuery := `
		INSERT INTO retirements (` + retirementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, retirement := range batch.Retirements {
		m := mapping.ToModelRetirement(retirement)
		pgxBatch.Queue(retirementQuery,
			m.RetirementID,
			m.AssetID,
			m.BusinessUnitID,
			m.RetirementDate,
			m.Reason,
			m.Method,
			m.Condition,
			m.Notes,
			m.ReplacementAssetID,
			m.DisposalPlanned,
			m.PlannedDisposalAt,
			m.ApprovedBy,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	// 2. Update the asset rows: terminal status, cleared assignment.
	assetQuery := `
		UPDATE assets
		SET status = $2,
		    assigned_to = NULL,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE asset_id = $1;
	`
	for _, asset := range batch.Assets {
		m := mapping.ToModelAsset(asset)
		pgxBatch.Queue(assetQuery, m.AssetID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	// 3. Auto-return any open deployments.
	deploymentQuery := `
		UPDATE deployments
		SET returned_date = $2,
		    return_notes = $3,
		    status = 'RETURNED',
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE deployment_id = $1;
	`
	for _, closure := range batch.DeploymentClosures {
		pgxBatch.Queue(deploymentQuery,
			closure.DeploymentID,
			closure.ReturnedDate,
			closure.ReturnNotes,
			closure.UpdatedAt,
			closure.UpdatedBy,
		)
	}

	// 4. Append the audit trail rows.
	for _, history := range batch.Histories {
		m := mapping.ToModelAssetHistory(history)
		pgxBatch.Queue(insertHistoryQuery,
			m.HistoryID,
			m.AssetID,
			m.Action,
			m.PreviousStatus,
			m.NewStatus,
			m.PreviousLocation,
			m.NewLocation,
			m.BookValueBefore,
			m.BookValueAfter,
			m.Notes,
			m.ActedBy,
			m.OccurredAt,
		)
	}

	br := tx.SendBatch(ctx, pgxBatch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "an asset in the batch already has an active retirement", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to execute retirement batch", err)
	}

	return r.Commit(ctx, tx)
}

// SaveDisposal persists a disposal record, completes the retirement it closes
// out and moves the asset to its terminal status, all within one DB
// transaction.
func (r *PgxRetirementRepository) SaveDisposal(ctx context.Context, disposal domain.Disposal, asset domain.Asset, history domain.AssetHistory) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelDisposal := mapping.ToModelDisposal(disposal)
	disposalQuery := `
		INSERT INTO disposals (
			disposal_id, asset_id, retirement_id, business_unit_id, disposal_date,
			method, proceeds, notes, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, disposalQuery,
		modelDisposal.DisposalID,
		modelDisposal.AssetID,
		modelDisposal.RetirementID,
		modelDisposal.BusinessUnitID,
		modelDisposal.DisposalDate,
		modelDisposal.Method,
		modelDisposal.Proceeds,
		modelDisposal.Notes,
		modelDisposal.CreatedAt,
		modelDisposal.CreatedBy,
		modelDisposal.LastUpdatedAt,
		modelDisposal.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "asset "+modelDisposal.AssetID+" already has a disposal record", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert disposal for asset "+modelDisposal.AssetID, err)
	}

	// The retirement is completed once its asset is disposed.
	retirementQuery := `
		UPDATE retirements
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE retirement_id = $1;
	`
	if _, err := tx.Exec(ctx, retirementQuery, modelDisposal.RetirementID, modelDisposal.LastUpdatedAt, modelDisposal.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to complete retirement "+modelDisposal.RetirementID, err)
	}

	modelAsset := mapping.ToModelAsset(asset)
	assetQuery := `
		UPDATE assets
		SET status = $2,
		    is_active = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE asset_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, assetQuery,
		modelAsset.AssetID,
		modelAsset.Status,
		modelAsset.IsActive,
		modelAsset.LastUpdatedAt,
		modelAsset.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset status for "+modelAsset.AssetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + modelAsset.AssetID + " not found for disposal update")
	}

	if err := insertAssetHistoryTx(ctx, tx, mapping.ToModelAssetHistory(history)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
