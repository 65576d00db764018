package pgsql

import (
	"context"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/fixedops/asset_management_app/internal/models"
	"github.com/fixedops/asset_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDeploymentRepository struct {
	BaseRepository
}

// newPgxDeploymentRepository creates a new repository for deployment data.
func newPgxDeploymentRepository(pool *pgxpool.Pool) portsrepo.DeploymentRepositoryFacade {
	return &PgxDeploymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DeploymentRepositoryFacade = (*PgxDeploymentRepository)(nil)

// FindOpenDeploymentsByAssetIDs retrieves open (unreturned) deployments keyed
// by asset ID. At most one deployment per asset is open at any time.
func (r *PgxDeploymentRepository) FindOpenDeploymentsByAssetIDs(ctx context.Context, assetIDs []string) (map[string]domain.Deployment, error) {
	if len(assetIDs) == 0 {
		return map[string]domain.Deployment{}, nil
	}

	query := `
		SELECT deployment_id, asset_id, business_unit_id, assigned_to, location,
		       deployed_date, returned_date, return_notes, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM deployments
		WHERE asset_id = ANY($1) AND returned_date IS NULL;
	`
	rows, err := r.Pool.Query(ctx, query, assetIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open deployments", err)
	}
	defer rows.Close()

	deployments := make(map[string]domain.Deployment)
	for rows.Next() {
		var m models.Deployment
		if scanErr := rows.Scan(
			&m.DeploymentID,
			&m.AssetID,
			&m.BusinessUnitID,
			&m.AssignedTo,
			&m.Location,
			&m.DeployedDate,
			&m.ReturnedDate,
			&m.ReturnNotes,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan deployment row", scanErr)
		}
		deployments[m.AssetID] = mapping.ToDomainDeployment(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating deployment rows", err)
	}

	return deployments, nil
}
