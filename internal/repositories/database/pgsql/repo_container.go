package pgsql

import (
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	assetRepo := newPgxAssetRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	businessUnitRepo := newPgxBusinessUnitRepository(dbPool)
	depreciationRepo := newPgxDepreciationRepository(dbPool)
	scheduleRepo := newPgxScheduleRepository(dbPool)
	retirementRepo := newPgxRetirementRepository(dbPool)
	deploymentRepo := newPgxDeploymentRepository(dbPool)
	historyRepo := newPgxHistoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AssetRepo:        assetRepo,
		CategoryRepo:     categoryRepo,
		BusinessUnitRepo: businessUnitRepo,
		DepreciationRepo: depreciationRepo,
		ScheduleRepo:     scheduleRepo,
		RetirementRepo:   retirementRepo,
		DeploymentRepo:   deploymentRepo,
		HistoryRepo:      historyRepo,
	}
}
