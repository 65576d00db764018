package services

import (
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
)

// NewServiceContainer wires every service facade over the repository
// provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	assetSvc := NewAssetService(repos.AssetRepo, repos.CategoryRepo, repos.BusinessUnitRepo, repos.HistoryRepo)
	depreciationSvc := NewDepreciationService(repos.AssetRepo, repos.CategoryRepo, repos.BusinessUnitRepo, repos.DepreciationRepo, repos.ScheduleRepo)
	retirementSvc := NewRetirementService(repos.AssetRepo, repos.CategoryRepo, repos.RetirementRepo, repos.DeploymentRepo)

	return &portssvc.ServiceContainer{
		Asset:        assetSvc,
		Depreciation: depreciationSvc,
		Retirement:   retirementSvc,
	}
}
