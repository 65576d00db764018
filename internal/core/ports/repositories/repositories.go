package repositories

// RepositoryProvider bundles every repository the service layer depends on.
type RepositoryProvider struct {
	AssetRepo        AssetRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	BusinessUnitRepo BusinessUnitRepositoryFacade
	DepreciationRepo DepreciationRepositoryFacade
	ScheduleRepo     ScheduleRepositoryFacade
	RetirementRepo   RetirementRepositoryFacade
	DeploymentRepo   DeploymentRepositoryFacade
	HistoryRepo      HistoryRepositoryFacade
}
