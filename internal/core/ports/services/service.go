package services

// ServiceContainer bundles every service facade the handlers depend on.
type ServiceContainer struct {
	Asset        AssetSvcFacade
	Depreciation DepreciationSvcFacade
	Retirement   RetirementSvcFacade
}
