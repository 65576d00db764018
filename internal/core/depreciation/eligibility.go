package depreciation

import (
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// CategoryFilter holds the include/exclude category sets of a run.
// Exclusion always wins; an empty include set means every non-excluded
// category is eligible.
type CategoryFilter struct {
	Include []string
	Exclude []string
}

// Allows reports whether assets of the given category pass the filter.
func (f CategoryFilter) Allows(categoryID string) bool {
	for _, id := range f.Exclude {
		if id == categoryID {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, id := range f.Include {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Conflicts returns the category IDs that appear in both sets. A valid
// schedule config has none.
func (f CategoryFilter) Conflicts() []string {
	excluded := make(map[string]struct{}, len(f.Exclude))
	for _, id := range f.Exclude {
		excluded[id] = struct{}{}
	}
	var both []string
	for _, id := range f.Include {
		if _, ok := excluded[id]; ok {
			both = append(both, id)
		}
	}
	return both
}

// IneligibleReason tags why an asset was excluded from a run. The scheduler
// reports SetupIncomplete as a FAILED detail row (corrupted financial data
// on a selected asset) and everything else as SKIPPED.
type IneligibleReason string

const (
	ReasonEligible         IneligibleReason = ""
	ReasonStatus           IneligibleReason = "status is not depreciable"
	ReasonCategoryFiltered IneligibleReason = "category filtered out"
	ReasonSetupIncomplete  IneligibleReason = "purchase price or depreciation setup missing"
	ReasonStartNotReached  IneligibleReason = "depreciation start date not reached"
	ReasonFullyDepreciated IneligibleReason = "asset is fully depreciated"
	ReasonZeroRate         IneligibleReason = "monthly depreciation rate is not positive"
	ReasonPeriodProcessed  IneligibleReason = "period already processed"
)

// Eligible decides whether an asset is due for depreciation on calcDate.
func Eligible(asset domain.Asset, filter CategoryFilter, calcDate time.Time) (bool, IneligibleReason) {
	switch asset.Status {
	case domain.StatusAvailable, domain.StatusDeployed, domain.StatusInMaintenance:
		// Depreciable states.
	default:
		return false, ReasonStatus
	}
	if !filter.Allows(asset.CategoryID) {
		return false, ReasonCategoryFiltered
	}
	if !asset.HasDepreciationSetup() {
		return false, ReasonSetupIncomplete
	}
	if asset.DepreciationStartDate.After(calcDate) {
		return false, ReasonStartNotReached
	}
	if asset.IsFullyDepreciated {
		return false, ReasonFullyDepreciated
	}
	if !asset.MonthlyDepreciation.IsPositive() {
		return false, ReasonZeroRate
	}
	if asset.LastDepreciationDate != nil && AddMonthClamped(*asset.LastDepreciationDate, 1).After(calcDate) {
		return false, ReasonPeriodProcessed
	}
	return true, ReasonEligible
}
