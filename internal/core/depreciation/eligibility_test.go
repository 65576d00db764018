package depreciation_test

import (
	"testing"

	"github.com/fixedops/asset_management_app/internal/core/depreciation"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func eligibleAsset() domain.Asset {
	method := domain.StraightLine
	start := date(2024, 1, 1)
	return domain.Asset{
		AssetID:               "asset-1",
		CategoryID:            "cat-1",
		Status:                domain.StatusAvailable,
		PurchasePrice:         decimal.NewFromInt(120000),
		Method:                &method,
		DepreciationStartDate: &start,
		MonthlyDepreciation:   decimal.NewFromInt(1800),
	}
}

func TestEligible_HappyPath(t *testing.T) {
	ok, reason := depreciation.Eligible(eligibleAsset(), depreciation.CategoryFilter{}, date(2024, 1, 31))
	assert.True(t, ok)
	assert.Equal(t, depreciation.ReasonEligible, reason)
}

func TestEligible_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Asset)
		filter depreciation.CategoryFilter
		reason depreciation.IneligibleReason
	}{
		{
			name:   "retired asset",
			mutate: func(a *domain.Asset) { a.Status = domain.StatusRetired },
			reason: depreciation.ReasonStatus,
		},
		{
			name:   "damaged asset",
			mutate: func(a *domain.Asset) { a.Status = domain.StatusDamaged },
			reason: depreciation.ReasonStatus,
		},
		{
			name:   "category excluded",
			mutate: func(a *domain.Asset) {},
			filter: depreciation.CategoryFilter{Exclude: []string{"cat-1"}},
			reason: depreciation.ReasonCategoryFiltered,
		},
		{
			name:   "category not in include set",
			mutate: func(a *domain.Asset) {},
			filter: depreciation.CategoryFilter{Include: []string{"cat-2"}},
			reason: depreciation.ReasonCategoryFiltered,
		},
		{
			name:   "no method configured",
			mutate: func(a *domain.Asset) { a.Method = nil },
			reason: depreciation.ReasonSetupIncomplete,
		},
		{
			name:   "zero purchase price",
			mutate: func(a *domain.Asset) { a.PurchasePrice = decimal.Zero },
			reason: depreciation.ReasonSetupIncomplete,
		},
		{
			name: "start date in the future",
			mutate: func(a *domain.Asset) {
				future := date(2024, 6, 1)
				a.DepreciationStartDate = &future
			},
			reason: depreciation.ReasonStartNotReached,
		},
		{
			name:   "fully depreciated",
			mutate: func(a *domain.Asset) { a.IsFullyDepreciated = true },
			reason: depreciation.ReasonFullyDepreciated,
		},
		{
			name:   "zero monthly rate",
			mutate: func(a *domain.Asset) { a.MonthlyDepreciation = decimal.Zero },
			reason: depreciation.ReasonZeroRate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := eligibleAsset()
			tt.mutate(&asset)

			ok, reason := depreciation.Eligible(asset, tt.filter, date(2024, 1, 31))
			assert.False(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestEligible_PeriodGating(t *testing.T) {
	asset := eligibleAsset()
	processed := date(2024, 1, 31)
	asset.LastDepreciationDate = &processed

	// Same month: not due again.
	ok, reason := depreciation.Eligible(asset, depreciation.CategoryFilter{}, date(2024, 2, 15))
	assert.False(t, ok)
	assert.Equal(t, depreciation.ReasonPeriodProcessed, reason)

	// A full month later: due.
	ok, reason = depreciation.Eligible(asset, depreciation.CategoryFilter{}, date(2024, 2, 29))
	assert.True(t, ok)
	assert.Equal(t, depreciation.ReasonEligible, reason)
}

func TestCategoryFilter(t *testing.T) {
	f := depreciation.CategoryFilter{Include: []string{"a", "b"}, Exclude: []string{"b"}}

	assert.True(t, f.Allows("a"))
	assert.False(t, f.Allows("b"), "exclusion wins over inclusion")
	assert.False(t, f.Allows("c"))

	assert.Equal(t, []string{"b"}, f.Conflicts())
	assert.Empty(t, depreciation.CategoryFilter{}.Conflicts())
	assert.True(t, depreciation.CategoryFilter{}.Allows("anything"))
}
