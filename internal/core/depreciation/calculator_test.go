package depreciation_test

import (
	"testing"
	"time"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/depreciation"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func straightLineSnap() depreciation.FinancialSnapshot {
	return depreciation.FinancialSnapshot{
		Method:                domain.StraightLine,
		PurchasePrice:         d("120000"),
		SalvageValue:          d("12000"),
		UsefulLifeYears:       5,
		UsefulLifeMonths:      60,
		BookValue:             d("120000"),
		MonthlyDepreciation:   d("1800"),
		DepreciationStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculate_StraightLine(t *testing.T) {
	calcDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	res, err := depreciation.Calculate(straightLineSnap(), calcDate)
	require.NoError(t, err)

	assert.True(t, res.Amount.Equal(d("1800")), "amount %s", res.Amount)
	assert.True(t, res.BookValueAfter.Equal(d("118200")))
	assert.True(t, res.AccumulatedDepreciationAfter.Equal(d("1800")))
	assert.False(t, res.IsFullyDepreciated)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), res.PeriodStart)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), res.PeriodEnd)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), res.NextDepreciationDate)
}

func TestCalculate_StraightLine_TwelveConsecutivePeriods(t *testing.T) {
	snap := straightLineSnap()
	calcDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		res, err := depreciation.Calculate(snap, calcDate)
		require.NoError(t, err)

		snap.BookValue = res.BookValueAfter
		snap.AccumulatedDepreciation = res.AccumulatedDepreciationAfter
		calcDate = res.NextDepreciationDate
	}

	assert.True(t, snap.AccumulatedDepreciation.Equal(d("21600")), "accumulated %s", snap.AccumulatedDepreciation)
	assert.True(t, snap.BookValue.Equal(d("98400")), "book value %s", snap.BookValue)
}

func TestCalculate_SalvageFloorClampsFinalPeriod(t *testing.T) {
	snap := straightLineSnap()
	// One regular period away from the floor, plus a remainder smaller
	// than the monthly amount.
	snap.BookValue = d("13000")
	snap.AccumulatedDepreciation = d("107000")

	calcDate := time.Date(2028, 12, 31, 0, 0, 0, 0, time.UTC)

	res, err := depreciation.Calculate(snap, calcDate)
	require.NoError(t, err)

	assert.True(t, res.Amount.Equal(d("1000")), "clamped amount %s", res.Amount)
	assert.True(t, res.BookValueAfter.Equal(d("12000")), "book value lands exactly on salvage")
	assert.True(t, res.IsFullyDepreciated)
}

func TestCalculate_FullyDepreciatedAssetIsNoOp(t *testing.T) {
	snap := straightLineSnap()
	snap.BookValue = d("12000")
	snap.AccumulatedDepreciation = d("108000")

	res, err := depreciation.Calculate(snap, time.Date(2029, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, res.Amount.IsZero())
	assert.True(t, res.BookValueAfter.Equal(d("12000")))
	assert.True(t, res.IsFullyDepreciated)
}

func TestCalculate_DecliningBalance(t *testing.T) {
	snap := depreciation.FinancialSnapshot{
		Method:                domain.DecliningBalance,
		PurchasePrice:         d("100000"),
		SalvageValue:          d("10000"),
		BookValue:             d("100000"),
		DecliningBalanceRate:  d("0.40"),
		DepreciationStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	res, err := depreciation.Calculate(snap, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// 100000 * 0.40 / 12
	assert.True(t, res.Amount.Equal(d("3333.33")), "amount %s", res.Amount)

	// The next period computes from the reduced book value.
	snap.BookValue = res.BookValueAfter
	snap.AccumulatedDepreciation = res.AccumulatedDepreciationAfter

	res2, err := depreciation.Calculate(snap, res.NextDepreciationDate)
	require.NoError(t, err)
	assert.True(t, res2.Amount.LessThan(res.Amount), "declining balance amounts must shrink")
}

func TestCalculate_UnitsOfProduction(t *testing.T) {
	units := d("500")
	snap := depreciation.FinancialSnapshot{
		Method:                domain.UnitsOfProduction,
		PurchasePrice:         d("50000"),
		SalvageValue:          d("5000"),
		BookValue:             d("50000"),
		PerUnitRate:           d("0.45"),
		MonthlyDepreciation:   d("750"),
		UnitsConsumed:         &units,
		DepreciationStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	res, err := depreciation.Calculate(snap, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(d("225")), "amount %s", res.Amount)
	assert.False(t, res.UsedMonthlyFallback)
}

func TestCalculate_UnitsOfProduction_FallbackWithoutConsumption(t *testing.T) {
	snap := depreciation.FinancialSnapshot{
		Method:                domain.UnitsOfProduction,
		PurchasePrice:         d("50000"),
		SalvageValue:          d("5000"),
		BookValue:             d("50000"),
		PerUnitRate:           d("0.45"),
		MonthlyDepreciation:   d("750"),
		UnitsConsumed:         nil,
		DepreciationStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	res, err := depreciation.Calculate(snap, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(d("750")))
	assert.True(t, res.UsedMonthlyFallback)
}

func TestCalculate_SumOfYearsDigits(t *testing.T) {
	snap := depreciation.FinancialSnapshot{
		Method:                domain.SumOfYearsDigits,
		PurchasePrice:         d("150000"),
		SalvageValue:          d("0"),
		UsefulLifeYears:       5,
		UsefulLifeMonths:      60,
		BookValue:             d("150000"),
		DepreciationStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	// First service year: 150000 * 5/15 / 12 = 4166.67
	res, err := depreciation.Calculate(snap, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(d("4166.67")), "year-1 amount %s", res.Amount)

	// Second service year: 150000 * 4/15 / 12 = 3333.33
	res2, err := depreciation.Calculate(snap, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res2.Amount.Equal(d("3333.33")), "year-2 amount %s", res2.Amount)
}

func TestCalculate_UnknownMethod(t *testing.T) {
	snap := straightLineSnap()
	snap.Method = domain.DepreciationMethod("MAGIC")

	_, err := depreciation.Calculate(snap, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
