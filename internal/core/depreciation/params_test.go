package depreciation_test

import (
	"testing"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/depreciation"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveParameters_StraightLine(t *testing.T) {
	params, err := depreciation.DeriveParameters(depreciation.ParameterInput{
		Method:          domain.StraightLine,
		PurchasePrice:   d("120000"),
		SalvageValue:    d("12000"),
		UsefulLifeYears: 5,
	})
	require.NoError(t, err)
	assert.True(t, params.MonthlyDepreciation.Equal(d("1800")), "monthly %s", params.MonthlyDepreciation)
}

func TestDeriveParameters_ExtraMonthsExtendTheHorizon(t *testing.T) {
	params, err := depreciation.DeriveParameters(depreciation.ParameterInput{
		Method:          domain.StraightLine,
		PurchasePrice:   d("73000"),
		SalvageValue:    d("1000"),
		UsefulLifeYears: 5,
		UsefulLifeExtra: 12,
	})
	require.NoError(t, err)
	// 72000 / 72 months
	assert.True(t, params.MonthlyDepreciation.Equal(d("1000")))
}

func TestDeriveParameters_UnitsOfProduction(t *testing.T) {
	params, err := depreciation.DeriveParameters(depreciation.ParameterInput{
		Method:               domain.UnitsOfProduction,
		PurchasePrice:        d("50000"),
		SalvageValue:         d("5000"),
		UsefulLifeYears:      5,
		TotalProductionUnits: d("100000"),
	})
	require.NoError(t, err)
	assert.True(t, params.PerUnitRate.Equal(d("0.45")), "per-unit %s", params.PerUnitRate)
	assert.True(t, params.MonthlyDepreciation.Equal(d("750")))
}

func TestDeriveParameters_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		in   depreciation.ParameterInput
	}{
		{
			name: "unknown method",
			in:   depreciation.ParameterInput{Method: "MAGIC", PurchasePrice: d("100")},
		},
		{
			name: "zero purchase price",
			in:   depreciation.ParameterInput{Method: domain.StraightLine, PurchasePrice: decimal.Zero, UsefulLifeYears: 5},
		},
		{
			name: "salvage exceeds price",
			in:   depreciation.ParameterInput{Method: domain.StraightLine, PurchasePrice: d("100"), SalvageValue: d("200"), UsefulLifeYears: 5},
		},
		{
			name: "straight line without life",
			in:   depreciation.ParameterInput{Method: domain.StraightLine, PurchasePrice: d("100")},
		},
		{
			name: "declining balance without rate",
			in:   depreciation.ParameterInput{Method: domain.DecliningBalance, PurchasePrice: d("100")},
		},
		{
			name: "units of production without total units",
			in:   depreciation.ParameterInput{Method: domain.UnitsOfProduction, PurchasePrice: d("100"), UsefulLifeYears: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := depreciation.DeriveParameters(tt.in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
