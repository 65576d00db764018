package depreciation

import (
	"fmt"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Parameters are the precomputed depreciation rates stored on an asset,
// derived at creation and re-derived whenever method, price or life change.
type Parameters struct {
	MonthlyDepreciation decimal.Decimal
	PerUnitRate         decimal.Decimal
}

// ParameterInput carries the financial fields parameter derivation needs.
type ParameterInput struct {
	Method               domain.DepreciationMethod
	PurchasePrice        decimal.Decimal
	SalvageValue         decimal.Decimal
	UsefulLifeYears      int
	UsefulLifeExtra      int // Extra months on top of whole years
	DecliningBalanceRate decimal.Decimal // Annual rate
	TotalProductionUnits decimal.Decimal
}

// DeriveParameters validates the financial setup and computes the initial
// monthly depreciation figure (and per-unit rate for units-of-production).
func DeriveParameters(in ParameterInput) (Parameters, error) {
	if !in.Method.IsValid() {
		return Parameters{}, fmt.Errorf("%w: unknown depreciation method %q", apperrors.ErrValidation, in.Method)
	}
	if !in.PurchasePrice.IsPositive() {
		return Parameters{}, fmt.Errorf("%w: purchase price must be positive when a depreciation method is set", apperrors.ErrValidation)
	}
	if in.SalvageValue.IsNegative() {
		return Parameters{}, fmt.Errorf("%w: salvage value must not be negative", apperrors.ErrValidation)
	}
	if in.SalvageValue.Cmp(in.PurchasePrice) > 0 {
		return Parameters{}, fmt.Errorf("%w: salvage value %s exceeds purchase price %s", apperrors.ErrValidation, in.SalvageValue, in.PurchasePrice)
	}

	lifeMonths := in.UsefulLifeYears*12 + in.UsefulLifeExtra
	depreciable := in.PurchasePrice.Sub(in.SalvageValue)
	months := decimal.NewFromInt(int64(lifeMonths))

	var params Parameters
	switch in.Method {
	case domain.StraightLine:
		if lifeMonths <= 0 {
			return Parameters{}, fmt.Errorf("%w: useful life is required for straight-line depreciation", apperrors.ErrValidation)
		}
		params.MonthlyDepreciation = depreciable.Div(months).Round(moneyPlaces)

	case domain.DecliningBalance:
		if !in.DecliningBalanceRate.IsPositive() {
			return Parameters{}, fmt.Errorf("%w: declining-balance rate is required", apperrors.ErrValidation)
		}
		// Initial figure only; the calculator recomputes from the current
		// book value every period.
		params.MonthlyDepreciation = in.PurchasePrice.Mul(in.DecliningBalanceRate).Div(twelve).Round(moneyPlaces)

	case domain.UnitsOfProduction:
		if !in.TotalProductionUnits.IsPositive() {
			return Parameters{}, fmt.Errorf("%w: total expected production units are required", apperrors.ErrValidation)
		}
		if lifeMonths <= 0 {
			return Parameters{}, fmt.Errorf("%w: useful life is required for the monthly-equivalent fallback", apperrors.ErrValidation)
		}
		params.PerUnitRate = depreciable.Div(in.TotalProductionUnits)
		params.MonthlyDepreciation = depreciable.Div(months).Round(moneyPlaces)

	case domain.SumOfYearsDigits:
		if lifeMonths <= 0 {
			return Parameters{}, fmt.Errorf("%w: useful life is required for sum-of-years-digits depreciation", apperrors.ErrValidation)
		}
		years := (lifeMonths + 11) / 12
		syd := years * (years + 1) / 2
		params.MonthlyDepreciation = depreciable.
			Mul(decimal.NewFromInt(int64(years))).
			Div(decimal.NewFromInt(int64(syd))).
			Div(twelve).
			Round(moneyPlaces)
	}

	return params, nil
}
