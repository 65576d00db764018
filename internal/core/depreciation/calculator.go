// Package depreciation holds the pure calculation core: period amount
// computation per method, parameter derivation, the eligibility predicate
// and cadence date math. Nothing in this package performs I/O.
package depreciation

import (
	"fmt"
	"time"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the scale every ledger amount is rounded to.
const moneyPlaces = 2

var twelve = decimal.NewFromInt(12)

// FinancialSnapshot is the slice of an asset's financial state the
// calculator needs for one period.
type FinancialSnapshot struct {
	Method                  domain.DepreciationMethod
	PurchasePrice           decimal.Decimal
	SalvageValue            decimal.Decimal
	UsefulLifeYears         int
	UsefulLifeMonths        int // Total horizon in months (years*12 + extra)
	BookValue               decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	MonthlyDepreciation     decimal.Decimal // Precomputed method-dependent monthly rate
	DecliningBalanceRate    decimal.Decimal // Annual rate, asset-configured
	PerUnitRate             decimal.Decimal
	UnitsConsumed           *decimal.Decimal // Period consumption; nil when no usage feed exists
	DepreciationStartDate   time.Time
}

// Result is the outcome of one period calculation. A zero Amount means the
// period is a no-op and the caller must record the asset as SKIPPED.
type Result struct {
	Amount                       decimal.Decimal
	BookValueAfter               decimal.Decimal
	AccumulatedDepreciationAfter decimal.Decimal
	IsFullyDepreciated           bool
	PeriodStart                  time.Time
	PeriodEnd                    time.Time
	NextDepreciationDate         time.Time
	UsedMonthlyFallback          bool // Units-of-production ran without consumption data
}

// Calculate computes one period of depreciation for the given snapshot.
// The amount is clamped so the resulting book value never falls below the
// salvage value, for every method.
func Calculate(snap FinancialSnapshot, calcDate time.Time) (Result, error) {
	res := Result{
		PeriodStart:          MonthStart(calcDate),
		PeriodEnd:            MonthEnd(calcDate),
		NextDepreciationDate: AddMonthClamped(calcDate, 1),
	}

	raw, usedFallback, err := periodAmount(snap, calcDate)
	if err != nil {
		return Result{}, err
	}
	res.UsedMonthlyFallback = usedFallback

	amount := raw.Round(moneyPlaces)

	// Salvage floor: never depreciate below the salvage value.
	if snap.BookValue.Sub(amount).Cmp(snap.SalvageValue) <= 0 {
		amount = snap.BookValue.Sub(snap.SalvageValue)
		res.IsFullyDepreciated = true
	}

	if amount.Sign() <= 0 {
		// Zero-amount no-op: leave the book value untouched.
		res.Amount = decimal.Zero
		res.BookValueAfter = snap.BookValue
		res.AccumulatedDepreciationAfter = snap.AccumulatedDepreciation
		res.IsFullyDepreciated = snap.BookValue.Equal(snap.SalvageValue)
		return res, nil
	}

	res.Amount = amount
	res.BookValueAfter = snap.BookValue.Sub(amount)
	res.AccumulatedDepreciationAfter = snap.AccumulatedDepreciation.Add(amount)
	return res, nil
}

// periodAmount computes the unclamped depreciation amount for the period.
func periodAmount(snap FinancialSnapshot, calcDate time.Time) (decimal.Decimal, bool, error) {
	switch snap.Method {
	case domain.StraightLine:
		// Fixed periodic amount, applied unchanged every period.
		return snap.MonthlyDepreciation, false, nil

	case domain.DecliningBalance:
		// currentBookValue x (annualRate / 12); the rate is asset-configured.
		return snap.BookValue.Mul(snap.DecliningBalanceRate).Div(twelve), false, nil

	case domain.UnitsOfProduction:
		if snap.UnitsConsumed != nil {
			return snap.PerUnitRate.Mul(*snap.UnitsConsumed), false, nil
		}
		// No consumption feed for the period: fall back to the precomputed
		// monthly-equivalent amount.
		return snap.MonthlyDepreciation, true, nil

	case domain.SumOfYearsDigits:
		return sumOfYearsMonthly(snap, calcDate), false, nil

	default:
		return decimal.Zero, false, fmt.Errorf("%w: unknown depreciation method %q", apperrors.ErrValidation, snap.Method)
	}
}

// sumOfYearsMonthly computes the remaining-life-weighted monthly figure for
// the service year the calculation date falls in:
//
//	depreciable x remainingYears/SYD / 12
//
// The service year is derived from the months elapsed since the
// depreciation start date, so the figure declines each year.
func sumOfYearsMonthly(snap FinancialSnapshot, calcDate time.Time) decimal.Decimal {
	years := lifeYears(snap)
	if years <= 0 {
		return decimal.Zero
	}
	syd := years * (years + 1) / 2

	elapsed := MonthsBetween(snap.DepreciationStartDate, calcDate)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := years - elapsed/12
	if remaining <= 0 {
		return decimal.Zero
	}

	depreciable := snap.PurchasePrice.Sub(snap.SalvageValue)
	return depreciable.
		Mul(decimal.NewFromInt(int64(remaining))).
		Div(decimal.NewFromInt(int64(syd))).
		Div(twelve)
}

// lifeYears is the useful life expressed in whole years, rounding any extra
// months up to a final partial year.
func lifeYears(snap FinancialSnapshot) int {
	if snap.UsefulLifeMonths <= 0 {
		return snap.UsefulLifeYears
	}
	return (snap.UsefulLifeMonths + 11) / 12
}
