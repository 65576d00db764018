package depreciation

import (
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// lastMonthOfQuarter reports whether t falls in Mar/Jun/Sep/Dec.
func lastMonthOfQuarter(t time.Time) bool {
	switch t.Month() {
	case time.March, time.June, time.September, time.December:
		return true
	default:
		return false
	}
}

// ShouldRun decides whether a recurring schedule with the given cadence and
// execution day fires on date. The configured day is clamped to the length
// of the month, so day-31 monthly schedules still fire in February.
func ShouldRun(cadence domain.Cadence, executionDay int, date time.Time) bool {
	onDay := date.Day() == ClampDay(executionDay, date)
	switch cadence {
	case domain.CadenceMonthly:
		return onDay
	case domain.CadenceQuarterly:
		return onDay && lastMonthOfQuarter(date)
	case domain.CadenceAnnually:
		return onDay && date.Month() == time.December
	default:
		return false
	}
}
