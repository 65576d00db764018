package depreciation_test

import (
	"testing"
	"time"

	"github.com/fixedops/asset_management_app/internal/core/depreciation"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthClamped(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain month", date(2024, 3, 15), 1, date(2024, 4, 15)},
		{"jan 31 clamps to feb 29 in a leap year", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"jan 31 clamps to feb 28 otherwise", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"may 31 clamps to jun 30", date(2024, 5, 31), 1, date(2024, 6, 30)},
		{"across year boundary", date(2024, 12, 31), 1, date(2025, 1, 31)},
		{"several months at once", date(2024, 1, 31), 3, date(2024, 4, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, depreciation.AddMonthClamped(tt.in, tt.n))
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), depreciation.MonthStart(date(2024, 2, 17)))
	assert.Equal(t, date(2024, 2, 29), depreciation.MonthEnd(date(2024, 2, 17)))
	assert.Equal(t, date(2023, 2, 28), depreciation.MonthEnd(date(2023, 2, 1)))

	assert.True(t, depreciation.IsEndOfMonth(date(2024, 2, 29)))
	assert.False(t, depreciation.IsEndOfMonth(date(2024, 2, 28)))
	assert.True(t, depreciation.IsEndOfMonth(date(2024, 4, 30)))
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, 29, depreciation.ClampDay(31, date(2024, 2, 1)))
	assert.Equal(t, 28, depreciation.ClampDay(31, date(2023, 2, 1)))
	assert.Equal(t, 31, depreciation.ClampDay(31, date(2024, 1, 1)))
	assert.Equal(t, 1, depreciation.ClampDay(0, date(2024, 1, 1)))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, depreciation.MonthsBetween(date(2024, 1, 1), date(2025, 1, 1)))
	assert.Equal(t, 0, depreciation.MonthsBetween(date(2024, 1, 15), date(2024, 2, 14)))
	// A month ending before the anchor day still counts when it is the
	// last day of its month.
	assert.Equal(t, 1, depreciation.MonthsBetween(date(2024, 1, 31), date(2024, 2, 29)))
}

func TestShouldRun(t *testing.T) {
	tests := []struct {
		name         string
		cadence      domain.Cadence
		executionDay int
		date         time.Time
		want         bool
	}{
		{"monthly fires on its day", domain.CadenceMonthly, 15, date(2024, 3, 15), true},
		{"monthly silent on other days", domain.CadenceMonthly, 15, date(2024, 3, 16), false},
		{"day 31 monthly fires on feb 29", domain.CadenceMonthly, 31, date(2024, 2, 29), true},
		{"quarterly fires only in quarter-end months", domain.CadenceQuarterly, 31, date(2024, 3, 31), true},
		{"quarterly silent in other months", domain.CadenceQuarterly, 31, date(2024, 4, 30), false},
		{"annually fires only in december", domain.CadenceAnnually, 31, date(2024, 12, 31), true},
		{"annually silent in june", domain.CadenceAnnually, 31, date(2024, 6, 30), false},
		{"unknown cadence never fires", domain.Cadence("WEEKLY"), 1, date(2024, 3, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, depreciation.ShouldRun(tt.cadence, tt.executionDay, tt.date))
		})
	}
}
