package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationEntry is one ledger row per asset per processed period.
// Entries are append-only and never updated or deleted; for a given asset
// they are strictly chronologically ordered and periods do not overlap.
type DepreciationEntry struct {
	EntryID                      string             `json:"entryID"` // Primary Key (UUID)
	AssetID                      string             `json:"assetID"` // FK -> assets
	CalculationDate              time.Time          `json:"calculationDate"`
	PeriodStart                  time.Time          `json:"periodStart"`
	PeriodEnd                    time.Time          `json:"periodEnd"`
	BookValueBefore              decimal.Decimal    `json:"bookValueBefore"`
	BookValueAfter               decimal.Decimal    `json:"bookValueAfter"`
	Amount                       decimal.Decimal    `json:"amount"`
	AccumulatedDepreciationAfter decimal.Decimal    `json:"accumulatedDepreciationAfter"`
	Method                       DepreciationMethod `json:"method"`
	Notes                        string             `json:"notes"`
	AuditFields
}

// Cadence is the recurrence of a schedule config.
type Cadence string

const (
	CadenceMonthly   Cadence = "MONTHLY"
	CadenceQuarterly Cadence = "QUARTERLY"
	CadenceAnnually  Cadence = "ANNUALLY"
)

// IsValid checks whether the cadence is known.
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceMonthly, CadenceQuarterly, CadenceAnnually:
		return true
	default:
		return false
	}
}

// ScheduleConfig is a named recurring depreciation job.
// IncludeCategoryIDs and ExcludeCategoryIDs are mutually exclusive per
// category: a category must not appear in both sets.
type ScheduleConfig struct {
	ScheduleID         string   `json:"scheduleID"` // Primary Key (UUID)
	BusinessUnitID     string   `json:"businessUnitID"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Cadence            Cadence  `json:"cadence"`
	ExecutionDay       int      `json:"executionDay"` // 1-31, clamped to month length
	IsActive           bool     `json:"isActive"`
	IncludeCategoryIDs []string `json:"includeCategoryIDs"`
	ExcludeCategoryIDs []string `json:"excludeCategoryIDs"`
	AuditFields
}

// ExecutionStatus is the state of one batch run.
type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "PENDING"
	ExecutionRunning   ExecutionStatus = "RUNNING"
	ExecutionCompleted ExecutionStatus = "COMPLETED"
	ExecutionFailed    ExecutionStatus = "FAILED"
)

// ScheduleExecution is one row per batch run of a ScheduleConfig, or of an
// ad hoc manual run (ScheduleID nil).
type ScheduleExecution struct {
	ExecutionID     string          `json:"executionID"` // Primary Key (UUID)
	ScheduleID      *string         `json:"scheduleID"`  // Nil for manual / default end-of-month runs
	BusinessUnitID  string          `json:"businessUnitID"`
	ExecutionDate   time.Time       `json:"executionDate"`
	Status          ExecutionStatus `json:"status"`
	AssetsProcessed int             `json:"assetsProcessed"`
	Succeeded       int             `json:"succeeded"`
	Failed          int             `json:"failed"`
	Skipped         int             `json:"skipped"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AuditFields
}
