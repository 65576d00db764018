package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationEntry is the persistence model for one ledger row.
type DepreciationEntry struct {
	EntryID                      string             `json:"entryID"`
	AssetID                      string             `json:"assetID"`
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

// ScheduleConfig is the persistence model for a recurring job definition.
// The category sets are stored as text arrays.
type ScheduleConfig struct {
	ScheduleID         string   `json:"scheduleID"`
	BusinessUnitID     string   `json:"businessUnitID"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Cadence            string   `json:"cadence"`
	ExecutionDay       int      `json:"executionDay"`
	IsActive           bool     `json:"isActive"`
	IncludeCategoryIDs []string `json:"includeCategoryIDs"`
	ExcludeCategoryIDs []string `json:"excludeCategoryIDs"`
	AuditFields
}

// ScheduleExecution is the persistence model for one batch run.
type ScheduleExecution struct {
	ExecutionID     string          `json:"executionID"`
	ScheduleID      *string         `json:"scheduleID"`
	BusinessUnitID  string          `json:"businessUnitID"`
	ExecutionDate   time.Time       `json:"executionDate"`
	Status          string          `json:"status"`
	AssetsProcessed int             `json:"assetsProcessed"`
	Succeeded       int             `json:"succeeded"`
	Failed          int             `json:"failed"`
	Skipped         int             `json:"skipped"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AuditFields
}
