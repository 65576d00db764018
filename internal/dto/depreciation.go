package dto

import (
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunDetailStatus tags the outcome of one asset within a batch run.
type RunDetailStatus string

const (
	RunSuccess RunDetailStatus = "SUCCESS"
	RunFailed  RunDetailStatus = "FAILED"
	RunSkipped RunDetailStatus = "SKIPPED"
)

// ManualDepreciationRequest is the payload for an on-demand batch run.
type ManualDepreciationRequest struct {
	CalculationDate    *time.Time `json:"calculationDate"` // Defaults to today (server clock) when nil
	IncludeCategoryIDs []string   `json:"includeCategoryIDs"`
	ExcludeCategoryIDs []string   `json:"excludeCategoryIDs"`
}

// AssetRunDetail is the per-asset outcome of a batch run. Reason is set for
// every non-SUCCESS row so operators can see exactly what happened.
type AssetRunDetail struct {
	AssetID        string          `json:"assetID"`
	ItemCode       string          `json:"itemCode"`
	Status         RunDetailStatus `json:"status"`
	Amount         decimal.Decimal `json:"amount"`
	BookValueAfter decimal.Decimal `json:"bookValueAfter"`
	Reason         string          `json:"reason,omitempty"`
}

// ScheduledDepreciationResult summarizes one batch run.
type ScheduledDepreciationResult struct {
	ExecutionID            string           `json:"executionID"`
	BusinessUnitID         string           `json:"businessUnitID"`
	CalculationDate        time.Time        `json:"calculationDate"`
	TotalAssetsProcessed   int              `json:"totalAssetsProcessed"`
	SuccessfulCalculations int              `json:"successfulCalculations"`
	FailedCalculations     int              `json:"failedCalculations"`
	SkippedAssets          int              `json:"skippedAssets"`
	TotalDepreciation      decimal.Decimal  `json:"totalDepreciation"`
	Details                []AssetRunDetail `json:"details"`
}

// EndOfMonthRunResult aggregates the per-business-unit results of the
// always-on end-of-month run.
type EndOfMonthRunResult struct {
	CalculationDate time.Time                     `json:"calculationDate"`
	IsEndOfMonth    bool                          `json:"isEndOfMonth"`
	Runs            []ScheduledDepreciationResult `json:"runs"`
}

// DepreciationPreviewResponse is the read-only eligibility preview.
type DepreciationPreviewResponse struct {
	Assets                   []AssetResponse `json:"assets"`
	IsEndOfMonth             bool            `json:"isEndOfMonth"`
	TotalCount               int             `json:"totalCount"`
	TotalMonthlyDepreciation decimal.Decimal `json:"totalMonthlyDepreciation"`
}

// CreateScheduleConfigRequest is the payload for defining a recurring job.
type CreateScheduleConfigRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Cadence            string   `json:"cadence" binding:"required,oneof=MONTHLY QUARTERLY ANNUALLY"`
	ExecutionDay       int      `json:"executionDay" binding:"required,min=1,max=31"`
	IncludeCategoryIDs []string `json:"includeCategoryIDs"`
	ExcludeCategoryIDs []string `json:"excludeCategoryIDs"`
}

// ScheduleConfigResponse is the API representation of a recurring job.
type ScheduleConfigResponse struct {
	ScheduleID         string    `json:"scheduleID"`
	BusinessUnitID     string    `json:"businessUnitID"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Cadence            string    `json:"cadence"`
	ExecutionDay       int       `json:"executionDay"`
	IsActive           bool      `json:"isActive"`
	IncludeCategoryIDs []string  `json:"includeCategoryIDs"`
	ExcludeCategoryIDs []string  `json:"excludeCategoryIDs"`
	CreatedBy          string    `json:"createdBy"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToScheduleConfigResponse converts a domain ScheduleConfig to API form.
func ToScheduleConfigResponse(c *domain.ScheduleConfig) ScheduleConfigResponse {
	return ScheduleConfigResponse{
		ScheduleID:         c.ScheduleID,
		BusinessUnitID:     c.BusinessUnitID,
		Name:               c.Name,
		Description:        c.Description,
		Cadence:            string(c.Cadence),
		ExecutionDay:       c.ExecutionDay,
		IsActive:           c.IsActive,
		IncludeCategoryIDs: c.IncludeCategoryIDs,
		ExcludeCategoryIDs: c.ExcludeCategoryIDs,
		CreatedBy:          c.CreatedBy,
		CreatedAt:          c.CreatedAt,
	}
}

// DepreciationEntryResponse is the API representation of one ledger row.
type DepreciationEntryResponse struct {
	EntryID                      string          `json:"entryID"`
	AssetID                      string          `json:"assetID"`
	CalculationDate              time.Time       `json:"calculationDate"`
	PeriodStart                  time.Time       `json:"periodStart"`
	PeriodEnd                    time.Time       `json:"periodEnd"`
	BookValueBefore              decimal.Decimal `json:"bookValueBefore"`
	BookValueAfter               decimal.Decimal `json:"bookValueAfter"`
	Amount                       decimal.Decimal `json:"amount"`
	AccumulatedDepreciationAfter decimal.Decimal `json:"accumulatedDepreciationAfter"`
	Method                       string          `json:"method"`
	Notes                        string          `json:"notes,omitempty"`
}

// ToDepreciationEntryResponses converts domain ledger entries to API form.
func ToDepreciationEntryResponses(entries []domain.DepreciationEntry) []DepreciationEntryResponse {
	out := make([]DepreciationEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = DepreciationEntryResponse{
			EntryID:                      e.EntryID,
			AssetID:                      e.AssetID,
			CalculationDate:              e.CalculationDate,
			PeriodStart:                  e.PeriodStart,
			PeriodEnd:                    e.PeriodEnd,
			BookValueBefore:              e.BookValueBefore,
			BookValueAfter:               e.BookValueAfter,
			Amount:                       e.Amount,
			AccumulatedDepreciationAfter: e.AccumulatedDepreciationAfter,
			Method:                       e.Method.String(),
			Notes:                        e.Notes,
		}
	}
	return out
}

// ListDepreciationEntriesResponse is a page of ledger entries.
type ListDepreciationEntriesResponse struct {
	Entries   []DepreciationEntryResponse `json:"entries"`
	NextToken *string                     `json:"nextToken,omitempty"`
}
