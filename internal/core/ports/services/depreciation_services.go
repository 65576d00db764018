package services

import (
	"context"
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/dto"
)

// DepreciationSvcFacade is the depreciation engine surface: the eligibility
// preview, the batch scheduler and schedule config management.
type DepreciationSvcFacade interface {
	// GetAssetsNeedingDepreciation returns the read-only eligibility
	// preview for the given calculation date.
	GetAssetsNeedingDepreciation(ctx context.Context, businessUnitID string, calcDate time.Time) (*dto.DepreciationPreviewResponse, error)

	// RunManual executes an on-demand batch run over the filtered asset
	// population of one business unit.
	RunManual(ctx context.Context, businessUnitID string, req dto.ManualDepreciationRequest, calcDate time.Time, actorUserID string) (*dto.ScheduledDepreciationResult, error)

	// RunScheduled executes one recurring config if its cadence fires on
	// calcDate; it returns nil when the config is not due.
	RunScheduled(ctx context.Context, config domain.ScheduleConfig, calcDate time.Time) (*dto.ScheduledDepreciationResult, error)

	// RunEndOfMonth iterates all active business units, running every due
	// schedule config plus the always-on default end-of-month run. The
	// decision is a pure function of the injected calcDate.
	RunEndOfMonth(ctx context.Context, calcDate time.Time) (*dto.EndOfMonthRunResult, error)

	// CreateScheduleConfig persists a recurring job definition.
	CreateScheduleConfig(ctx context.Context, businessUnitID string, req dto.CreateScheduleConfigRequest, creatorUserID string) (*domain.ScheduleConfig, error)

	// ListScheduleConfigs lists the recurring jobs of a business unit.
	ListScheduleConfigs(ctx context.Context, businessUnitID string) ([]domain.ScheduleConfig, error)

	// DeactivateScheduleConfig switches a recurring job off.
	DeactivateScheduleConfig(ctx context.Context, businessUnitID string, scheduleID string, userID string) error

	// ListDepreciationEntries retrieves the ledger for one asset.
	ListDepreciationEntries(ctx context.Context, businessUnitID string, assetID string, limit int, nextToken *string) (*dto.ListDepreciationEntriesResponse, error)
}
