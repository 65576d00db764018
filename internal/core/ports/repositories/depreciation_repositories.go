package repositories

import (
	"context"

	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// DepreciationWriter defines write operations for the depreciation ledger.
type DepreciationWriter interface {
	// ApplyDepreciation persists one period for one asset atomically:
	// it appends the ledger entry, updates the asset's financial fields
	// and appends the history entry, all in a single transaction.
	// A (asset, period) uniqueness violation is reported as
	// apperrors.ErrDuplicate so concurrent triggers stay idempotent.
	ApplyDepreciation(ctx context.Context, entry domain.DepreciationEntry, asset domain.Asset, history domain.AssetHistory) error
}

// DepreciationReader defines read operations for the depreciation ledger.
type DepreciationReader interface {
	// ListEntriesByAsset retrieves a paginated list of ledger entries for
	// an asset, newest first.
	ListEntriesByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.DepreciationEntry, *string, error)
}

// DepreciationRepositoryFacade combines the ledger interfaces.
type DepreciationRepositoryFacade interface {
	DepreciationReader
	DepreciationWriter
}

// ScheduleRepositoryFacade defines operations for schedule configs and
// their execution records.
type ScheduleRepositoryFacade interface {
	SaveScheduleConfig(ctx context.Context, config domain.ScheduleConfig) error
	FindScheduleConfigByID(ctx context.Context, scheduleID string) (*domain.ScheduleConfig, error)
	ListScheduleConfigs(ctx context.Context, businessUnitID string, activeOnly bool) ([]domain.ScheduleConfig, error)
	SetScheduleConfigActive(ctx context.Context, scheduleID string, active bool, updatedBy string) error

	SaveExecution(ctx context.Context, execution domain.ScheduleExecution) error
	UpdateExecution(ctx context.Context, execution domain.ScheduleExecution) error
}
