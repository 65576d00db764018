package repositories

import (
	"context"
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// DeploymentClosure describes the auto-return applied to an open deployment
// when its asset is retired.
type DeploymentClosure struct {
	DeploymentID string
	ReturnedDate time.Time
	ReturnNotes  string
	UpdatedBy    string
	UpdatedAt    time.Time
}

// RetirementBatch is the full set of writes for one retirement request.
// The repository persists all of it in a single transaction: either every
// asset in the request is retired or none are.
type RetirementBatch struct {
	Retirements        []domain.Retirement
	Assets             []domain.Asset // Updated asset rows (status RETIRED, assignment cleared)
	DeploymentClosures []DeploymentClosure
	Histories          []domain.AssetHistory
}

// RetirementReader defines read operations for retirement records.
type RetirementReader interface {
	// FindActiveRetirementsByAssetIDs retrieves active retirement records
	// keyed by asset ID. Assets without one are absent from the map.
	FindActiveRetirementsByAssetIDs(ctx context.Context, assetIDs []string) (map[string]domain.Retirement, error)

	// FindActiveRetirementByAssetID retrieves the active retirement record
	// for a single asset, or apperrors.ErrNotFound.
	FindActiveRetirementByAssetID(ctx context.Context, assetID string) (*domain.Retirement, error)
}

// RetirementWriter defines write operations for retirement and disposal.
type RetirementWriter interface {
	// RetireAssetsInTx persists the whole batch atomically.
	RetireAssetsInTx(ctx context.Context, batch RetirementBatch) error

	// SaveDisposal persists a disposal record, the asset's terminal status
	// change and the history entry in one transaction.
	SaveDisposal(ctx context.Context, disposal domain.Disposal, asset domain.Asset, history domain.AssetHistory) error
}

// RetirementRepositoryFacade combines the retirement interfaces.
type RetirementRepositoryFacade interface {
	RetirementReader
	RetirementWriter
}

// DeploymentRepositoryFacade defines read operations for deployments.
// Deployment closure happens inside the retirement transaction.
type DeploymentRepositoryFacade interface {
	// FindOpenDeploymentsByAssetIDs retrieves open (unreturned) deployments
	// keyed by asset ID.
	FindOpenDeploymentsByAssetIDs(ctx context.Context, assetIDs []string) (map[string]domain.Deployment, error)
}
