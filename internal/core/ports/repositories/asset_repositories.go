package repositories

import (
	"context"
	"time"

	"github.com/fixedops/asset_management_app/internal/core/domain"
)

// AssetReader defines read operations for asset data.
type AssetReader interface {
	// FindAssetByID retrieves a specific asset by its unique identifier.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)

	// FindAssetsByIDs retrieves the given assets within a business unit,
	// keyed by asset ID. Missing IDs are simply absent from the map.
	FindAssetsByIDs(ctx context.Context, businessUnitID string, assetIDs []string) (map[string]domain.Asset, error)

	// ListAssets retrieves a paginated list of assets for a business unit
	// using token-based pagination.
	ListAssets(ctx context.Context, businessUnitID string, limit int, nextToken *string) ([]domain.Asset, *string, error)

	// ListDepreciableAssets retrieves the coarse candidate set for a
	// depreciation run: operational status, depreciation setup present,
	// start date reached, not fully depreciated. The fine-grained gating
	// (elapsed period, category filters) is applied by the caller.
	ListDepreciableAssets(ctx context.Context, businessUnitID string, calcDate time.Time) ([]domain.Asset, error)

	// ListRetirableAssets retrieves assets in a retirable lifecycle state,
	// optionally restricted to one category.
	ListRetirableAssets(ctx context.Context, businessUnitID string, categoryID *string) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data.
type AssetWriter interface {
	// SaveAsset persists a new asset and its CREATED history entry in one
	// transaction. When the asset carries no item code, one is generated
	// from the category prefix sequence; the persisted asset is returned.
	SaveAsset(ctx context.Context, asset domain.Asset, history domain.AssetHistory) (*domain.Asset, error)

	// UpdateAsset persists asset changes and the history entries describing
	// them in one transaction.
	UpdateAsset(ctx context.Context, asset domain.Asset, histories []domain.AssetHistory) error
}

// AssetRepositoryFacade combines all asset repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}

// CategoryRepositoryFacade defines read operations for category reference data.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// BusinessUnitRepositoryFacade defines read operations for business unit
// reference data.
type BusinessUnitRepositoryFacade interface {
	FindBusinessUnitByID(ctx context.Context, businessUnitID string) (*domain.BusinessUnit, error)
	ListBusinessUnits(ctx context.Context, activeOnly bool) ([]domain.BusinessUnit, error)
}

// HistoryRepositoryFacade defines read operations for the audit trail.
// History rows are written inside the transactions of the mutating
// repositories, never directly.
type HistoryRepositoryFacade interface {
	ListHistoryByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.AssetHistory, *string, error)
}
