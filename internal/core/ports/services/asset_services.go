package services

import (
	"context"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/dto"
)

// AssetSvcFacade is the asset registry surface exposed to handlers.
type AssetSvcFacade interface {
	// CreateAsset validates the request, computes the initial depreciation
	// parameters and persists the asset with its CREATED history entry.
	CreateAsset(ctx context.Context, businessUnitID string, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error)

	// UpdateAsset applies the changes, recomputing depreciation parameters
	// when method, price or life change, and emits history entries for
	// status and location changes.
	UpdateAsset(ctx context.Context, businessUnitID string, assetID string, req dto.UpdateAssetRequest, userID string) (*domain.Asset, error)

	// GetAssetByID retrieves one asset scoped to the business unit.
	GetAssetByID(ctx context.Context, businessUnitID string, assetID string) (*domain.Asset, error)

	// ListAssets retrieves a paginated asset listing.
	ListAssets(ctx context.Context, businessUnitID string, params dto.ListAssetsParams) (*dto.ListAssetsResponse, error)

	// ListAssetHistory retrieves the audit trail for one asset.
	ListAssetHistory(ctx context.Context, businessUnitID string, assetID string, params dto.ListAssetsParams) (*dto.ListAssetHistoryResponse, error)
}
