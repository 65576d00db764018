package services

import (
	"context"

	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/dto"
)

// RetirementSvcFacade is the retirement and disposal surface.
type RetirementSvcFacade interface {
	// RetireAssets validates and retires a batch of assets in a single
	// transaction; either every asset in the request is retired or none.
	RetireAssets(ctx context.Context, businessUnitID string, req dto.RetireAssetsRequest, actorUserID string) (*dto.RetireAssetsResult, error)

	// GetRetirableAssets lists assets that may be retired, for operator
	// selection.
	GetRetirableAssets(ctx context.Context, businessUnitID string, params dto.RetirableAssetsParams) (*dto.RetirableAssetsResponse, error)

	// DisposeAsset executes the terminal RETIRED -> DISPOSED transition.
	DisposeAsset(ctx context.Context, businessUnitID string, req dto.DisposeAssetRequest, actorUserID string) (*domain.Disposal, error)
}
