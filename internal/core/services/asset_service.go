package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/depreciation"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/core/lifecycle"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// assetService provides the asset registry operations.
type assetService struct {
	assetRepo        portsrepo.AssetRepositoryFacade
	categoryRepo     portsrepo.CategoryRepositoryFacade
	businessUnitRepo portsrepo.BusinessUnitRepositoryFacade
	historyRepo      portsrepo.HistoryRepositoryFacade
}

// NewAssetService creates a new asset registry service.
func NewAssetService(
	assetRepo portsrepo.AssetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	businessUnitRepo portsrepo.BusinessUnitRepositoryFacade,
	historyRepo portsrepo.HistoryRepositoryFacade,
) portssvc.AssetSvcFacade {
	return &assetService{
		assetRepo:        assetRepo,
		categoryRepo:     categoryRepo,
		businessUnitRepo: businessUnitRepo,
		historyRepo:      historyRepo,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// ensureBusinessUnit verifies the scoping business unit exists and is active.
func (s *assetService) ensureBusinessUnit(ctx context.Context, businessUnitID string) error {
	bu, err := s.businessUnitRepo.FindBusinessUnitByID(ctx, businessUnitID)
	if err != nil {
		return err
	}
	if !bu.IsActive {
		return fmt.Errorf("%w: business unit %s is inactive", apperrors.ErrValidation, businessUnitID)
	}
	return nil
}

// CreateAsset validates the request, computes the initial depreciation
// parameters and persists the asset with its CREATED history entry.
func (s *assetService) CreateAsset(ctx context.Context, businessUnitID string, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ensureBusinessUnit(ctx, businessUnitID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, req.CategoryID)
	}

	now := time.Now().UTC()
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	status := domain.StatusAvailable
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		// Pre-assigned assets enter service already deployed.
		status = domain.StatusDeployed
	}

	asset := domain.Asset{
		AssetID:        uuid.NewString(),
		ItemCode:       req.ItemCode,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		BusinessUnitID: businessUnitID,
		DepartmentID:   req.DepartmentID,
		Quantity:       quantity,
		Location:       req.Location,
		Notes:          req.Notes,
		Status:         status,
		IsActive:       true,
		AssignedTo:     req.AssignedTo,
		PurchaseDate:   req.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.PurchasePrice != nil {
		asset.PurchasePrice = *req.PurchasePrice
		asset.BookValue = *req.PurchasePrice
	}
	if req.SalvageValue != nil {
		asset.SalvageValue = *req.SalvageValue
	}
	if req.DecliningBalanceRate != nil {
		asset.DecliningBalanceRate = *req.DecliningBalanceRate
	}
	if req.TotalProductionUnits != nil {
		asset.TotalProductionUnits = *req.TotalProductionUnits
	}

	if req.DepreciationMethod != nil {
		method := domain.DepreciationMethod(*req.DepreciationMethod)
		asset.Method = &method
		asset.UsefulLifeYears = req.UsefulLifeYears
		asset.UsefulLifeExtraMonths = req.UsefulLifeExtraMonths

		startDate := req.DepreciationStartDate
		if startDate == nil {
			startDate = req.PurchaseDate
		}
		if startDate == nil {
			return nil, fmt.Errorf("%w: depreciation start date (or purchase date) is required when a method is set", apperrors.ErrValidation)
		}
		asset.DepreciationStartDate = startDate

		params, err := depreciation.DeriveParameters(depreciation.ParameterInput{
			Method:               method,
			PurchasePrice:        asset.PurchasePrice,
			SalvageValue:         asset.SalvageValue,
			UsefulLifeYears:      asset.UsefulLifeYears,
			UsefulLifeExtra:      asset.UsefulLifeExtraMonths,
			DecliningBalanceRate: asset.DecliningBalanceRate,
			TotalProductionUnits: asset.TotalProductionUnits,
		})
		if err != nil {
			return nil, err
		}
		asset.MonthlyDepreciation = params.MonthlyDepreciation
		asset.PerUnitRate = params.PerUnitRate

		next := depreciation.AddMonthClamped(*startDate, 1)
		asset.NextDepreciationDate = &next
	}

	newStatus := asset.Status
	history := domain.AssetHistory{
		HistoryID:  uuid.NewString(),
		AssetID:    asset.AssetID,
		Action:     domain.ActionCreated,
		NewStatus:  &newStatus,
		Notes:      "Asset created",
		ActedBy:    creatorUserID,
		OccurredAt: now,
	}
	if asset.Location != "" {
		history.NewLocation = &asset.Location
	}

	saved, err := s.assetRepo.SaveAsset(ctx, asset, history)
	if err != nil {
		logger.Error("Failed to save asset", slog.String("asset_id", asset.AssetID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Asset created",
		slog.String("asset_id", saved.AssetID),
		slog.String("item_code", saved.ItemCode),
		slog.String("business_unit_id", businessUnitID),
	)
	return saved, nil
}

// UpdateAsset applies the requested changes, recomputing depreciation
// parameters when the financial setup changes and emitting history entries
// for status and location changes.
func (s *assetService) UpdateAsset(ctx context.Context, businessUnitID string, assetID string, req dto.UpdateAssetRequest, userID string) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.getScopedAsset(ctx, businessUnitID, assetID)
	if err != nil {
		return nil, err
	}
	if !asset.Status.IsOperational() {
		return nil, fmt.Errorf("%w: asset %s is %s and can no longer be updated", apperrors.ErrState, assetID, asset.Status)
	}

	now := time.Now().UTC()
	var histories []domain.AssetHistory

	if req.Status != nil && domain.AssetStatus(*req.Status) != asset.Status {
		newStatus := domain.AssetStatus(*req.Status)
		fx, err := lifecycle.Transition(asset.Status, newStatus)
		if err != nil {
			return nil, err
		}
		prev := asset.Status
		histories = append(histories, domain.AssetHistory{
			HistoryID:      uuid.NewString(),
			AssetID:        asset.AssetID,
			Action:         domain.ActionStatusChange,
			PreviousStatus: &prev,
			NewStatus:      &newStatus,
			ActedBy:        userID,
			OccurredAt:     now,
		})
		asset.Status = newStatus
		if fx.ClearAssignment || newStatus == domain.StatusAvailable {
			asset.AssignedTo = nil
		}
	}

	if req.Location != nil && *req.Location != asset.Location {
		prevLocation := asset.Location
		histories = append(histories, domain.AssetHistory{
			HistoryID:        uuid.NewString(),
			AssetID:          asset.AssetID,
			Action:           domain.ActionLocationMove,
			PreviousLocation: &prevLocation,
			NewLocation:      req.Location,
			ActedBy:          userID,
			OccurredAt:       now,
		})
		asset.Location = *req.Location
	}

	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.DepartmentID != nil {
		asset.DepartmentID = req.DepartmentID
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
	}

	financialsChanged := false
	if req.PurchaseDate != nil {
		asset.PurchaseDate = req.PurchaseDate
	}
	if req.PurchasePrice != nil && !req.PurchasePrice.Equal(asset.PurchasePrice) {
		asset.PurchasePrice = *req.PurchasePrice
		financialsChanged = true
	}
	if req.SalvageValue != nil && !req.SalvageValue.Equal(asset.SalvageValue) {
		asset.SalvageValue = *req.SalvageValue
		financialsChanged = true
	}
	if req.DepreciationMethod != nil {
		method := domain.DepreciationMethod(*req.DepreciationMethod)
		if asset.Method == nil || *asset.Method != method {
			asset.Method = &method
			financialsChanged = true
		}
	}
	if req.UsefulLifeYears != nil && *req.UsefulLifeYears != asset.UsefulLifeYears {
		asset.UsefulLifeYears = *req.UsefulLifeYears
		financialsChanged = true
	}
	if req.UsefulLifeExtraMonths != nil && *req.UsefulLifeExtraMonths != asset.UsefulLifeExtraMonths {
		asset.UsefulLifeExtraMonths = *req.UsefulLifeExtraMonths
		financialsChanged = true
	}
	if req.DepreciationStartDate != nil {
		asset.DepreciationStartDate = req.DepreciationStartDate
		financialsChanged = true
	}
	if req.DecliningBalanceRate != nil && !req.DecliningBalanceRate.Equal(asset.DecliningBalanceRate) {
		asset.DecliningBalanceRate = *req.DecliningBalanceRate
		financialsChanged = true
	}
	if req.TotalProductionUnits != nil && !req.TotalProductionUnits.Equal(asset.TotalProductionUnits) {
		asset.TotalProductionUnits = *req.TotalProductionUnits
		financialsChanged = true
	}

	if financialsChanged && asset.Method != nil {
		params, err := depreciation.DeriveParameters(depreciation.ParameterInput{
			Method:               *asset.Method,
			PurchasePrice:        asset.PurchasePrice,
			SalvageValue:         asset.SalvageValue,
			UsefulLifeYears:      asset.UsefulLifeYears,
			UsefulLifeExtra:      asset.UsefulLifeExtraMonths,
			DecliningBalanceRate: asset.DecliningBalanceRate,
			TotalProductionUnits: asset.TotalProductionUnits,
		})
		if err != nil {
			return nil, err
		}
		asset.MonthlyDepreciation = params.MonthlyDepreciation
		asset.PerUnitRate = params.PerUnitRate
		asset.IsFullyDepreciated = false
		if asset.AccumulatedDepreciation.Equal(decimal.Zero) {
			// No ledger activity yet, so the book value simply tracks the price.
			asset.BookValue = asset.PurchasePrice
		}
	}

	asset.LastUpdatedAt = now
	asset.LastUpdatedBy = userID

	if len(histories) == 0 {
		histories = append(histories, domain.AssetHistory{
			HistoryID:  uuid.NewString(),
			AssetID:    asset.AssetID,
			Action:     domain.ActionUpdated,
			ActedBy:    userID,
			OccurredAt: now,
		})
	}

	if err := s.assetRepo.UpdateAsset(ctx, *asset, histories); err != nil {
		logger.Error("Failed to update asset", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		return nil, err
	}

	return asset, nil
}

// GetAssetByID retrieves one asset scoped to the business unit.
func (s *assetService) GetAssetByID(ctx context.Context, businessUnitID string, assetID string) (*domain.Asset, error) {
	return s.getScopedAsset(ctx, businessUnitID, assetID)
}

// getScopedAsset fetches an asset and hides its existence from callers
// outside its business unit.
func (s *assetService) getScopedAsset(ctx context.Context, businessUnitID string, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.BusinessUnitID != businessUnitID {
		return nil, apperrors.ErrNotFound
	}
	return asset, nil
}

// ListAssets retrieves a paginated asset listing for the business unit.
func (s *assetService) ListAssets(ctx context.Context, businessUnitID string, params dto.ListAssetsParams) (*dto.ListAssetsResponse, error) {
	assets, nextToken, err := s.assetRepo.ListAssets(ctx, businessUnitID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListAssetsResponse{
		Assets:    dto.ToAssetResponses(assets),
		NextToken: nextToken,
	}, nil
}

// ListAssetHistory retrieves the audit trail for one asset.
func (s *assetService) ListAssetHistory(ctx context.Context, businessUnitID string, assetID string, params dto.ListAssetsParams) (*dto.ListAssetHistoryResponse, error) {
	if _, err := s.getScopedAsset(ctx, businessUnitID, assetID); err != nil {
		return nil, err
	}
	history, nextToken, err := s.historyRepo.ListHistoryByAsset(ctx, assetID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListAssetHistoryResponse{
		History:   dto.ToAssetHistoryResponses(history),
		NextToken: nextToken,
	}, nil
}
