package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	"github.com/fixedops/asset_management_app/internal/core/lifecycle"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// retirementService provides the retirement and disposal operations.
type retirementService struct {
	assetRepo      portsrepo.AssetRepositoryFacade
	categoryRepo   portsrepo.CategoryRepositoryFacade
	retirementRepo portsrepo.RetirementRepositoryFacade
	deploymentRepo portsrepo.DeploymentRepositoryFacade
}

// NewRetirementService creates a new retirement service.
func NewRetirementService(
	assetRepo portsrepo.AssetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	retirementRepo portsrepo.RetirementRepositoryFacade,
	deploymentRepo portsrepo.DeploymentRepositoryFacade,
) portssvc.RetirementSvcFacade {
	return &retirementService{
		assetRepo:      assetRepo,
		categoryRepo:   categoryRepo,
		retirementRepo: retirementRepo,
		deploymentRepo: deploymentRepo,
	}
}

var _ portssvc.RetirementSvcFacade = (*retirementService)(nil)

// RetireAssets validates and retires a batch of assets in a single
// transaction. Validation runs over the whole request before anything is
// written: one bad asset rejects the entire batch.
func (s *retirementService) RetireAssets(ctx context.Context, businessUnitID string, req dto.RetireAssetsRequest, actorUserID string) (*dto.RetireAssetsResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reason := domain.RetirementReason(req.Reason)
	if !reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown retirement reason %q", apperrors.ErrValidation, req.Reason)
	}

	// Deduplicate while preserving request order.
	assetIDs := make([]string, 0, len(req.AssetIDs))
	seen := make(map[string]struct{}, len(req.AssetIDs))
	for _, id := range req.AssetIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		assetIDs = append(assetIDs, id)
	}

	assets, err := s.assetRepo.FindAssetsByIDs(ctx, businessUnitID, assetIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range assetIDs {
		if _, ok := assets[id]; !ok {
			return nil, fmt.Errorf("%w: asset %s not found in business unit %s", apperrors.ErrNotFound, id, businessUnitID)
		}
	}

	activeRetirements, err := s.retirementRepo.FindActiveRetirementsByAssetIDs(ctx, assetIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range assetIDs {
		asset := assets[id]
		if !lifecycle.CanRetire(asset.Status) {
			return nil, fmt.Errorf("%w: asset %s (%s) is %s and cannot be retired", apperrors.ErrState, asset.ItemCode, id, asset.Status)
		}
		if _, ok := activeRetirements[id]; ok {
			return nil, fmt.Errorf("%w: asset %s already has an active retirement", apperrors.ErrDuplicate, asset.ItemCode)
		}
	}

	if req.ReplacementAssetID != nil {
		replacementID := *req.ReplacementAssetID
		if _, ok := seen[replacementID]; ok {
			return nil, fmt.Errorf("%w: replacement asset %s is itself being retired", apperrors.ErrValidation, replacementID)
		}
		replacement, err := s.assetRepo.FindAssetByID(ctx, replacementID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: replacement asset %s not found", apperrors.ErrValidation, replacementID)
			}
			return nil, err
		}
		if replacement.BusinessUnitID != businessUnitID {
			return nil, fmt.Errorf("%w: replacement asset %s not found", apperrors.ErrValidation, replacementID)
		}
		if replacement.Status != domain.StatusAvailable {
			return nil, fmt.Errorf("%w: replacement asset %s is %s, not AVAILABLE", apperrors.ErrValidation, replacement.ItemCode, replacement.Status)
		}
	}

	openDeployments, err := s.deploymentRepo.FindOpenDeploymentsByAssetIDs(ctx, assetIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := portsrepo.RetirementBatch{
		Retirements: make([]domain.Retirement, 0, len(assetIDs)),
		Assets:      make([]domain.Asset, 0, len(assetIDs)),
		Histories:   make([]domain.AssetHistory, 0, len(assetIDs)),
	}
	var warnings []string

	for _, id := range assetIDs {
		asset := assets[id]

		batch.Retirements = append(batch.Retirements, domain.Retirement{
			RetirementID:       uuid.NewString(),
			AssetID:            id,
			BusinessUnitID:     businessUnitID,
			RetirementDate:     req.RetirementDate,
			Reason:             reason,
			Method:             req.Method,
			Condition:          req.Condition,
			Notes:              req.Notes,
			ReplacementAssetID: req.ReplacementAssetID,
			DisposalPlanned:    req.DisposalPlanned,
			PlannedDisposalAt:  req.PlannedDisposalAt,
			ApprovedBy:         req.ApprovedBy,
			IsActive:           true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		})

		prevStatus := asset.Status
		newStatus := domain.StatusRetired
		batch.Histories = append(batch.Histories, domain.AssetHistory{
			HistoryID:      uuid.NewString(),
			AssetID:        id,
			Action:         domain.ActionRetired,
			PreviousStatus: &prevStatus,
			NewStatus:      &newStatus,
			Notes:          fmt.Sprintf("Asset retired: %s", reason),
			ActedBy:        actorUserID,
			OccurredAt:     now,
		})

		updated := asset
		updated.Status = domain.StatusRetired
		updated.AssignedTo = nil
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = actorUserID
		batch.Assets = append(batch.Assets, updated)

		if deployment, ok := openDeployments[id]; ok {
			batch.DeploymentClosures = append(batch.DeploymentClosures, portsrepo.DeploymentClosure{
				DeploymentID: deployment.DeploymentID,
				ReturnedDate: req.RetirementDate,
				ReturnNotes:  fmt.Sprintf("Auto-returned on retirement: %s", reason),
				UpdatedBy:    actorUserID,
				UpdatedAt:    now,
			})
			warnings = append(warnings, fmt.Sprintf("Asset %s was deployed to %s; deployment auto-returned", asset.ItemCode, deployment.AssignedTo))
		}
	}

	if err := s.retirementRepo.RetireAssetsInTx(ctx, batch); err != nil {
		logger.Error("Retirement batch failed",
			slog.String("business_unit_id", businessUnitID),
			slog.Int("assets", len(assetIDs)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Assets retired",
		slog.String("business_unit_id", businessUnitID),
		slog.Int("retired", len(assetIDs)),
		slog.Int("deployments_returned", len(batch.DeploymentClosures)),
	)

	return &dto.RetireAssetsResult{
		Success:                true,
		RetiredCount:           len(assetIDs),
		DeployedAssetsReturned: len(batch.DeploymentClosures),
		Warnings:               warnings,
	}, nil
}

// GetRetirableAssets lists assets that may be retired, plus the category
// reference data the selection UI filters on.
func (s *retirementService) GetRetirableAssets(ctx context.Context, businessUnitID string, params dto.RetirableAssetsParams) (*dto.RetirableAssetsResponse, error) {
	assets, err := s.assetRepo.ListRetirableAssets(ctx, businessUnitID, params.CategoryID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RetirableAssetsResponse{
		Assets:     dto.ToAssetResponses(assets),
		TotalCount: len(assets),
		Categories: dto.ToCategoryResponses(categories),
	}, nil
}

// DisposeAsset executes the terminal RETIRED -> DISPOSED transition and
// records the disposal against the retirement it closes out.
func (s *retirementService) DisposeAsset(ctx context.Context, businessUnitID string, req dto.DisposeAssetRequest, actorUserID string) (*domain.Disposal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.assetRepo.FindAssetByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.BusinessUnitID != businessUnitID {
		return nil, apperrors.ErrNotFound
	}

	if _, err := lifecycle.Transition(asset.Status, domain.StatusDisposed); err != nil {
		return nil, err
	}

	retirement, err := s.retirementRepo.FindActiveRetirementByAssetID(ctx, req.AssetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: asset %s has no active retirement record", apperrors.ErrState, asset.ItemCode)
		}
		return nil, err
	}
	if req.DisposalDate.Before(retirement.RetirementDate) {
		return nil, fmt.Errorf("%w: disposal date precedes the retirement date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	proceeds := decimal.Zero
	if req.Proceeds != nil {
		if req.Proceeds.IsNegative() {
			return nil, fmt.Errorf("%w: disposal proceeds must not be negative", apperrors.ErrValidation)
		}
		proceeds = *req.Proceeds
	}

	disposal := domain.Disposal{
		DisposalID:     uuid.NewString(),
		AssetID:        req.AssetID,
		RetirementID:   retirement.RetirementID,
		BusinessUnitID: businessUnitID,
		DisposalDate:   req.DisposalDate,
		Method:         req.Method,
		Proceeds:       proceeds,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	updated := *asset
	updated.Status = domain.StatusDisposed
	updated.IsActive = false
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID

	prevStatus := asset.Status
	newStatus := domain.StatusDisposed
	history := domain.AssetHistory{
		HistoryID:      uuid.NewString(),
		AssetID:        req.AssetID,
		Action:         domain.ActionDisposed,
		PreviousStatus: &prevStatus,
		NewStatus:      &newStatus,
		Notes:          fmt.Sprintf("Asset disposed via %s", req.Method),
		ActedBy:        actorUserID,
		OccurredAt:     now,
	}

	if err := s.retirementRepo.SaveDisposal(ctx, disposal, updated, history); err != nil {
		logger.Error("Disposal failed", slog.String("asset_id", req.AssetID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Asset disposed", slog.String("asset_id", req.AssetID), slog.String("disposal_id", disposal.DisposalID))
	return &disposal, nil
}
