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
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// systemActor stamps audit fields on rows written by unattended runs.
const systemActor = "system"

// depreciationService provides the eligibility preview, the batch scheduler
// and schedule config management.
type depreciationService struct {
	assetRepo        portsrepo.AssetRepositoryFacade
	categoryRepo     portsrepo.CategoryRepositoryFacade
	businessUnitRepo portsrepo.BusinessUnitRepositoryFacade
	depreciationRepo portsrepo.DepreciationRepositoryFacade
	scheduleRepo     portsrepo.ScheduleRepositoryFacade
}

// NewDepreciationService creates a new depreciation engine service.
func NewDepreciationService(
	assetRepo portsrepo.AssetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	businessUnitRepo portsrepo.BusinessUnitRepositoryFacade,
	depreciationRepo portsrepo.DepreciationRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
) portssvc.DepreciationSvcFacade {
	return &depreciationService{
		assetRepo:        assetRepo,
		categoryRepo:     categoryRepo,
		businessUnitRepo: businessUnitRepo,
		depreciationRepo: depreciationRepo,
		scheduleRepo:     scheduleRepo,
	}
}

var _ portssvc.DepreciationSvcFacade = (*depreciationService)(nil)

// snapshotOf extracts the financial slice of an asset the calculator needs.
func snapshotOf(asset domain.Asset) depreciation.FinancialSnapshot {
	snap := depreciation.FinancialSnapshot{
		PurchasePrice:           asset.PurchasePrice,
		SalvageValue:            asset.SalvageValue,
		UsefulLifeYears:         asset.UsefulLifeYears,
		UsefulLifeMonths:        asset.UsefulLifeMonths(),
		BookValue:               asset.BookValue,
		AccumulatedDepreciation: asset.AccumulatedDepreciation,
		MonthlyDepreciation:     asset.MonthlyDepreciation,
		DecliningBalanceRate:    asset.DecliningBalanceRate,
		PerUnitRate:             asset.PerUnitRate,
	}
	if asset.Method != nil {
		snap.Method = *asset.Method
	}
	if asset.DepreciationStartDate != nil {
		snap.DepreciationStartDate = *asset.DepreciationStartDate
	}
	return snap
}

// GetAssetsNeedingDepreciation returns the read-only eligibility preview for
// the given calculation date. Nothing is written.
func (s *depreciationService) GetAssetsNeedingDepreciation(ctx context.Context, businessUnitID string, calcDate time.Time) (*dto.DepreciationPreviewResponse, error) {
	if _, err := s.businessUnitRepo.FindBusinessUnitByID(ctx, businessUnitID); err != nil {
		return nil, err
	}

	candidates, err := s.assetRepo.ListDepreciableAssets(ctx, businessUnitID, calcDate)
	if err != nil {
		return nil, err
	}

	var eligible []domain.Asset
	total := decimal.Zero
	for _, asset := range candidates {
		if ok, _ := depreciation.Eligible(asset, depreciation.CategoryFilter{}, calcDate); ok {
			eligible = append(eligible, asset)
			total = total.Add(asset.MonthlyDepreciation)
		}
	}

	return &dto.DepreciationPreviewResponse{
		Assets:                   dto.ToAssetResponses(eligible),
		IsEndOfMonth:             depreciation.IsEndOfMonth(calcDate),
		TotalCount:               len(eligible),
		TotalMonthlyDepreciation: total,
	}, nil
}

// RunManual executes an on-demand batch run over the filtered asset
// population of one business unit.
func (s *depreciationService) RunManual(ctx context.Context, businessUnitID string, req dto.ManualDepreciationRequest, calcDate time.Time, actorUserID string) (*dto.ScheduledDepreciationResult, error) {
	if _, err := s.businessUnitRepo.FindBusinessUnitByID(ctx, businessUnitID); err != nil {
		return nil, err
	}

	filter := depreciation.CategoryFilter{
		Include: req.IncludeCategoryIDs,
		Exclude: req.ExcludeCategoryIDs,
	}
	if both := filter.Conflicts(); len(both) > 0 {
		return nil, fmt.Errorf("%w: categories %v appear in both include and exclude sets", apperrors.ErrValidation, both)
	}

	if req.CalculationDate != nil {
		calcDate = *req.CalculationDate
	}

	return s.runBatch(ctx, businessUnitID, filter, calcDate, nil, actorUserID)
}

// RunScheduled executes one recurring config if its cadence fires on
// calcDate. A config that is inactive or not due returns (nil, nil).
func (s *depreciationService) RunScheduled(ctx context.Context, config domain.ScheduleConfig, calcDate time.Time) (*dto.ScheduledDepreciationResult, error) {
	if !config.IsActive {
		return nil, nil
	}
	if !depreciation.ShouldRun(config.Cadence, config.ExecutionDay, calcDate) {
		return nil, nil
	}

	filter := depreciation.CategoryFilter{
		Include: config.IncludeCategoryIDs,
		Exclude: config.ExcludeCategoryIDs,
	}
	scheduleID := config.ScheduleID
	return s.runBatch(ctx, config.BusinessUnitID, filter, calcDate, &scheduleID, systemActor)
}

// RunEndOfMonth iterates all active business units, running every due
// schedule config plus the always-on default end-of-month run. The decision
// is a pure function of the injected calcDate, so re-triggering the same day
// is harmless.
func (s *depreciationService) RunEndOfMonth(ctx context.Context, calcDate time.Time) (*dto.EndOfMonthRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := &dto.EndOfMonthRunResult{
		CalculationDate: calcDate,
		IsEndOfMonth:    depreciation.IsEndOfMonth(calcDate),
	}

	units, err := s.businessUnitRepo.ListBusinessUnits(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, bu := range units {
		configs, err := s.scheduleRepo.ListScheduleConfigs(ctx, bu.BusinessUnitID, true)
		if err != nil {
			logger.Error("Failed to list schedule configs; skipping business unit",
				slog.String("business_unit_id", bu.BusinessUnitID), slog.String("error", err.Error()))
			continue
		}

		for _, config := range configs {
			run, err := s.RunScheduled(ctx, config, calcDate)
			if err != nil {
				logger.Error("Scheduled run failed",
					slog.String("schedule_id", config.ScheduleID), slog.String("error", err.Error()))
				continue
			}
			if run != nil {
				result.Runs = append(result.Runs, *run)
			}
		}

		if result.IsEndOfMonth {
			// The default run covers every category the configs did not.
			run, err := s.runBatch(ctx, bu.BusinessUnitID, depreciation.CategoryFilter{}, calcDate, nil, systemActor)
			if err != nil {
				logger.Error("Default end-of-month run failed",
					slog.String("business_unit_id", bu.BusinessUnitID), slog.String("error", err.Error()))
				continue
			}
			result.Runs = append(result.Runs, *run)
		}
	}

	return result, nil
}

// runBatch processes the eligible population of one business unit for one
// calculation date, recording a ScheduleExecution around the whole run and a
// per-asset outcome row for everything it touched. One asset failing never
// aborts the rest of the run.
func (s *depreciationService) runBatch(ctx context.Context, businessUnitID string, filter depreciation.CategoryFilter, calcDate time.Time, scheduleID *string, actor string) (*dto.ScheduledDepreciationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	execution := domain.ScheduleExecution{
		ExecutionID:    uuid.NewString(),
		ScheduleID:     scheduleID,
		BusinessUnitID: businessUnitID,
		ExecutionDate:  calcDate,
		Status:         domain.ExecutionPending,
		TotalAmount:    decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.scheduleRepo.SaveExecution(ctx, execution); err != nil {
		return nil, err
	}

	execution.Status = domain.ExecutionRunning
	if err := s.scheduleRepo.UpdateExecution(ctx, execution); err != nil {
		return nil, err
	}

	candidates, err := s.assetRepo.ListDepreciableAssets(ctx, businessUnitID, calcDate)
	if err != nil {
		execution.Status = domain.ExecutionFailed
		execution.LastUpdatedAt = time.Now().UTC()
		if updateErr := s.scheduleRepo.UpdateExecution(ctx, execution); updateErr != nil {
			logger.Error("Failed to mark execution failed", slog.String("execution_id", execution.ExecutionID), slog.String("error", updateErr.Error()))
		}
		return nil, err
	}

	result := &dto.ScheduledDepreciationResult{
		ExecutionID:       execution.ExecutionID,
		BusinessUnitID:    businessUnitID,
		CalculationDate:   calcDate,
		TotalDepreciation: decimal.Zero,
		Details:           make([]dto.AssetRunDetail, 0, len(candidates)),
	}

	for _, asset := range candidates {
		detail := s.processAsset(ctx, asset, filter, calcDate, actor)
		result.Details = append(result.Details, detail)

		switch detail.Status {
		case dto.RunSuccess:
			result.SuccessfulCalculations++
			result.TotalDepreciation = result.TotalDepreciation.Add(detail.Amount)
		case dto.RunFailed:
			result.FailedCalculations++
		case dto.RunSkipped:
			result.SkippedAssets++
		}
	}
	result.TotalAssetsProcessed = len(result.Details)

	execution.Status = domain.ExecutionCompleted
	execution.AssetsProcessed = result.TotalAssetsProcessed
	execution.Succeeded = result.SuccessfulCalculations
	execution.Failed = result.FailedCalculations
	execution.Skipped = result.SkippedAssets
	execution.TotalAmount = result.TotalDepreciation
	execution.LastUpdatedAt = time.Now().UTC()
	if err := s.scheduleRepo.UpdateExecution(ctx, execution); err != nil {
		logger.Error("Failed to finalize execution record", slog.String("execution_id", execution.ExecutionID), slog.String("error", err.Error()))
	}

	logger.Info("Depreciation batch completed",
		slog.String("execution_id", execution.ExecutionID),
		slog.String("business_unit_id", businessUnitID),
		slog.Int("processed", result.TotalAssetsProcessed),
		slog.Int("succeeded", result.SuccessfulCalculations),
		slog.Int("failed", result.FailedCalculations),
		slog.Int("skipped", result.SkippedAssets),
		slog.String("total", result.TotalDepreciation.String()),
	)
	return result, nil
}

// processAsset runs the full per-asset pipeline: fine-grained eligibility,
// calculation and the atomic ledger write. It reports its outcome as one
// detail row and never returns an error, so the batch keeps going.
func (s *depreciationService) processAsset(ctx context.Context, asset domain.Asset, filter depreciation.CategoryFilter, calcDate time.Time, actor string) dto.AssetRunDetail {
	detail := dto.AssetRunDetail{
		AssetID:        asset.AssetID,
		ItemCode:       asset.ItemCode,
		Amount:         decimal.Zero,
		BookValueAfter: asset.BookValue,
	}

	if ok, reason := depreciation.Eligible(asset, filter, calcDate); !ok {
		// Corrupted financial data on a selected asset is an error the
		// operator must see; everything else is a legitimate skip.
		if reason == depreciation.ReasonSetupIncomplete {
			detail.Status = dto.RunFailed
		} else {
			detail.Status = dto.RunSkipped
		}
		detail.Reason = string(reason)
		return detail
	}

	res, err := depreciation.Calculate(snapshotOf(asset), calcDate)
	if err != nil {
		detail.Status = dto.RunFailed
		detail.Reason = err.Error()
		return detail
	}

	if res.Amount.IsZero() {
		detail.Status = dto.RunSkipped
		detail.Reason = "depreciation amount is zero"
		return detail
	}

	now := time.Now().UTC()
	notes := ""
	if res.UsedMonthlyFallback {
		notes = "No production data for the period; monthly-equivalent amount applied"
	}

	entry := domain.DepreciationEntry{
		EntryID:                      uuid.NewString(),
		AssetID:                      asset.AssetID,
		CalculationDate:              calcDate,
		PeriodStart:                  res.PeriodStart,
		PeriodEnd:                    res.PeriodEnd,
		BookValueBefore:              asset.BookValue,
		BookValueAfter:               res.BookValueAfter,
		Amount:                       res.Amount,
		AccumulatedDepreciationAfter: res.AccumulatedDepreciationAfter,
		Method:                       *asset.Method,
		Notes:                        notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	updated := asset
	updated.BookValue = res.BookValueAfter
	updated.AccumulatedDepreciation = res.AccumulatedDepreciationAfter
	updated.IsFullyDepreciated = res.IsFullyDepreciated
	lastDate := calcDate
	updated.LastDepreciationDate = &lastDate
	nextDate := res.NextDepreciationDate
	updated.NextDepreciationDate = &nextDate
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	bookBefore := asset.BookValue
	bookAfter := res.BookValueAfter
	history := domain.AssetHistory{
		HistoryID:       uuid.NewString(),
		AssetID:         asset.AssetID,
		Action:          domain.ActionDepreciated,
		BookValueBefore: &bookBefore,
		BookValueAfter:  &bookAfter,
		Notes:           fmt.Sprintf("Depreciation of %s applied (%s)", res.Amount, entry.Method),
		ActedBy:         actor,
		OccurredAt:      now,
	}

	if err := s.depreciationRepo.ApplyDepreciation(ctx, entry, updated, history); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another trigger already recorded this period; treat as a skip.
			detail.Status = dto.RunSkipped
			detail.Reason = "period already recorded"
			return detail
		}
		detail.Status = dto.RunFailed
		detail.Reason = err.Error()
		return detail
	}

	detail.Status = dto.RunSuccess
	detail.Amount = res.Amount
	detail.BookValueAfter = res.BookValueAfter
	return detail
}

// CreateScheduleConfig persists a recurring job definition after validating
// its category filter.
func (s *depreciationService) CreateScheduleConfig(ctx context.Context, businessUnitID string, req dto.CreateScheduleConfigRequest, creatorUserID string) (*domain.ScheduleConfig, error) {
	if _, err := s.businessUnitRepo.FindBusinessUnitByID(ctx, businessUnitID); err != nil {
		return nil, err
	}

	filter := depreciation.CategoryFilter{
		Include: req.IncludeCategoryIDs,
		Exclude: req.ExcludeCategoryIDs,
	}
	if both := filter.Conflicts(); len(both) > 0 {
		return nil, fmt.Errorf("%w: categories %v appear in both include and exclude sets", apperrors.ErrValidation, both)
	}

	referenced := append(append([]string{}, req.IncludeCategoryIDs...), req.ExcludeCategoryIDs...)
	if len(referenced) > 0 {
		known, err := s.categoryRepo.FindCategoriesByIDs(ctx, referenced)
		if err != nil {
			return nil, err
		}
		for _, id := range referenced {
			if _, ok := known[id]; !ok {
				return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, id)
			}
		}
	}

	now := time.Now().UTC()
	config := domain.ScheduleConfig{
		ScheduleID:         uuid.NewString(),
		BusinessUnitID:     businessUnitID,
		Name:               req.Name,
		Description:        req.Description,
		Cadence:            domain.Cadence(req.Cadence),
		ExecutionDay:       req.ExecutionDay,
		IsActive:           true,
		IncludeCategoryIDs: req.IncludeCategoryIDs,
		ExcludeCategoryIDs: req.ExcludeCategoryIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.scheduleRepo.SaveScheduleConfig(ctx, config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ListScheduleConfigs lists the recurring jobs of a business unit.
func (s *depreciationService) ListScheduleConfigs(ctx context.Context, businessUnitID string) ([]domain.ScheduleConfig, error) {
	if _, err := s.businessUnitRepo.FindBusinessUnitByID(ctx, businessUnitID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListScheduleConfigs(ctx, businessUnitID, false)
}

// DeactivateScheduleConfig switches a recurring job off.
func (s *depreciationService) DeactivateScheduleConfig(ctx context.Context, businessUnitID string, scheduleID string, userID string) error {
	config, err := s.scheduleRepo.FindScheduleConfigByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if config.BusinessUnitID != businessUnitID {
		return apperrors.ErrNotFound
	}
	return s.scheduleRepo.SetScheduleConfigActive(ctx, scheduleID, false, userID)
}

// ListDepreciationEntries retrieves the ledger for one asset.
func (s *depreciationService) ListDepreciationEntries(ctx context.Context, businessUnitID string, assetID string, limit int, nextToken *string) (*dto.ListDepreciationEntriesResponse, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.BusinessUnitID != businessUnitID {
		return nil, apperrors.ErrNotFound
	}

	entries, token, err := s.depreciationRepo.ListEntriesByAsset(ctx, assetID, limit, nextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListDepreciationEntriesResponse{
		Entries:   dto.ToDepreciationEntryResponses(entries),
		NextToken: token,
	}, nil
}
