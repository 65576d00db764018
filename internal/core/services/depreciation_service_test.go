package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fixedops/asset_management_app/internal/apperrors"
	"github.com/fixedops/asset_management_app/internal/core/domain"
	portsrepo "github.com/fixedops/asset_management_app/internal/core/ports/repositories"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/core/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAssetsByIDs(ctx context.Context, businessUnitID string, assetIDs []string) (map[string]domain.Asset, error) {
	args := m.Called(ctx, businessUnitID, assetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, businessUnitID string, limit int, nextToken *string) ([]domain.Asset, *string, error) {
	args := m.Called(ctx, businessUnitID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Asset), token, args.Error(2)
}

func (m *MockAssetRepository) ListDepreciableAssets(ctx context.Context, businessUnitID string, calcDate time.Time) ([]domain.Asset, error) {
	args := m.Called(ctx, businessUnitID, calcDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListRetirableAssets(ctx context.Context, businessUnitID string, categoryID *string) ([]domain.Asset, error) {
	args := m.Called(ctx, businessUnitID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset, history domain.AssetHistory) (*domain.Asset, error) {
	args := m.Called(ctx, asset, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset, histories []domain.AssetHistory) error {
	args := m.Called(ctx, asset, histories)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	args := m.Called(ctx, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock BusinessUnitRepository ---
type MockBusinessUnitRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessUnitRepositoryFacade = (*MockBusinessUnitRepository)(nil)

func (m *MockBusinessUnitRepository) FindBusinessUnitByID(ctx context.Context, businessUnitID string) (*domain.BusinessUnit, error) {
	args := m.Called(ctx, businessUnitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessUnit), args.Error(1)
}

func (m *MockBusinessUnitRepository) ListBusinessUnits(ctx context.Context, activeOnly bool) ([]domain.BusinessUnit, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessUnit), args.Error(1)
}

// --- Mock DepreciationRepository ---
type MockDepreciationRepository struct {
	mock.Mock
}

var _ portsrepo.DepreciationRepositoryFacade = (*MockDepreciationRepository)(nil)

func (m *MockDepreciationRepository) ApplyDepreciation(ctx context.Context, entry domain.DepreciationEntry, asset domain.Asset, history domain.AssetHistory) error {
	args := m.Called(ctx, entry, asset, history)
	return args.Error(0)
}

func (m *MockDepreciationRepository) ListEntriesByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.DepreciationEntry, *string, error) {
	args := m.Called(ctx, assetID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.DepreciationEntry), token, args.Error(2)
}

// --- Mock ScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) SaveScheduleConfig(ctx context.Context, config domain.ScheduleConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindScheduleConfigByID(ctx context.Context, scheduleID string) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockScheduleRepository) ListScheduleConfigs(ctx context.Context, businessUnitID string, activeOnly bool) ([]domain.ScheduleConfig, error) {
	args := m.Called(ctx, businessUnitID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleConfig), args.Error(1)
}

func (m *MockScheduleRepository) SetScheduleConfigActive(ctx context.Context, scheduleID string, active bool, updatedBy string) error {
	args := m.Called(ctx, scheduleID, active, updatedBy)
	return args.Error(0)
}

func (m *MockScheduleRepository) SaveExecution(ctx context.Context, execution domain.ScheduleExecution) error {
	args := m.Called(ctx, execution)
	return args.Error(0)
}

func (m *MockScheduleRepository) UpdateExecution(ctx context.Context, execution domain.ScheduleExecution) error {
	args := m.Called(ctx, execution)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DepreciationServiceTestSuite struct {
	suite.Suite
	mockAssetRepo        *MockAssetRepository
	mockCategoryRepo     *MockCategoryRepository
	mockBusinessUnitRepo *MockBusinessUnitRepository
	mockDepreciationRepo *MockDepreciationRepository
	mockScheduleRepo     *MockScheduleRepository
	service              portssvc.DepreciationSvcFacade
	businessUnitID       string
	userID               string
	calcDate             time.Time
	ctx                  context.Context
}

func (suite *DepreciationServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBusinessUnitRepo = new(MockBusinessUnitRepository)
	suite.mockDepreciationRepo = new(MockDepreciationRepository)
	suite.mockScheduleRepo = new(MockScheduleRepository)
	suite.service = services.NewDepreciationService(
		suite.mockAssetRepo,
		suite.mockCategoryRepo,
		suite.mockBusinessUnitRepo,
		suite.mockDepreciationRepo,
		suite.mockScheduleRepo,
	)

	suite.businessUnitID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.calcDate = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()
}

func (suite *DepreciationServiceTestSuite) expectBusinessUnit() {
	suite.mockBusinessUnitRepo.On("FindBusinessUnitByID", suite.ctx, suite.businessUnitID).
		Return(&domain.BusinessUnit{BusinessUnitID: suite.businessUnitID, Name: "HQ", IsActive: true}, nil)
}

func (suite *DepreciationServiceTestSuite) expectExecutionLifecycle() {
	suite.mockScheduleRepo.On("SaveExecution", suite.ctx, mock.AnythingOfType("domain.ScheduleExecution")).Return(nil)
	suite.mockScheduleRepo.On("UpdateExecution", suite.ctx, mock.AnythingOfType("domain.ScheduleExecution")).Return(nil)
}

func (suite *DepreciationServiceTestSuite) depreciableAsset(itemCode string) domain.Asset {
	method := domain.StraightLine
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.Asset{
		AssetID:               uuid.NewString(),
		ItemCode:              itemCode,
		CategoryID:            "cat-1",
		BusinessUnitID:        suite.businessUnitID,
		Status:                domain.StatusAvailable,
		IsActive:              true,
		PurchasePrice:         decimal.NewFromInt(120000),
		SalvageValue:          decimal.NewFromInt(12000),
		Method:                &method,
		UsefulLifeYears:       5,
		DepreciationStartDate: &start,
		BookValue:             decimal.NewFromInt(120000),
		MonthlyDepreciation:   decimal.NewFromInt(1800),
	}
}

// A batch containing one asset with corrupted financial data must report
// that asset as FAILED while the rest of the batch succeeds.
func (suite *DepreciationServiceTestSuite) TestRunManual_CorruptedAssetFailsOthersSucceed() {
	assets := make([]domain.Asset, 0, 5)
	for i := 0; i < 5; i++ {
		assets = append(assets, suite.depreciableAsset("IT-000"+string(rune('1'+i))))
	}
	// Asset 3 lost its purchase price somewhere upstream.
	assets[2].PurchasePrice = decimal.Zero

	suite.expectBusinessUnit()
	suite.expectExecutionLifecycle()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return(assets, nil)
	suite.mockDepreciationRepo.On("ApplyDepreciation", suite.ctx, mock.AnythingOfType("domain.DepreciationEntry"), mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetHistory")).Return(nil)

	result, err := suite.service.RunManual(suite.ctx, suite.businessUnitID, dto.ManualDepreciationRequest{}, suite.calcDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(5, result.TotalAssetsProcessed)
	suite.Equal(4, result.SuccessfulCalculations)
	suite.Equal(1, result.FailedCalculations)
	suite.Equal(0, result.SkippedAssets)
	suite.True(result.TotalDepreciation.Equal(decimal.NewFromInt(7200)), "total %s", result.TotalDepreciation)

	suite.Equal(dto.RunFailed, result.Details[2].Status)
	suite.NotEmpty(result.Details[2].Reason)
	suite.mockDepreciationRepo.AssertNumberOfCalls(suite.T(), "ApplyDepreciation", 4)
}

// Re-running the same period must not write anything: the gating on the
// last depreciation date reports every asset as skipped.
func (suite *DepreciationServiceTestSuite) TestRunManual_RerunSameMonthSkipsEverything() {
	asset := suite.depreciableAsset("IT-0001")
	processed := suite.calcDate
	asset.LastDepreciationDate = &processed

	suite.expectBusinessUnit()
	suite.expectExecutionLifecycle()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return([]domain.Asset{asset}, nil)

	result, err := suite.service.RunManual(suite.ctx, suite.businessUnitID, dto.ManualDepreciationRequest{}, suite.calcDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SkippedAssets)
	suite.Equal(0, result.SuccessfulCalculations)
	suite.True(result.TotalDepreciation.IsZero())
	suite.mockDepreciationRepo.AssertNotCalled(suite.T(), "ApplyDepreciation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A concurrent trigger that already recorded the period surfaces as a
// duplicate from the repository and is reported as skipped, not failed.
func (suite *DepreciationServiceTestSuite) TestRunManual_DuplicatePeriodFromRepositoryIsSkipped() {
	asset := suite.depreciableAsset("IT-0001")

	suite.expectBusinessUnit()
	suite.expectExecutionLifecycle()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return([]domain.Asset{asset}, nil)
	suite.mockDepreciationRepo.On("ApplyDepreciation", suite.ctx, mock.AnythingOfType("domain.DepreciationEntry"), mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetHistory")).
		Return(apperrors.NewAppError(409, "already recorded", apperrors.ErrDuplicate))

	result, err := suite.service.RunManual(suite.ctx, suite.businessUnitID, dto.ManualDepreciationRequest{}, suite.calcDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SkippedAssets)
	suite.Equal(0, result.FailedCalculations)
	suite.Equal(dto.RunSkipped, result.Details[0].Status)
	suite.Equal("period already recorded", result.Details[0].Reason)
}

func (suite *DepreciationServiceTestSuite) TestRunManual_CategoryFilterExcludes() {
	included := suite.depreciableAsset("IT-0001")
	excluded := suite.depreciableAsset("FN-0001")
	excluded.CategoryID = "cat-2"

	suite.expectBusinessUnit()
	suite.expectExecutionLifecycle()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return([]domain.Asset{included, excluded}, nil)
	suite.mockDepreciationRepo.On("ApplyDepreciation", suite.ctx, mock.AnythingOfType("domain.DepreciationEntry"), mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetHistory")).Return(nil)

	req := dto.ManualDepreciationRequest{ExcludeCategoryIDs: []string{"cat-2"}}
	result, err := suite.service.RunManual(suite.ctx, suite.businessUnitID, req, suite.calcDate, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.SuccessfulCalculations)
	suite.Equal(1, result.SkippedAssets)
	suite.Equal(dto.RunSkipped, result.Details[1].Status)
	suite.mockDepreciationRepo.AssertNumberOfCalls(suite.T(), "ApplyDepreciation", 1)
}

func (suite *DepreciationServiceTestSuite) TestRunManual_ConflictingFilterRejected() {
	suite.expectBusinessUnit()

	req := dto.ManualDepreciationRequest{
		IncludeCategoryIDs: []string{"cat-1"},
		ExcludeCategoryIDs: []string{"cat-1"},
	}
	_, err := suite.service.RunManual(suite.ctx, suite.businessUnitID, req, suite.calcDate, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SaveExecution", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunScheduled_NotDueReturnsNil() {
	config := domain.ScheduleConfig{
		ScheduleID:     uuid.NewString(),
		BusinessUnitID: suite.businessUnitID,
		Cadence:        domain.CadenceMonthly,
		ExecutionDay:   15,
		IsActive:       true,
	}

	result, err := suite.service.RunScheduled(suite.ctx, config, suite.calcDate)

	suite.NoError(err)
	suite.Nil(result)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SaveExecution", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunScheduled_InactiveReturnsNil() {
	config := domain.ScheduleConfig{
		ScheduleID:     uuid.NewString(),
		BusinessUnitID: suite.businessUnitID,
		Cadence:        domain.CadenceMonthly,
		ExecutionDay:   31,
		IsActive:       false,
	}

	result, err := suite.service.RunScheduled(suite.ctx, config, suite.calcDate)

	suite.NoError(err)
	suite.Nil(result)
}

func (suite *DepreciationServiceTestSuite) TestGetAssetsNeedingDepreciation_Preview() {
	due := suite.depreciableAsset("IT-0001")
	fullyDepreciated := suite.depreciableAsset("IT-0002")
	fullyDepreciated.IsFullyDepreciated = true

	suite.expectBusinessUnit()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return([]domain.Asset{due, fullyDepreciated}, nil)

	resp, err := suite.service.GetAssetsNeedingDepreciation(suite.ctx, suite.businessUnitID, suite.calcDate)

	suite.Require().NoError(err)
	suite.Equal(1, resp.TotalCount)
	suite.True(resp.IsEndOfMonth)
	suite.True(resp.TotalMonthlyDepreciation.Equal(decimal.NewFromInt(1800)))
	// Preview is read-only.
	suite.mockDepreciationRepo.AssertNotCalled(suite.T(), "ApplyDepreciation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SaveExecution", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunEndOfMonth_RunsDueConfigsAndDefault() {
	bu := domain.BusinessUnit{BusinessUnitID: suite.businessUnitID, Name: "HQ", IsActive: true}
	dueConfig := domain.ScheduleConfig{
		ScheduleID:     uuid.NewString(),
		BusinessUnitID: suite.businessUnitID,
		Cadence:        domain.CadenceMonthly,
		ExecutionDay:   31,
		IsActive:       true,
	}

	suite.mockBusinessUnitRepo.On("ListBusinessUnits", suite.ctx, true).Return([]domain.BusinessUnit{bu}, nil)
	suite.mockScheduleRepo.On("ListScheduleConfigs", suite.ctx, suite.businessUnitID, true).Return([]domain.ScheduleConfig{dueConfig}, nil)
	suite.expectExecutionLifecycle()
	suite.mockAssetRepo.On("ListDepreciableAssets", suite.ctx, suite.businessUnitID, suite.calcDate).Return([]domain.Asset{}, nil)

	result, err := suite.service.RunEndOfMonth(suite.ctx, suite.calcDate)

	suite.Require().NoError(err)
	suite.True(result.IsEndOfMonth)
	// One run for the due config, one default end-of-month run.
	suite.Len(result.Runs, 2)
}

func (suite *DepreciationServiceTestSuite) TestRunEndOfMonth_MidMonthOnlyRunsDueConfigs() {
	midMonth := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	bu := domain.BusinessUnit{BusinessUnitID: suite.businessUnitID, Name: "HQ", IsActive: true}

	suite.mockBusinessUnitRepo.On("ListBusinessUnits", suite.ctx, true).Return([]domain.BusinessUnit{bu}, nil)
	suite.mockScheduleRepo.On("ListScheduleConfigs", suite.ctx, suite.businessUnitID, true).Return([]domain.ScheduleConfig{}, nil)

	result, err := suite.service.RunEndOfMonth(suite.ctx, midMonth)

	suite.Require().NoError(err)
	suite.False(result.IsEndOfMonth)
	suite.Empty(result.Runs)
}

func (suite *DepreciationServiceTestSuite) TestCreateScheduleConfig_UnknownCategoryRejected() {
	suite.expectBusinessUnit()
	suite.mockCategoryRepo.On("FindCategoriesByIDs", suite.ctx, []string{"cat-missing"}).Return(map[string]domain.Category{}, nil)

	req := dto.CreateScheduleConfigRequest{
		Name:               "monthly it",
		Cadence:            string(domain.CadenceMonthly),
		ExecutionDay:       31,
		IncludeCategoryIDs: []string{"cat-missing"},
	}
	_, err := suite.service.CreateScheduleConfig(suite.ctx, suite.businessUnitID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SaveScheduleConfig", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestCreateScheduleConfig_Success() {
	suite.expectBusinessUnit()
	suite.mockScheduleRepo.On("SaveScheduleConfig", suite.ctx, mock.AnythingOfType("domain.ScheduleConfig")).Return(nil)

	req := dto.CreateScheduleConfigRequest{
		Name:         "monthly all",
		Cadence:      string(domain.CadenceMonthly),
		ExecutionDay: 31,
	}
	config, err := suite.service.CreateScheduleConfig(suite.ctx, suite.businessUnitID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(config.IsActive)
	suite.Equal(suite.businessUnitID, config.BusinessUnitID)
	suite.Equal(domain.CadenceMonthly, config.Cadence)
}

func (suite *DepreciationServiceTestSuite) TestDeactivateScheduleConfig_WrongBusinessUnit() {
	config := domain.ScheduleConfig{
		ScheduleID:     "sched-1",
		BusinessUnitID: "some-other-unit",
	}
	suite.mockScheduleRepo.On("FindScheduleConfigByID", suite.ctx, "sched-1").Return(&config, nil)

	err := suite.service.DeactivateScheduleConfig(suite.ctx, suite.businessUnitID, "sched-1", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SetScheduleConfigActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDepreciationService(t *testing.T) {
	suite.Run(t, new(DepreciationServiceTestSuite))
}
