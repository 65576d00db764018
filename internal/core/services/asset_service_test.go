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

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

var _ portsrepo.HistoryRepositoryFacade = (*MockHistoryRepository)(nil)

func (m *MockHistoryRepository) ListHistoryByAsset(ctx context.Context, assetID string, limit int, nextToken *string) ([]domain.AssetHistory, *string, error) {
	args := m.Called(ctx, assetID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.AssetHistory), token, args.Error(2)
}

// --- Test Suite Setup ---
type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo        *MockAssetRepository
	mockCategoryRepo     *MockCategoryRepository
	mockBusinessUnitRepo *MockBusinessUnitRepository
	mockHistoryRepo      *MockHistoryRepository
	service              portssvc.AssetSvcFacade
	businessUnitID       string
	userID               string
	ctx                  context.Context
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBusinessUnitRepo = new(MockBusinessUnitRepository)
	suite.mockHistoryRepo = new(MockHistoryRepository)
	suite.service = services.NewAssetService(
		suite.mockAssetRepo,
		suite.mockCategoryRepo,
		suite.mockBusinessUnitRepo,
		suite.mockHistoryRepo,
	)

	suite.businessUnitID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *AssetServiceTestSuite) expectBusinessUnit() {
	suite.mockBusinessUnitRepo.On("FindBusinessUnitByID", suite.ctx, suite.businessUnitID).
		Return(&domain.BusinessUnit{BusinessUnitID: suite.businessUnitID, Name: "HQ", IsActive: true}, nil)
}

func (suite *AssetServiceTestSuite) expectCategory() {
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "cat-1").
		Return(&domain.Category{CategoryID: "cat-1", Name: "IT Equipment", CodePrefix: "IT", IsActive: true}, nil)
}

func createRequest() dto.CreateAssetRequest {
	price := decimal.NewFromInt(120000)
	salvage := decimal.NewFromInt(12000)
	method := string(domain.StraightLine)
	purchased := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateAssetRequest{
		Description:        "Rack server",
		CategoryID:         "cat-1",
		PurchaseDate:       &purchased,
		PurchasePrice:      &price,
		SalvageValue:       &salvage,
		DepreciationMethod: &method,
		UsefulLifeYears:    5,
	}
}

func (suite *AssetServiceTestSuite) TestCreateAsset_DerivesDepreciationParameters() {
	suite.expectBusinessUnit()
	suite.expectCategory()
	suite.mockAssetRepo.On("SaveAsset", suite.ctx, mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetHistory")).
		Return(&domain.Asset{}, nil)

	_, err := suite.service.CreateAsset(suite.ctx, suite.businessUnitID, createRequest(), suite.userID)

	suite.Require().NoError(err)

	asset := suite.mockAssetRepo.Calls[0].Arguments.Get(1).(domain.Asset)
	suite.Equal(domain.StatusAvailable, asset.Status)
	suite.True(asset.BookValue.Equal(decimal.NewFromInt(120000)), "book value starts at purchase price")
	suite.True(asset.MonthlyDepreciation.Equal(decimal.NewFromInt(1800)), "monthly %s", asset.MonthlyDepreciation)
	// Start date falls back to the purchase date.
	suite.Require().NotNil(asset.DepreciationStartDate)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *asset.DepreciationStartDate)
	suite.Require().NotNil(asset.NextDepreciationDate)
	suite.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *asset.NextDepreciationDate)

	history := suite.mockAssetRepo.Calls[0].Arguments.Get(2).(domain.AssetHistory)
	suite.Equal(domain.ActionCreated, history.Action)
}

func (suite *AssetServiceTestSuite) TestCreateAsset_PreAssignedEntersDeployed() {
	suite.expectBusinessUnit()
	suite.expectCategory()
	suite.mockAssetRepo.On("SaveAsset", suite.ctx, mock.AnythingOfType("domain.Asset"), mock.AnythingOfType("domain.AssetHistory")).
		Return(&domain.Asset{}, nil)

	req := createRequest()
	employee := "emp-7"
	req.AssignedTo = &employee

	_, err := suite.service.CreateAsset(suite.ctx, suite.businessUnitID, req, suite.userID)

	suite.Require().NoError(err)
	asset := suite.mockAssetRepo.Calls[0].Arguments.Get(1).(domain.Asset)
	suite.Equal(domain.StatusDeployed, asset.Status)
}

func (suite *AssetServiceTestSuite) TestCreateAsset_MethodWithoutAnyStartDateRejected() {
	suite.expectBusinessUnit()
	suite.expectCategory()

	req := createRequest()
	req.PurchaseDate = nil
	req.DepreciationStartDate = nil

	_, err := suite.service.CreateAsset(suite.ctx, suite.businessUnitID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestCreateAsset_InactiveCategoryRejected() {
	suite.expectBusinessUnit()
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "cat-1").
		Return(&domain.Category{CategoryID: "cat-1", Name: "Legacy", CodePrefix: "LG", IsActive: false}, nil)

	_, err := suite.service.CreateAsset(suite.ctx, suite.businessUnitID, createRequest(), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_IllegalTransitionRejected() {
	asset := domain.Asset{
		AssetID:        "asset-1",
		BusinessUnitID: suite.businessUnitID,
		Status:         domain.StatusDamaged,
	}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset-1").Return(&asset, nil)

	status := string(domain.StatusDeployed)
	req := dto.UpdateAssetRequest{Status: &status}

	_, err := suite.service.UpdateAsset(suite.ctx, suite.businessUnitID, "asset-1", req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_RetiredAssetRejected() {
	asset := domain.Asset{
		AssetID:        "asset-1",
		BusinessUnitID: suite.businessUnitID,
		Status:         domain.StatusRetired,
	}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset-1").Return(&asset, nil)

	location := "warehouse B"
	req := dto.UpdateAssetRequest{Location: &location}

	_, err := suite.service.UpdateAsset(suite.ctx, suite.businessUnitID, "asset-1", req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
}

func (suite *AssetServiceTestSuite) TestGetAssetByID_WrongBusinessUnitIsNotFound() {
	asset := domain.Asset{
		AssetID:        "asset-1",
		BusinessUnitID: "some-other-unit",
		Status:         domain.StatusAvailable,
	}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset-1").Return(&asset, nil)

	_, err := suite.service.GetAssetByID(suite.ctx, suite.businessUnitID, "asset-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
