package services_test

import (
	"context"
	"testing"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/core/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VehicleServiceTestSuite struct {
	suite.Suite
	mockVehicleRepo *MockVehicleRepository
	mockBranchRepo  *MockBranchRepository
	mockRentalRepo  *MockRentalRepository
	service         portssvc.VehicleSvcFacade
}

func (suite *VehicleServiceTestSuite) SetupTest() {
	suite.mockVehicleRepo = new(MockVehicleRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockRentalRepo = new(MockRentalRepository)
	suite.service = services.NewVehicleService(suite.mockVehicleRepo, suite.mockBranchRepo, suite.mockRentalRepo)
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_Success() {
	ctx := context.Background()
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, "branch-1").
		Return(&domain.Branch{BranchID: "branch-1"}, nil).Once()
	suite.mockVehicleRepo.On("SaveVehicle", mock.Anything, mock.MatchedBy(func(v domain.Vehicle) bool {
		return v.Brand == "Toyota" && v.BranchID == "branch-1" && v.IsAvailable && v.CreatedBy == "staff-1"
	})).Return(nil).Once()

	vehicle, err := suite.service.CreateVehicle(ctx, dto.CreateVehicleRequest{
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2023,
		Color:       "Silver",
		PricePerDay: decimal.NewFromInt(55),
		BranchID:    "branch-1",
	}, "staff-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(vehicle)
	suite.NotEmpty(vehicle.VehicleID)
	suite.True(vehicle.IsAvailable, "new vehicles start available")
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_BranchMissing() {
	ctx := context.Background()
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, "branch-gone").
		Return(nil, apperrors.ErrNotFound).Once()

	vehicle, err := suite.service.CreateVehicle(ctx, dto.CreateVehicleRequest{
		Brand:       "Toyota",
		Model:       "Corolla",
		PricePerDay: decimal.NewFromInt(55),
		BranchID:    "branch-gone",
	}, "staff-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(vehicle)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "SaveVehicle", mock.Anything, mock.Anything)
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_NonPositivePrice() {
	ctx := context.Background()
	suite.mockBranchRepo.On("FindBranchByID", mock.Anything, "branch-1").
		Return(&domain.Branch{BranchID: "branch-1"}, nil).Once()

	vehicle, err := suite.service.CreateVehicle(ctx, dto.CreateVehicleRequest{
		Brand:       "Toyota",
		Model:       "Corolla",
		PricePerDay: decimal.Zero,
		BranchID:    "branch-1",
	}, "staff-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(vehicle)
}

func (suite *VehicleServiceTestSuite) TestUpdateVehicle_MergesOnlyProvidedFields() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{
			VehicleID:   "veh-1",
			Brand:       "Toyota",
			Model:       "Corolla",
			Color:       "Silver",
			PricePerDay: decimal.NewFromInt(55),
			BranchID:    "branch-1",
		}, nil).Once()

	newColor := "Black"
	suite.mockVehicleRepo.On("UpdateVehicle", mock.Anything, mock.MatchedBy(func(v domain.Vehicle) bool {
		return v.Color == "Black" && v.Brand == "Toyota" && v.LastUpdatedBy == "staff-1"
	})).Return(nil).Once()

	vehicle, err := suite.service.UpdateVehicle(ctx, "veh-1", dto.UpdateVehicleRequest{Color: &newColor}, "staff-1")

	suite.Require().NoError(err)
	suite.Equal("Black", vehicle.Color)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestToggleAvailability_ReEnableRefusedWhileRented() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1", IsAvailable: false}, nil).Once()
	suite.mockRentalRepo.On("HasActiveRentals", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	vehicle, err := suite.service.ToggleAvailability(ctx, "veh-1", "staff-1")

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(vehicle)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "SetAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VehicleServiceTestSuite) TestToggleAvailability_DisableSkipsRentalCheck() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1", IsAvailable: true}, nil).Once()
	suite.mockVehicleRepo.On("SetAvailability", mock.Anything, "veh-1", false, "staff-1").
		Return(nil).Once()

	vehicle, err := suite.service.ToggleAvailability(ctx, "veh-1", "staff-1")

	suite.Require().NoError(err)
	suite.False(vehicle.IsAvailable)
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "HasActiveRentals", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_ActiveRentalBlocks() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockRentalRepo.On("HasActiveRentals", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	_, err := suite.service.DeleteVehicle(ctx, "veh-1", false, "admin-1")

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "DeleteVehicle", mock.Anything, mock.Anything)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "ForceDeleteVehicle", mock.Anything, mock.Anything)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_NoHistoryDeletes() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockRentalRepo.On("HasActiveRentals", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockRentalRepo.On("HasAnyRentals", mock.Anything, "veh-1").
		Return(false, nil).Once()
	suite.mockVehicleRepo.On("DeleteVehicle", mock.Anything, "veh-1").
		Return(nil).Once()

	outcome, err := suite.service.DeleteVehicle(ctx, "veh-1", false, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(portssvc.VehicleDeleted, outcome)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_HistoryRetiresInstead() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockRentalRepo.On("HasActiveRentals", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockRentalRepo.On("HasAnyRentals", mock.Anything, "veh-1").
		Return(true, nil).Once()
	suite.mockVehicleRepo.On("SetAvailability", mock.Anything, "veh-1", false, "admin-1").
		Return(nil).Once()

	outcome, err := suite.service.DeleteVehicle(ctx, "veh-1", false, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(portssvc.VehicleMarkedUnavailable, outcome)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "DeleteVehicle", mock.Anything, mock.Anything)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_RacingRentalRetiresInstead() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockRentalRepo.On("HasActiveRentals", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockRentalRepo.On("HasAnyRentals", mock.Anything, "veh-1").
		Return(false, nil).Once()
	suite.mockVehicleRepo.On("DeleteVehicle", mock.Anything, "veh-1").
		Return(apperrors.ErrConflict).Once()
	suite.mockVehicleRepo.On("SetAvailability", mock.Anything, "veh-1", false, "admin-1").
		Return(nil).Once()

	outcome, err := suite.service.DeleteVehicle(ctx, "veh-1", false, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(portssvc.VehicleMarkedUnavailable, outcome)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_ForceSkipsActiveRentalGuard() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockVehicleRepo.On("ForceDeleteVehicle", mock.Anything, "veh-1").
		Return(nil).Once()

	outcome, err := suite.service.DeleteVehicle(ctx, "veh-1", true, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(portssvc.VehicleDeleted, outcome)
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "HasActiveRentals", mock.Anything, mock.Anything, mock.Anything)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "DeleteVehicle", mock.Anything, mock.Anything)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_FailedForceRetiresVehicle() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1"}, nil).Once()
	suite.mockVehicleRepo.On("ForceDeleteVehicle", mock.Anything, "veh-1").
		Return(assert.AnError).Once()
	suite.mockVehicleRepo.On("SetAvailability", mock.Anything, "veh-1", false, "admin-1").
		Return(nil).Once()

	outcome, err := suite.service.DeleteVehicle(ctx, "veh-1", true, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(portssvc.VehicleMarkedUnavailable, outcome)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestSearchVehicles_BranchOnlyUsesBranchListing() {
	ctx := context.Background()
	suite.mockVehicleRepo.On("FindVehiclesByBranch", mock.Anything, "branch-1").
		Return([]domain.Vehicle{{VehicleID: "veh-1"}}, nil).Once()

	vehicles, err := suite.service.SearchVehicles(ctx, dto.SearchVehiclesParams{BranchID: "branch-1"})

	suite.Require().NoError(err)
	suite.Len(vehicles, 1)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "SearchVehicles", mock.Anything, mock.Anything, mock.Anything)
}

func TestVehicleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleServiceTestSuite))
}
