package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/carrentpro/crp_backend/internal/apperrors"
	"github.com/carrentpro/crp_backend/internal/core/domain"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RentalServiceTestSuite struct {
	suite.Suite
	mockRentalRepo    *MockRentalRepository
	mockVehicleRepo   *MockVehicleRepository
	mockUserRepo      *MockUserRepository
	mockBlacklistRepo *MockBlacklistRepository
	service           portssvc.RentalSvcFacade
}

func (suite *RentalServiceTestSuite) SetupTest() {
	suite.mockRentalRepo = new(MockRentalRepository)
	suite.mockVehicleRepo = new(MockVehicleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockBlacklistRepo = new(MockBlacklistRepository)
	suite.service = services.NewRentalService(
		suite.mockRentalRepo,
		suite.mockVehicleRepo,
		suite.mockUserRepo,
		suite.mockBlacklistRepo,
	)
}

func (suite *RentalServiceTestSuite) eligibleUser(userID string) {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleCustomer}, nil)
	suite.mockBlacklistRepo.On("IsUserBlacklisted", mock.Anything, userID, mock.AnythingOfType("time.Time")).
		Return(false, nil)
	suite.mockRentalRepo.On("HasUserActiveRental", mock.Anything, userID, mock.AnythingOfType("time.Time")).
		Return(false, nil)
}

func (suite *RentalServiceTestSuite) availableVehicle(vehicleID string, pricePerDay int64) {
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, vehicleID).
		Return(&domain.Vehicle{
			VehicleID:   vehicleID,
			Brand:       "Toyota",
			Model:       "Corolla",
			PricePerDay: decimal.NewFromInt(pricePerDay),
			IsAvailable: true,
		}, nil)
	suite.mockRentalRepo.On("IsVehicleAvailable", mock.Anything, vehicleID, mock.AnythingOfType("time.Time")).
		Return(true, nil)
}

func (suite *RentalServiceTestSuite) TestCreateRental_Success_PriceForThreeDays() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.availableVehicle("veh-1", 50)

	var saved domain.Rental
	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.MatchedBy(func(r domain.Rental) bool {
		saved = r
		return r.UserID == "user-1" && *r.VehicleID == "veh-1" && r.Status == domain.RentalActive
	})).Return(nil).Once()

	returnDate := time.Now().Add(3*24*time.Hour + time.Hour)
	result := suite.service.CreateRental(ctx, "user-1", "veh-1", returnDate)

	suite.Require().Equal(domain.RentalOK, result.Outcome)
	suite.Require().NotNil(result.Rental)
	suite.True(decimal.NewFromInt(150).Equal(result.Rental.TotalPrice), "3 whole days at 50/day")
	suite.NotEmpty(result.Rental.RentalID)
	suite.Equal(saved.RentalID, result.Rental.RentalID)
	suite.mockRentalRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCreateRental_PartialDayBillsOneDay() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.availableVehicle("veh-1", 80)

	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.AnythingOfType("domain.Rental")).
		Return(nil).Once()

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(6*time.Hour))

	suite.Require().Equal(domain.RentalOK, result.Outcome)
	suite.True(decimal.NewFromInt(80).Equal(result.Rental.TotalPrice), "less than a day bills the one-day minimum")
}

func (suite *RentalServiceTestSuite) TestCreateRental_ReturnDateInPast() {
	result := suite.service.CreateRental(context.Background(), "user-1", "veh-1", time.Now().Add(-time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.Contains(result.Message, "future")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "CreateRentalAndReserveVehicle", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCreateRental_BlacklistedByRegistry() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", IsBlacklisted: false}, nil)
	suite.mockBlacklistRepo.On("IsUserBlacklisted", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.Contains(result.Message, "blacklisted")
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "FindVehicleByID", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCreateRental_CachedFlagSkipsRegistry() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", IsBlacklisted: true}, nil)

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.mockBlacklistRepo.AssertNotCalled(suite.T(), "IsUserBlacklisted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCreateRental_SecondActiveRentalRejected() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1"}, nil)
	suite.mockBlacklistRepo.On("IsUserBlacklisted", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(false, nil)
	suite.mockRentalRepo.On("HasUserActiveRental", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.Contains(result.Message, "active rental")
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "FindVehicleByID", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCreateRental_VehicleUnavailable() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1", PricePerDay: decimal.NewFromInt(50), IsAvailable: false}, nil)

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.Contains(result.Message, "not available")
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "CreateRentalAndReserveVehicle", mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCreateRental_ConflictRetriesOnce() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.availableVehicle("veh-1", 50)

	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.AnythingOfType("domain.Rental")).
		Return(apperrors.ErrConflict).Once()
	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.AnythingOfType("domain.Rental")).
		Return(nil).Once()

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalOK, result.Outcome)
	suite.mockRentalRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCreateRental_ConflictTwiceRejects() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.availableVehicle("veh-1", 50)

	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.AnythingOfType("domain.Rental")).
		Return(apperrors.ErrConflict).Twice()

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalRejected, result.Outcome)
	suite.Contains(result.Message, "not available")
	suite.mockRentalRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCreateRental_StorageFailure() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.availableVehicle("veh-1", 50)

	suite.mockRentalRepo.On("CreateRentalAndReserveVehicle", mock.Anything, mock.AnythingOfType("domain.Rental")).
		Return(assert.AnError).Once()

	result := suite.service.CreateRental(ctx, "user-1", "veh-1", time.Now().Add(24*time.Hour))

	suite.Equal(domain.RentalFailed, result.Outcome)
	suite.Error(result.Err)
	suite.Equal("Failed to create rental.", result.Message)
}

func (suite *RentalServiceTestSuite) TestCancelRental_NonOwnerRefused() {
	ctx := context.Background()
	vehicleID := "veh-1"
	suite.mockRentalRepo.On("FindRentalByID", mock.Anything, "rent-1").
		Return(&domain.Rental{RentalID: "rent-1", UserID: "owner", VehicleID: &vehicleID, Status: domain.RentalActive}, nil)

	cancelled, err := suite.service.CancelRental(ctx, "rent-1", "intruder", false)

	suite.Require().NoError(err)
	suite.False(cancelled)
	suite.mockRentalRepo.AssertNotCalled(suite.T(), "CancelRentalAndReleaseVehicle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RentalServiceTestSuite) TestCancelRental_StaffMayCancelAny() {
	ctx := context.Background()
	vehicleID := "veh-1"
	suite.mockRentalRepo.On("FindRentalByID", mock.Anything, "rent-1").
		Return(&domain.Rental{RentalID: "rent-1", UserID: "owner", VehicleID: &vehicleID, Status: domain.RentalActive}, nil)
	suite.mockRentalRepo.On("CancelRentalAndReleaseVehicle", mock.Anything, "rent-1", "staff-1", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	cancelled, err := suite.service.CancelRental(ctx, "rent-1", "staff-1", true)

	suite.Require().NoError(err)
	suite.True(cancelled)
	suite.mockRentalRepo.AssertExpectations(suite.T())
}

func (suite *RentalServiceTestSuite) TestCancelRental_MissingRentalIsNoOp() {
	ctx := context.Background()
	suite.mockRentalRepo.On("FindRentalByID", mock.Anything, "gone").
		Return(nil, apperrors.ErrNotFound)

	cancelled, err := suite.service.CancelRental(ctx, "gone", "user-1", false)

	suite.Require().NoError(err)
	suite.False(cancelled)
}

func (suite *RentalServiceTestSuite) TestCompleteRental_Idempotent() {
	ctx := context.Background()
	suite.mockRentalRepo.On("CompleteRentalAndReleaseVehicle", mock.Anything, "rent-1", "staff-1", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	completed, err := suite.service.CompleteRental(ctx, "rent-1", "staff-1")

	suite.Require().NoError(err)
	suite.False(completed, "already closed rental reports false")
}

func (suite *RentalServiceTestSuite) TestCheckEligibility_Blocked() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", IsBlacklisted: true}, nil)

	canRent, message, err := suite.service.CheckEligibility(ctx, "user-1")

	suite.Require().NoError(err)
	suite.False(canRent)
	suite.Contains(message, "blacklisted")
}

func (suite *RentalServiceTestSuite) TestCheckEligibility_OK() {
	ctx := context.Background()
	suite.eligibleUser("user-1")

	canRent, message, err := suite.service.CheckEligibility(ctx, "user-1")

	suite.Require().NoError(err)
	suite.True(canRent)
	suite.Empty(message)
}

func (suite *RentalServiceTestSuite) TestCanUserRentVehicle_VehicleHeld() {
	ctx := context.Background()
	suite.eligibleUser("user-1")
	suite.mockVehicleRepo.On("FindVehicleByID", mock.Anything, "veh-1").
		Return(&domain.Vehicle{VehicleID: "veh-1", IsAvailable: true}, nil)
	suite.mockRentalRepo.On("IsVehicleAvailable", mock.Anything, "veh-1", mock.AnythingOfType("time.Time")).
		Return(false, nil)

	canRent, err := suite.service.CanUserRentVehicle(ctx, "user-1", "veh-1")

	suite.Require().NoError(err)
	suite.False(canRent)
}

func TestRentalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RentalServiceTestSuite))
}
