package services_test

import (
	"context"
	"time"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock RentalRepository ---

type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	var rental *domain.Rental
	if args.Get(0) != nil {
		rental = args.Get(0).(*domain.Rental)
	}
	return rental, args.Error(1)
}

func (m *MockRentalRepository) FindRentalsByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	var rentals []domain.Rental
	if args.Get(0) != nil {
		rentals = args.Get(0).([]domain.Rental)
	}
	return rentals, args.Error(1)
}

func (m *MockRentalRepository) FindRentals(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	var rentals []domain.Rental
	if args.Get(0) != nil {
		rentals = args.Get(0).([]domain.Rental)
	}
	return rentals, args.Error(1)
}

func (m *MockRentalRepository) FindActiveRentals(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	var rentals []domain.Rental
	if args.Get(0) != nil {
		rentals = args.Get(0).([]domain.Rental)
	}
	return rentals, args.Error(1)
}

func (m *MockRentalRepository) IsVehicleAvailable(ctx context.Context, vehicleID string, now time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) HasUserActiveRental(ctx context.Context, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) HasActiveRentals(ctx context.Context, vehicleID string, now time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) HasAnyRentals(ctx context.Context, vehicleID string) (bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) CreateRentalAndReserveVehicle(ctx context.Context, rental domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) CancelRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, rentalID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) CompleteRentalAndReleaseVehicle(ctx context.Context, rentalID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, rentalID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock VehicleRepository ---

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	var vehicle *domain.Vehicle
	if args.Get(0) != nil {
		vehicle = args.Get(0).(*domain.Vehicle)
	}
	return vehicle, args.Error(1)
}

func (m *MockVehicleRepository) FindVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	var vehicles []domain.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]domain.Vehicle)
	}
	return vehicles, args.Error(1)
}

func (m *MockVehicleRepository) FindAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	var vehicles []domain.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]domain.Vehicle)
	}
	return vehicles, args.Error(1)
}

func (m *MockVehicleRepository) FindVehiclesByBranch(ctx context.Context, branchID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, branchID)
	var vehicles []domain.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]domain.Vehicle)
	}
	return vehicles, args.Error(1)
}

func (m *MockVehicleRepository) SearchVehicles(ctx context.Context, term string, branchID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, term, branchID)
	var vehicles []domain.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]domain.Vehicle)
	}
	return vehicles, args.Error(1)
}

func (m *MockVehicleRepository) FindStockByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleStock, error) {
	args := m.Called(ctx, vehicleID)
	var stock []domain.VehicleStock
	if args.Get(0) != nil {
		stock = args.Get(0).([]domain.VehicleStock)
	}
	return stock, args.Error(1)
}

func (m *MockVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) SetAvailability(ctx context.Context, vehicleID string, available bool, updatedBy string) error {
	args := m.Called(ctx, vehicleID, available, updatedBy)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteVehicle(ctx context.Context, vehicleID string) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

func (m *MockVehicleRepository) ForceDeleteVehicle(ctx context.Context, vehicleID string) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock BlacklistRepository ---

type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) IsUserBlacklisted(ctx context.Context, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.BlacklistEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.BlacklistEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.BlacklistEntry)
	}
	return entry, args.Error(1)
}

func (m *MockBlacklistRepository) FindActiveEntries(ctx context.Context) ([]domain.BlacklistEntry, error) {
	args := m.Called(ctx)
	var entries []domain.BlacklistEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.BlacklistEntry)
	}
	return entries, args.Error(1)
}

func (m *MockBlacklistRepository) AddEntry(ctx context.Context, entry domain.BlacklistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBlacklistRepository) DeactivateEntry(ctx context.Context, entryID string, adminID string, now time.Time) (bool, error) {
	args := m.Called(ctx, entryID, adminID, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock BranchRepository ---

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	var branch *domain.Branch
	if args.Get(0) != nil {
		branch = args.Get(0).(*domain.Branch)
	}
	return branch, args.Error(1)
}

func (m *MockBranchRepository) FindBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	var branches []domain.Branch
	if args.Get(0) != nil {
		branches = args.Get(0).([]domain.Branch)
	}
	return branches, args.Error(1)
}

func (m *MockBranchRepository) BranchHasVehicles(ctx context.Context, branchID string) (bool, error) {
	args := m.Called(ctx, branchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) DeleteBranch(ctx context.Context, branchID string) error {
	args := m.Called(ctx, branchID)
	return args.Error(0)
}
