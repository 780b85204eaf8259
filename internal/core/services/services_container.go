package services

import (
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Branch = NewBranchService(repos.BranchRepo)
	container.Vehicle = NewVehicleService(repos.VehicleRepo, repos.BranchRepo, repos.RentalRepo)
	container.Blacklist = NewBlacklistService(repos.BlacklistRepo)

	// The rental engine reads users and the blacklist registry directly so
	// its eligibility checks stay in one place.
	container.Rental = NewRentalService(repos.RentalRepo, repos.VehicleRepo, repos.UserRepo, repos.BlacklistRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
