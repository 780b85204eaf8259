package repositories

// RepositoryProvider bundles every repository facade for service wiring.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	BranchRepo    BranchRepositoryFacade
	VehicleRepo   VehicleRepositoryFacade
	RentalRepo    RentalRepositoryFacade
	BlacklistRepo BlacklistRepositoryFacade
}
