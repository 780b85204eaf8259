package pgsql

import (
	portsrepo "github.com/carrentpro/crp_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:      NewPgxUserRepository(pool),
		BranchRepo:    NewPgxBranchRepository(pool),
		VehicleRepo:   NewPgxVehicleRepository(pool),
		RentalRepo:    NewPgxRentalRepository(pool),
		BlacklistRepo: NewPgxBlacklistRepository(pool),
	}
}
