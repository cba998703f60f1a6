package repository

import (
	"github.com/dialop/LightBnB/internal/database"
	"github.com/rs/zerolog"
)

// Repositories is a container for all repository instances.
//
// They share one pool handle, owned by whoever built the container.
type Repositories struct {
	Users        *UserRepository
	Reservations *ReservationRepository
	Properties   *PropertyRepository
}

// NewRepositories constructs the repository container on top of pool.
//
// pool is usually database.Database.Pool; tests pass a pgxmock pool.
func NewRepositories(pool database.DBTX, logger *zerolog.Logger) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(pool, logger),
		Reservations: NewReservationRepository(pool, logger),
		Properties:   NewPropertyRepository(pool, logger),
	}
}
