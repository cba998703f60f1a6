// Package repository handles all interactions with the database.
//
// It contains the parameterized SQL behind every LightBnB data operation:
// user lookup and sign-up, a guest's past reservations, property search
// and property creation. Each method runs exactly one statement on the
// shared pool and maps the rows into internal/model types.
//
// Conventions shared by every repository:
//   - single-row lookups return (nil, nil) when nothing matches
//   - list operations return an empty, non-nil slice when nothing matches
//   - failures are logged once here, with the operation name, and returned
//     as *errs.Error (see internal/errs for the kinds)
//   - every statement runs inside a database.TraceQuery span
package repository

import (
	"context"
	"errors"

	"github.com/dialop/LightBnB/internal/errs"
	"github.com/dialop/LightBnB/internal/model"
	"github.com/dialop/LightBnB/internal/sqlerr"
	"github.com/dialop/LightBnB/internal/validation"
	"github.com/rs/zerolog"
)

// DefaultLimit applies when a list operation gets a limit <= 0.
const DefaultLimit = 10

// UserStore is the user data contract callers should depend on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, payload model.CreateUserPayload) (*model.User, error)
}

// ReservationStore is the reservation data contract.
type ReservationStore interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

// PropertyStore is the property data contract.
type PropertyStore interface {
	Search(ctx context.Context, opts model.PropertySearchOptions, limit int) ([]model.Property, error)
	Create(ctx context.Context, payload model.CreatePropertyPayload) (*model.Property, error)
}

var (
	_ UserStore        = (*UserRepository)(nil)
	_ ReservationStore = (*ReservationRepository)(nil)
	_ PropertyStore    = (*PropertyRepository)(nil)
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func componentLogger(logger *zerolog.Logger, name string) zerolog.Logger {
	if logger == nil {
		return zerolog.Nop()
	}
	return logger.With().Str("repository", name).Logger()
}

// fail converts a driver error and logs it exactly once.
func fail(log *zerolog.Logger, op string, err error) error {
	appErr := sqlerr.HandleError(op, err)

	log.Error().
		Err(err).
		Str("operation", op).
		Str("kind", string(errs.KindOf(appErr))).
		Msg("database operation failed")

	return appErr
}

// validate runs payload validation, logging rejected input at warn level.
func validate(ctx context.Context, log *zerolog.Logger, op string, payload validation.Validatable) error {
	err := validation.Validate(op, payload)
	if err == nil {
		return nil
	}

	event := log.Warn().Ctx(ctx).Str("operation", op)
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		event = event.Interface("fields", appErr.Errors)
	}
	event.Msg("rejected invalid input")

	return err
}
