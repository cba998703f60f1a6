package repository

import (
	"context"
	"errors"

	"github.com/dialop/LightBnB/internal/database"
	"github.com/dialop/LightBnB/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UserRepository reads and creates rows of the users table.
type UserRepository struct {
	pool database.DBTX
	log  zerolog.Logger
}

func NewUserRepository(pool database.DBTX, logger *zerolog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  componentLogger(logger, "users"),
	}
}

// GetByEmail returns the user whose email equals email exactly, or
// (nil, nil) when there is none.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1`

	return r.getOne(ctx, "UserRepository.GetByEmail", query, email)
}

// GetByID returns the user with the given id, or (nil, nil) when there is none.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1`

	return r.getOne(ctx, "UserRepository.GetByID", query, id)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, args ...any) (_ *model.User, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	var u model.User
	err = r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fail(&r.log, op, err)
	}

	return &u, nil
}

// Create inserts a user and returns the stored row with its generated id.
//
// The password is stored exactly as given; hashing is the caller's job.
// Email uniqueness is left to the users_email_key constraint, so a
// duplicate comes back as an errs.KindConstraintViolation error.
func (r *UserRepository) Create(ctx context.Context, payload model.CreateUserPayload) (_ *model.User, err error) {
	const op = "UserRepository.Create"

	if err := validate(ctx, &r.log, op, &payload); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	var u model.User
	err = r.pool.QueryRow(ctx, query, payload.Name, payload.Email, payload.Password).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		return nil, fail(&r.log, op, err)
	}

	r.log.Debug().Int64("user_id", u.ID).Msg("user created")

	return &u, nil
}
