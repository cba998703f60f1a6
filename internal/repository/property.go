package repository

import (
	"context"
	"fmt"

	"github.com/dialop/LightBnB/internal/database"
	"github.com/dialop/LightBnB/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// PropertyRepository searches and creates rows of the properties table.
type PropertyRepository struct {
	pool database.DBTX
	log  zerolog.Logger
}

func NewPropertyRepository(pool database.DBTX, logger *zerolog.Logger) *PropertyRepository {
	return &PropertyRepository{
		pool: pool,
		log:  componentLogger(logger, "properties"),
	}
}

func scanProperty(row pgx.Row) (model.Property, error) {
	var p model.Property
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.ThumbnailPhotoURL, &p.CoverPhotoURL, &p.CostPerNight,
		&p.Street, &p.City, &p.Province, &p.PostCode, &p.Country,
		&p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms,
		&p.AverageRating,
	)
	return p, err
}

// Search returns up to limit properties matching every filter set in opts,
// cheapest first. With no filters it lists all properties.
//
// Properties without reviews are included with a nil AverageRating,
// unless a minimum rating is requested. limit <= 0 means DefaultLimit.
// A price bound that is NaN, infinite or too large for cents is
// rejected as errs.KindInvalidInput before any statement is sent.
func (r *PropertyRepository) Search(ctx context.Context, opts model.PropertySearchOptions, limit int) (_ []model.Property, err error) {
	const op = searchOp

	query, args, err := buildPropertySearch(opts, limit)
	if isInvalidInput(err) {
		r.log.Warn().Ctx(ctx).Err(err).Str("operation", op).Msg("rejected invalid input")
		return nil, err
	}
	if err != nil {
		return nil, fail(&r.log, op, fmt.Errorf("build search query: %w", err))
	}

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fail(&r.log, op, err)
	}
	defer rows.Close()

	properties := make([]model.Property, 0)
	for rows.Next() {
		p, scanErr := scanProperty(rows)
		if scanErr != nil {
			err = fail(&r.log, op, fmt.Errorf("scan property: %w", scanErr))
			return nil, err
		}
		properties = append(properties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(&r.log, op, err)
	}

	return properties, nil
}

// Create inserts a property and returns the stored row with its generated
// id. A fresh property has no reviews, so AverageRating is nil.
//
// An owner_id that matches no user comes back as an
// errs.KindConstraintViolation error.
func (r *PropertyRepository) Create(ctx context.Context, payload model.CreatePropertyPayload) (_ *model.Property, err error) {
	const op = "PropertyRepository.Create"

	if err := validate(ctx, &r.log, op, &payload); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO properties (
			owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, street, city, province, post_code, country,
			parking_spaces, number_of_bathrooms, number_of_bedrooms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, street, city, province, post_code, country,
			parking_spaces, number_of_bathrooms, number_of_bedrooms,
			NULL::numeric AS average_rating`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		payload.OwnerID,
		payload.Title,
		payload.Description,
		payload.ThumbnailPhotoURL,
		payload.CoverPhotoURL,
		payload.CostPerNight,
		payload.Street,
		payload.City,
		payload.Province,
		payload.PostCode,
		payload.Country,
		payload.ParkingSpaces,
		payload.NumberOfBathrooms,
		payload.NumberOfBedrooms,
	))
	if err != nil {
		return nil, fail(&r.log, op, err)
	}

	r.log.Debug().Int64("property_id", p.ID).Int64("owner_id", p.OwnerID).Msg("property created")

	return &p, nil
}
