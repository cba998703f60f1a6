package repository

import (
	"context"
	"fmt"

	"github.com/dialop/LightBnB/internal/database"
	"github.com/dialop/LightBnB/internal/model"
	"github.com/rs/zerolog"
)

// ReservationRepository reads reservations joined with their properties.
type ReservationRepository struct {
	pool database.DBTX
	log  zerolog.Logger
}

func NewReservationRepository(pool database.DBTX, logger *zerolog.Logger) *ReservationRepository {
	return &ReservationRepository{
		pool: pool,
		log:  componentLogger(logger, "reservations"),
	}
}

// ListForGuest returns up to limit completed stays of a guest (end date
// before today), most recent start date first, each with the property's
// title, nightly cost and average rating. Properties without reviews
// are kept with a nil AverageRating.
//
// limit <= 0 means DefaultLimit.
func (r *ReservationRepository) ListForGuest(ctx context.Context, guestID int64, limit int) (_ []model.GuestReservation, err error) {
	const op = "ReservationRepository.ListForGuest"

	query := `
		SELECT reservations.id, reservations.guest_id, reservations.property_id,
		       reservations.start_date, reservations.end_date,
		       properties.title, properties.cost_per_night,
		       AVG(property_reviews.rating) AS average_rating
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		LEFT JOIN property_reviews ON properties.id = property_reviews.property_id
		WHERE reservations.guest_id = $1
		  AND reservations.end_date < now()::date
		GROUP BY properties.id, reservations.id
		ORDER BY reservations.start_date DESC
		LIMIT $2`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, guestID, normalizeLimit(limit))
	if err != nil {
		return nil, fail(&r.log, op, err)
	}
	defer rows.Close()

	reservations := make([]model.GuestReservation, 0)
	for rows.Next() {
		var gr model.GuestReservation
		if err = rows.Scan(
			&gr.ID, &gr.GuestID, &gr.PropertyID,
			&gr.StartDate, &gr.EndDate,
			&gr.PropertyTitle, &gr.CostPerNight,
			&gr.AverageRating,
		); err != nil {
			return nil, fail(&r.log, op, fmt.Errorf("scan reservation: %w", err))
		}
		reservations = append(reservations, gr)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(&r.log, op, err)
	}

	return reservations, nil
}
