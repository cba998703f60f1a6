package model

import "time"

// GuestReservation is a past reservation joined with its property and
// the property's average rating.
type GuestReservation struct {
	ID            int64     `json:"id"`
	GuestID       int64     `json:"guest_id"`
	PropertyID    int64     `json:"property_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	PropertyTitle string    `json:"title"`
	CostPerNight  int64     `json:"cost_per_night"`
	AverageRating *float64  `json:"average_rating"`
}
