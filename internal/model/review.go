package model

// PropertyReview is a row of property_reviews. Reviews are only read,
// as the input of the average rating aggregate.
type PropertyReview struct {
	ID            int64  `json:"id"`
	GuestID       int64  `json:"guest_id"`
	PropertyID    int64  `json:"property_id"`
	ReservationID int64  `json:"reservation_id"`
	Rating        int16  `json:"rating"`
	Message       string `json:"message"`
}
