package model

// Property is a row of the properties table plus the derived average rating.
//
// CostPerNight is in minor currency units (cents). AverageRating is nil
// when the property has no reviews; it is computed by queries and never
// stored.
type Property struct {
	ID                int64    `json:"id"`
	OwnerID           int64    `json:"owner_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ThumbnailPhotoURL string   `json:"thumbnail_photo_url"`
	CoverPhotoURL     string   `json:"cover_photo_url"`
	CostPerNight      int64    `json:"cost_per_night"`
	Street            string   `json:"street"`
	City              string   `json:"city"`
	Province          string   `json:"province"`
	PostCode          string   `json:"post_code"`
	Country           string   `json:"country"`
	ParkingSpaces     int      `json:"parking_spaces"`
	NumberOfBathrooms int      `json:"number_of_bathrooms"`
	NumberOfBedrooms  int      `json:"number_of_bedrooms"`
	AverageRating     *float64 `json:"average_rating"`
}

// CreatePropertyPayload is the input of PropertyRepository.Create.
// CostPerNight is already in minor units.
type CreatePropertyPayload struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
	Country           string `json:"country" validate:"required,max=255"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0"`
}

func (p *CreatePropertyPayload) Validate() error {
	return validate.Struct(p)
}

// PropertySearchOptions are the optional filters of PropertyRepository.Search.
// A nil field means "no filter".
//
// Prices are user-facing amounts (dollars); they are converted with
// ToMinorUnits before being compared to cost_per_night. The price range
// only applies when both bounds are set.
type PropertySearchOptions struct {
	City                 *string  `json:"city,omitempty"`
	OwnerID              *int64   `json:"owner_id,omitempty"`
	MinimumPricePerNight *float64 `json:"minimum_price_per_night,omitempty"`
	MaximumPricePerNight *float64 `json:"maximum_price_per_night,omitempty"`
	MinimumRating        *float64 `json:"minimum_rating,omitempty"`
}

// HasCity reports whether a non-empty city filter is set.
func (o PropertySearchOptions) HasCity() bool {
	return o.City != nil && *o.City != ""
}

// HasPriceRange reports whether both price bounds are set.
func (o PropertySearchOptions) HasPriceRange() bool {
	return o.MinimumPricePerNight != nil && o.MaximumPricePerNight != nil
}
