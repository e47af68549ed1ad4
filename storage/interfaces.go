package storage

import "airbnb-webmap/models"

// ListingSource is the interface any backing table must satisfy.
// ReadListings returns a *models.DataLoadError when the table is missing,
// unreadable or does not match the schema.
type ListingSource interface {
	Name() string
	ReadListings() ([]models.Listing, error)
}

// Column names of the listings table.
const (
	ColName            = "name"
	ColHostName        = "host_name"
	ColNeighbourhood   = "neighbourhood"
	ColRoomType        = "room_type"
	ColPrice           = "price"
	ColMinimumNights   = "minimum_nights"
	ColLatitude        = "latitude"
	ColLongitude       = "longitude"
	ColNumberOfReviews = "number_of_reviews"
	ColLastReview      = "last_review"
	ColAvailability365 = "availability_365"
)

// RequiredColumns lists every column a listings table must provide, in canonical order.
var RequiredColumns = []string{
	ColName,
	ColHostName,
	ColNeighbourhood,
	ColRoomType,
	ColPrice,
	ColMinimumNights,
	ColLatitude,
	ColLongitude,
	ColNumberOfReviews,
	ColLastReview,
	ColAvailability365,
}
