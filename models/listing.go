package models

import (
	"encoding/json"
	"time"
)

// LastReviewLayout is the date layout used by the listings table.
const LastReviewLayout = "2006-01-02"

// Listing is one row of the listings table. It is treated as immutable once loaded.
type Listing struct {
	Name            string    `json:"name"`
	HostName        string    `json:"host_name"`
	Neighbourhood   string    `json:"neighbourhood"`
	RoomType        string    `json:"room_type"`
	Price           float64   `json:"price"`
	MinimumNights   int       `json:"minimum_nights"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	NumberOfReviews int       `json:"number_of_reviews"`
	LastReview      time.Time `json:"-"`
	Availability365 int       `json:"availability_365"`
}

// HasLastReview reports whether the listing carries a last review date.
func (l Listing) HasLastReview() bool {
	return !l.LastReview.IsZero()
}

// MarshalJSON renders the last review as a YYYY-MM-DD string, or null when absent.
func (l Listing) MarshalJSON() ([]byte, error) {
	type plain Listing
	var lastReview *string
	if l.HasLastReview() {
		s := l.LastReview.Format(LastReviewLayout)
		lastReview = &s
	}
	return json.Marshal(struct {
		plain
		LastReview *string `json:"last_review"`
	}{plain: plain(l), LastReview: lastReview})
}

// Filter is the three-part selection criterion driving a query.
// An empty string or a nil MaxPrice means the field has not been chosen yet.
type Filter struct {
	Neighbourhood string   `json:"neighbourhood"`
	RoomType      string   `json:"room_type"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
}

// Complete reports whether every field of the filter is set.
func (f Filter) Complete() bool {
	return f.Neighbourhood != "" && f.RoomType != "" && f.MaxPrice != nil
}

// PriceBand is one of the fixed max-price choices offered to users.
type PriceBand struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PriceBands are the selectable exclusive price bounds, cheapest first.
var PriceBands = []PriceBand{
	{Label: "<5 000", Value: 5000},
	{Label: "<10 000", Value: 10000},
	{Label: "<30 000", Value: 30000},
	{Label: "<50 000", Value: 50000},
	{Label: "<80 000", Value: 80000},
	{Label: "All prices", Value: 500000},
}

// FilterOptions holds the choices used to populate the filter selectors.
type FilterOptions struct {
	Neighbourhoods []string    `json:"neighbourhoods"`
	RoomTypes      []string    `json:"room_types"`
	PriceBands     []PriceBand `json:"price_bands"`
}
