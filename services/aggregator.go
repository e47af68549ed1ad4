package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"

	"airbnb-webmap/models"
	"airbnb-webmap/utils"
)

// centroidGeohashPrecision gives cells of roughly 150m x 150m.
const centroidGeohashPrecision = 7

// ListingFilterer is the read side of the listing store used by the aggregator.
type ListingFilterer interface {
	Filter(neighbourhood, roomType string, maxPriceExclusive float64) []models.Listing
}

// Aggregator turns filters into query results. It holds no mutable state.
type Aggregator struct {
	store  ListingFilterer
	logger *utils.Logger
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store ListingFilterer, logger *utils.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger}
}

// ParseFilter builds a filter from raw selector values. Blank values leave the
// field unset; a price that is not a finite non-negative number is rejected.
func ParseFilter(neighbourhood, roomType, maxPrice string) (models.Filter, error) {
	f := models.Filter{
		Neighbourhood: strings.TrimSpace(neighbourhood),
		RoomType:      strings.TrimSpace(roomType),
	}

	raw := strings.TrimSpace(maxPrice)
	if raw == "" {
		return f, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.Filter{}, &models.InvalidFilterError{Field: "max_price", Value: maxPrice, Reason: "not a number"}
	}
	if err := checkMaxPrice(price); err != nil {
		err.Value = maxPrice
		return models.Filter{}, err
	}
	f.MaxPrice = &price
	return f, nil
}

func checkMaxPrice(price float64) *models.InvalidFilterError {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return &models.InvalidFilterError{Field: "max_price", Value: strconv.FormatFloat(price, 'g', -1, 64), Reason: "not a finite number"}
	case price < 0:
		return &models.InvalidFilterError{Field: "max_price", Value: strconv.FormatFloat(price, 'g', -1, 64), Reason: "negative"}
	}
	return nil
}

// QueryRaw parses the selector values and runs the query.
func (a *Aggregator) QueryRaw(neighbourhood, roomType, maxPrice string) (*models.QueryResult, error) {
	f, err := ParseFilter(neighbourhood, roomType, maxPrice)
	if err != nil {
		return nil, err
	}
	return a.Query(f)
}

// Query selects the listings matching f and derives everything the map and
// the headline statistics need. An incomplete filter yields an empty result
// without touching the store.
func (a *Aggregator) Query(f models.Filter) (*models.QueryResult, error) {
	if !f.Complete() {
		a.logger.Debug("[aggregator] Incomplete filter %+v, returning empty result", f)
		return models.EmptyResult(f), nil
	}
	if err := checkMaxPrice(*f.MaxPrice); err != nil {
		return nil, err
	}

	subset := a.store.Filter(f.Neighbourhood, f.RoomType, *f.MaxPrice)

	price := *f.MaxPrice
	f.MaxPrice = &price
	result := &models.QueryResult{
		Status: models.StatusPopulated,
		Filter: f,
		Points: make([]models.MapPoint, 0, len(subset)),
		Count:  len(subset),
	}

	if len(subset) == 0 {
		a.logger.Debug("[aggregator] No listings for %s / %s below %.0f", f.Neighbourhood, f.RoomType, price)
		return result, nil
	}

	result.Centroid = centroid(subset)
	result.MostReviewed = extremum(subset, func(l models.Listing) int { return l.NumberOfReviews })
	result.MostAvailable = extremum(subset, func(l models.Listing) int { return l.Availability365 })
	mean := meanPrice(subset)
	result.MeanPrice = &mean

	for _, l := range subset {
		result.Points = append(result.Points, models.MapPoint{
			Listing:   l,
			Marker:    classify(l, result.MostReviewed.Value, result.MostAvailable.Value),
			HoverText: HoverText(l),
		})
	}

	a.logger.Debug("[aggregator] %s / %s below %.0f: %d listings, max reviews %d, max availability %d",
		f.Neighbourhood, f.RoomType, price, result.Count, result.MostReviewed.Value, result.MostAvailable.Value)
	return result, nil
}

func centroid(subset []models.Listing) *models.Centroid {
	var lat, lon float64
	for _, l := range subset {
		lat += l.Latitude
		lon += l.Longitude
	}
	n := float64(len(subset))
	c := &models.Centroid{Latitude: lat / n, Longitude: lon / n}
	c.Geohash = geohash.EncodeWithPrecision(c.Latitude, c.Longitude, centroidGeohashPrecision)
	return c
}

// extremum finds the maximum of value over a non-empty subset. The label is
// the first listing holding the maximum; Ties counts all of them.
func extremum(subset []models.Listing, value func(models.Listing) int) *models.Extremum {
	e := &models.Extremum{Value: value(subset[0]), Label: subset[0], Ties: 1}
	for _, l := range subset[1:] {
		switch v := value(l); {
		case v > e.Value:
			e.Value, e.Label, e.Ties = v, l, 1
		case v == e.Value:
			e.Ties++
		}
	}
	return e
}

func meanPrice(subset []models.Listing) float64 {
	var total float64
	for _, l := range subset {
		total += l.Price
	}
	return total / float64(len(subset))
}
