package models

import (
	"fmt"
	"strconv"
)

// ResultStatus distinguishes a query that was not run from one that was.
type ResultStatus string

const (
	// StatusEmpty means the filter was incomplete and no selection happened.
	StatusEmpty ResultStatus = "empty"
	// StatusPopulated means the filter was applied; the subset may still hold zero listings.
	StatusPopulated ResultStatus = "populated"
)

// Emphasis classifies a map marker.
type Emphasis string

const (
	EmphasisNone          Emphasis = "normal"
	EmphasisMostReviewed  Emphasis = "most_reviewed"
	EmphasisMostAvailable Emphasis = "most_available"
)

// Marker sizes and colors used on the map.
const (
	MarkerSizeDefault    = 7
	MarkerSizeEmphasized = 20

	ColorDefault       = "#29EA8B"
	ColorMostReviewed  = "#3498db"
	ColorMostAvailable = "#f39c12"

	MarkerOpacity  = 0.7
	DefaultMapZoom = 13
)

// Marker holds the visual attributes of one listing on the map.
type Marker struct {
	Size     int      `json:"size"`
	Color    string   `json:"color"`
	Emphasis Emphasis `json:"emphasis"`
}

// MapPoint is one matched listing together with its derived presentation values.
type MapPoint struct {
	Listing   Listing `json:"listing"`
	Marker    Marker  `json:"marker"`
	HoverText string  `json:"hover_text"`
}

// Centroid is the mean position of a subset.
type Centroid struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Geohash   string  `json:"geohash"`
}

// Extremum is the maximum of one attribute over a subset.
// Label is the first listing in subset order holding Value; Ties counts every
// listing holding it, all of which are emphasized on the map.
type Extremum struct {
	Value int     `json:"value"`
	Label Listing `json:"label"`
	Ties  int     `json:"ties"`
}

// QueryResult is everything derived from one filter against the store.
type QueryResult struct {
	Status        ResultStatus `json:"status"`
	Filter        Filter       `json:"filter"`
	Points        []MapPoint   `json:"points"`
	Centroid      *Centroid    `json:"centroid"`
	MostReviewed  *Extremum    `json:"most_reviewed"`
	MostAvailable *Extremum    `json:"most_available"`
	Count         int          `json:"count"`
	MeanPrice     *float64     `json:"mean_price"`
}

// EmptyResult is returned while the filter is incomplete.
func EmptyResult(f Filter) *QueryResult {
	return &QueryResult{Status: StatusEmpty, Filter: f, Points: []MapPoint{}}
}

// Card is one headline statistic.
type Card struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle,omitempty"`
	Color    string `json:"color,omitempty"`
}

// NoDataValue is shown on a card whose statistic is undefined.
const NoDataValue = "-"

// ApplyFiltersNotice is the card title shown before every filter is chosen.
const ApplyFiltersNotice = "Please apply filters"

// Cards returns the four headline statistics in display order:
// number of listings, average price, most reviews, highest availability.
func (r *QueryResult) Cards() []Card {
	if r.Status == StatusEmpty {
		notice := Card{Title: ApplyFiltersNotice, Value: "0"}
		return []Card{notice, notice, notice, notice}
	}

	avg := NoDataValue
	if r.MeanPrice != nil {
		avg = fmt.Sprintf("%.1f", *r.MeanPrice)
	}

	reviewed := Card{Title: "Most Reviews", Value: NoDataValue, Color: ColorMostReviewed}
	if r.MostReviewed != nil {
		reviewed.Value = strconv.Itoa(r.MostReviewed.Value)
		reviewed.Subtitle = r.MostReviewed.Label.Name
	}

	available := Card{Title: "Highly Available (days/year)", Value: NoDataValue, Color: ColorMostAvailable}
	if r.MostAvailable != nil {
		available.Value = strconv.Itoa(r.MostAvailable.Value)
		available.Subtitle = r.MostAvailable.Label.Name
	}

	return []Card{
		{Title: "Number of Listings", Value: strconv.Itoa(r.Count)},
		{Title: "Average Price", Value: avg},
		reviewed,
		available,
	}
}
