package services

import (
	"strconv"
	"strings"

	"airbnb-webmap/models"
)

// emphasisRule marks a listing when matches holds. Rules are evaluated in
// order and the first match wins.
type emphasisRule struct {
	emphasis models.Emphasis
	color    string
	matches  func(l models.Listing, maxReviews, maxAvailability int) bool
}

var emphasisRules = []emphasisRule{
	{
		emphasis: models.EmphasisMostReviewed,
		color:    models.ColorMostReviewed,
		matches: func(l models.Listing, maxReviews, _ int) bool {
			return l.NumberOfReviews == maxReviews
		},
	},
	{
		emphasis: models.EmphasisMostAvailable,
		color:    models.ColorMostAvailable,
		matches: func(l models.Listing, _, maxAvailability int) bool {
			return l.Availability365 == maxAvailability
		},
	},
}

// classify returns the marker for a listing given the subset maxima.
func classify(l models.Listing, maxReviews, maxAvailability int) models.Marker {
	for _, r := range emphasisRules {
		if r.matches(l, maxReviews, maxAvailability) {
			return models.Marker{Size: models.MarkerSizeEmphasized, Color: r.color, Emphasis: r.emphasis}
		}
	}
	return models.Marker{Size: models.MarkerSizeDefault, Color: models.ColorDefault, Emphasis: models.EmphasisNone}
}

// Hover text layout.
const (
	HoverLineBreak        = "<br>"
	MissingLastReviewText = "N/A"
)

// HoverText describes a listing for its map tooltip, one labelled line per field.
func HoverText(l models.Listing) string {
	lastReview := MissingLastReviewText
	if l.HasLastReview() {
		lastReview = l.LastReview.Format(models.LastReviewLayout)
	}

	lines := []string{
		"Name: " + l.Name,
		"Host: " + l.HostName,
		"Price: " + strconv.FormatFloat(l.Price, 'f', -1, 64),
		"Minimum Nights: " + strconv.Itoa(l.MinimumNights),
		"No. of Reviews: " + strconv.Itoa(l.NumberOfReviews),
		"Last Review: " + lastReview,
		"Available days per year: " + strconv.Itoa(l.Availability365),
	}
	return strings.Join(lines, HoverLineBreak)
}
