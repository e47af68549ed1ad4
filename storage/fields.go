package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"airbnb-webmap/models"
)

var (
	errEmpty    = errors.New("value is empty")
	errNegative = errors.New("value is negative")
	errNotWhole = errors.New("not a whole number")
	errTooLarge = errors.New("value is too large")

	// lastReviewLayouts are the accepted last_review shapes; any time part is dropped.
	lastReviewLayouts = []string{
		models.LastReviewLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
)

// rawRow holds the text cells of one listing before validation.
// Cells are in RequiredColumns order.
type rawRow [11]string

// fieldError names the offending column of a rejected row.
type fieldError struct {
	column string
	value  string
	err    error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("column %q value %q: %v", e.column, e.value, e.err)
}

func (e *fieldError) Unwrap() error { return e.err }

// toListing validates and converts the row.
func (r rawRow) toListing() (models.Listing, error) {
	var (
		l   models.Listing
		err error
	)

	l.Name = normaliseText(r[0])
	l.HostName = normaliseText(r[1])
	l.Neighbourhood = normaliseText(r[2])
	l.RoomType = normaliseText(r[3])

	if l.Neighbourhood == "" {
		return l, &fieldError{ColNeighbourhood, r[2], errEmpty}
	}
	if l.RoomType == "" {
		return l, &fieldError{ColRoomType, r[3], errEmpty}
	}
	if l.Price, err = parsePrice(r[4]); err != nil {
		return l, &fieldError{ColPrice, r[4], err}
	}
	if l.MinimumNights, err = parseCount(r[5]); err != nil {
		return l, &fieldError{ColMinimumNights, r[5], err}
	}
	if l.Latitude, err = parseCoordinate(r[6], 90); err != nil {
		return l, &fieldError{ColLatitude, r[6], err}
	}
	if l.Longitude, err = parseCoordinate(r[7], 180); err != nil {
		return l, &fieldError{ColLongitude, r[7], err}
	}
	if l.NumberOfReviews, err = parseCount(r[8]); err != nil {
		return l, &fieldError{ColNumberOfReviews, r[8], err}
	}
	if l.LastReview, err = parseLastReview(r[9]); err != nil {
		return l, &fieldError{ColLastReview, r[9], err}
	}
	if l.Availability365, err = parseAvailability(r[10]); err != nil {
		return l, &fieldError{ColAvailability365, r[10], err}
	}
	return l, nil
}

// parsePrice parses a non-negative price, tolerating surrounding currency
// symbols and thousands separators. The remainder must be a single number.
// Examples:
//
//	"4000"     → 4000
//	"¥12,000"  → 12000
//	"$99.50"   → 99.5
//	"4000abc"  → error
func parsePrice(raw string) (float64, error) {
	cleaned := strings.TrimFunc(strings.ReplaceAll(raw, ",", ""), isCurrencyOrSpace)
	if cleaned == "" {
		return 0, errEmpty
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

func isCurrencyOrSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
}

// parseCount parses a non-negative whole number. Integral floats such as "12.0"
// are accepted because exported dataframes often widen integer columns.
func parseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errEmpty
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, errNegative
		}
		if n > math.MaxInt32 {
			return 0, errTooLarge
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotWhole
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotWhole
	}
	if f < 0 {
		return 0, errNegative
	}
	if f > math.MaxInt32 {
		return 0, errTooLarge
	}
	return int(f), nil
}

func parseAvailability(raw string) (int, error) {
	n, err := parseCount(raw)
	if err != nil {
		return 0, err
	}
	if n > 365 {
		return 0, fmt.Errorf("availability %d outside 0-365", n)
	}
	return n, nil
}

func parseCoordinate(raw string, limit float64) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(f) || f < -limit || f > limit {
		return 0, fmt.Errorf("coordinate outside ±%.0f", limit)
	}
	return f, nil
}

// parseLastReview returns the zero time for a blank cell. Timestamps are
// truncated to their date.
func parseLastReview(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}, nil
	}
	for _, layout := range lastReviewLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("not a %s date", models.LastReviewLayout)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
