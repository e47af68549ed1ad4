package storage

import (
	"errors"
	"testing"
	"time"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"4000", 4000, false},
		{" 4500 ", 4500, false},
		{"¥12,000", 12000, false},
		{"$99.50", 99.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"free", 0, true},
		{"-300", 0, true},
		{"¥-300", 0, true},
		{"1.2e4", 12000, false},
		{"99.50 €", 99.5, false},
		{"4000abc", 0, true},
		{"N/A 12", 0, true},
		{"12.5.3", 0, true},
		{"1,000-2,000", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePrice(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"12.0", 12, false},
		{"0", 0, false},
		{"1.5", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"many", 0, true},
		{"NaN", 0, true},
		{"1e30", 0, true},
		{"99999999999", 0, true},
	}

	for _, tt := range tests {
		got, err := parseCount(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCount(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCount(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseAvailabilityRange(t *testing.T) {
	if _, err := parseAvailability("365"); err != nil {
		t.Errorf("365 should be accepted: %v", err)
	}
	if _, err := parseAvailability("366"); err == nil {
		t.Error("366 should be rejected")
	}
}

func TestParseCoordinate(t *testing.T) {
	if got, err := parseCoordinate("35.6581", 90); err != nil || got != 35.6581 {
		t.Errorf("parseCoordinate(35.6581) = %v, %v", got, err)
	}
	if _, err := parseCoordinate("95", 90); err == nil {
		t.Error("latitude 95 should be rejected")
	}
	if _, err := parseCoordinate("north", 90); err == nil {
		t.Error("non-numeric coordinate should be rejected")
	}
}

func TestParseLastReview(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"2019-11-23", time.Date(2019, 11, 23, 0, 0, 0, 0, time.UTC), false},
		{"2019-11-23 00:00:00", time.Date(2019, 11, 23, 0, 0, 0, 0, time.UTC), false},
		{"", time.Time{}, false},
		{"nan", time.Time{}, false},
		{"2019-11-23T14:05:00", time.Date(2019, 11, 23, 0, 0, 0, 0, time.UTC), false},
		{"2019-11-23T14:05:00+09:00", time.Date(2019, 11, 23, 0, 0, 0, 0, time.UTC), false},
		{"23/11/2019", time.Time{}, true},
		{"2019-11-23junk", time.Time{}, true},
		{"2019-11-23 later", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := parseLastReview(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLastReview(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseLastReview(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormaliseText(t *testing.T) {
	if got := normaliseText("  Cozy \t room\nnear   Shibuya "); got != "Cozy room near Shibuya" {
		t.Errorf("normaliseText: got %q", got)
	}
}

func TestRawRowNamesFailingColumn(t *testing.T) {
	row := rawRow{"Flat", "Aki", "Shibuya Ku", "Entire home/apt", "4000", "1", "35.66", "139.70", "lots", "", "10"}

	_, err := row.toListing()
	var fe *fieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected fieldError, got %v", err)
	}
	if fe.column != ColNumberOfReviews {
		t.Errorf("column: got %q, want %q", fe.column, ColNumberOfReviews)
	}
}
