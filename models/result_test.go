package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFilterComplete(t *testing.T) {
	p := 5000.0
	tests := []struct {
		f    Filter
		want bool
	}{
		{Filter{Neighbourhood: "Shibuya", RoomType: "Entire home", MaxPrice: &p}, true},
		{Filter{RoomType: "Entire home", MaxPrice: &p}, false},
		{Filter{Neighbourhood: "Shibuya", MaxPrice: &p}, false},
		{Filter{Neighbourhood: "Shibuya", RoomType: "Entire home"}, false},
	}
	for _, tt := range tests {
		if got := tt.f.Complete(); got != tt.want {
			t.Errorf("Complete(%+v) = %v; want %v", tt.f, got, tt.want)
		}
	}
}

func TestCardsPopulated(t *testing.T) {
	mean := 4250.0
	r := &QueryResult{
		Status:        StatusPopulated,
		Count:         2,
		MeanPrice:     &mean,
		MostReviewed:  &Extremum{Value: 90, Label: Listing{Name: "B"}, Ties: 1},
		MostAvailable: &Extremum{Value: 300, Label: Listing{Name: "B"}, Ties: 1},
	}

	cards := r.Cards()
	want := []Card{
		{Title: "Number of Listings", Value: "2"},
		{Title: "Average Price", Value: "4250.0"},
		{Title: "Most Reviews", Value: "90", Subtitle: "B", Color: ColorMostReviewed},
		{Title: "Highly Available (days/year)", Value: "300", Subtitle: "B", Color: ColorMostAvailable},
	}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards", len(cards))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d: got %+v, want %+v", i, cards[i], want[i])
		}
	}
}

func TestCardsWithoutData(t *testing.T) {
	r := &QueryResult{Status: StatusPopulated}
	cards := r.Cards()
	if cards[0].Value != "0" {
		t.Errorf("count card: %+v", cards[0])
	}
	for _, c := range cards[1:] {
		if c.Value != NoDataValue {
			t.Errorf("card %q should show no data, got %q", c.Title, c.Value)
		}
	}

	for _, c := range EmptyResult(Filter{}).Cards() {
		if c.Title != ApplyFiltersNotice {
			t.Errorf("empty result card: %+v", c)
		}
	}
}

func TestListingJSONLastReview(t *testing.T) {
	with := Listing{Name: "A", LastReview: time.Date(2019, 11, 23, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(with)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"last_review":"2019-11-23"`) {
		t.Errorf("date should render as YYYY-MM-DD: %s", b)
	}

	b, err = json.Marshal(Listing{Name: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"last_review":null`) || !strings.Contains(string(b), `"name":"B"`) {
		t.Errorf("absent date should render as null: %s", b)
	}
}

func TestDataLoadErrorUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := error(&DataLoadError{Source: "csv:x.csv", Reason: "open file", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("DataLoadError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "csv:x.csv") || !strings.Contains(err.Error(), "open file") {
		t.Errorf("message: %s", err)
	}
}
