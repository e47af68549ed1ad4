package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airbnb-webmap/models"
	"airbnb-webmap/services"
	"airbnb-webmap/store"
	"airbnb-webmap/utils"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := utils.NewLoggerWithLevel(&bytes.Buffer{}, slog.LevelDebug)
	s := store.New([]models.Listing{
		{Name: "A", Neighbourhood: "Shibuya", RoomType: "Entire home", Price: 4000, Latitude: 35.6, Longitude: 139.6, NumberOfReviews: 50, Availability365: 10},
		{Name: "B", Neighbourhood: "Shibuya", RoomType: "Entire home", Price: 4500, Latitude: 35.7, Longitude: 139.8, NumberOfReviews: 90, Availability365: 300},
		{Name: "C", Neighbourhood: "Shinjuku", RoomType: "Private room", Price: 3000, Latitude: 35.69, Longitude: 139.7},
	})
	agg := services.NewAggregator(s, logger)
	return NewServer(":0", NewHandler(agg, s, s.Len()), logger)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGetHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["listings"] != float64(3) {
		t.Errorf("listings: got %v, want 3", body["listings"])
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("responses should carry a request id")
	}
}

func TestGetOptions(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/options")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var opts models.FilterOptions
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatal(err)
	}
	if len(opts.Neighbourhoods) != 2 || len(opts.RoomTypes) != 2 {
		t.Errorf("options: %+v", opts)
	}
	if len(opts.PriceBands) != len(models.PriceBands) || opts.PriceBands[0].Value != 5000 {
		t.Errorf("price bands: %+v", opts.PriceBands)
	}
}

type queryBody struct {
	Status    models.ResultStatus `json:"status"`
	Count     int                 `json:"count"`
	Centroid  *models.Centroid    `json:"centroid"`
	MeanPrice *float64            `json:"mean_price"`
	Points    []struct {
		Listing   map[string]interface{} `json:"listing"`
		Marker    models.Marker          `json:"marker"`
		HoverText string                 `json:"hover_text"`
	} `json:"points"`
	Cards   []models.Card `json:"cards"`
	MapZoom int           `json:"map_zoom"`
}

func decodeQuery(t *testing.T, rec *httptest.ResponseRecorder) queryBody {
	t.Helper()
	var body queryBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestGetQueryPopulated(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/query?neighbourhood=Shibuya&room_type=Entire+home&max_price=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeQuery(t, rec)
	if body.Status != models.StatusPopulated || body.Count != 2 || len(body.Points) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.MeanPrice == nil || *body.MeanPrice != 4250 {
		t.Errorf("mean price: %v", body.MeanPrice)
	}
	if body.Centroid == nil {
		t.Error("centroid missing")
	}
	if body.Points[1].Marker.Emphasis != models.EmphasisMostReviewed {
		t.Errorf("B marker: %+v", body.Points[1].Marker)
	}
	if body.Points[0].Listing["last_review"] != nil {
		t.Errorf("absent last review should encode as null: %v", body.Points[0].Listing["last_review"])
	}
	if len(body.Cards) != 4 || body.Cards[0].Value != "2" || body.Cards[1].Value != "4250.0" || body.Cards[2].Subtitle != "B" {
		t.Errorf("cards: %+v", body.Cards)
	}
	if body.MapZoom != models.DefaultMapZoom {
		t.Errorf("map zoom: %d", body.MapZoom)
	}
}

func TestGetQueryEmptySubset(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/query?neighbourhood=Shibuya&room_type=Private+room&max_price=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeQuery(t, rec)
	if body.Status != models.StatusPopulated || body.Count != 0 {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.MeanPrice != nil || body.Centroid != nil {
		t.Errorf("mean price and centroid should be null: %+v", body)
	}
	if body.Cards[1].Value != models.NoDataValue {
		t.Errorf("average price card: %+v", body.Cards[1])
	}
}

func TestGetQueryIncompleteFilter(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/query?room_type=Entire+home&max_price=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeQuery(t, rec)
	if body.Status != models.StatusEmpty {
		t.Errorf("status: got %q, want empty", body.Status)
	}
	if body.Cards[0].Title != models.ApplyFiltersNotice {
		t.Errorf("cards should ask for filters: %+v", body.Cards)
	}
}

func TestGetQueryInvalidPrice(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/query?neighbourhood=Shibuya&room_type=Entire+home&max_price=cheap")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Field != "max_price" {
		t.Errorf("field: got %q", body.Field)
	}
}

func TestRequestLogCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLoggerWithLevel(&buf, slog.LevelInfo)
	s := store.New(nil)
	srv := NewServer(":0", NewHandler(services.NewAggregator(s, logger), s, s.Len()), logger)

	rec := get(t, srv, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	out := buf.String()
	for _, want := range []string{"[api] request", "method=GET", "uri=/api/health", "status=200", "request_id=" + rec.Header().Get("X-Request-Id")} {
		if !strings.Contains(out, want) {
			t.Errorf("request log should contain %q:\n%s", want, out)
		}
	}
}
