package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"airbnb-webmap/models"
	"airbnb-webmap/services"
)

// Querier runs filter queries.
type Querier interface {
	QueryRaw(neighbourhood, roomType, maxPrice string) (*models.QueryResult, error)
}

// Handler serves filter options and query results.
type Handler struct {
	querier Querier
	options services.OptionSource
	total   int
}

// NewHandler creates a Handler. total is the number of listings loaded.
func NewHandler(querier Querier, options services.OptionSource, total int) *Handler {
	return &Handler{querier: querier, options: options, total: total}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/options", h.GetOptions)
	api.GET("/query", h.GetQuery)
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type queryResponse struct {
	*models.QueryResult
	Cards   []models.Card `json:"cards"`
	MapZoom int           `json:"map_zoom"`
	Opacity float64       `json:"marker_opacity"`
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"listings": h.total,
	})
}

func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, models.FilterOptions{
		Neighbourhoods: h.options.DistinctNeighbourhoods(),
		RoomTypes:      h.options.DistinctRoomTypes(),
		PriceBands:     models.PriceBands,
	})
}

// GetQuery runs the filter given by the neighbourhood, room_type and max_price
// query parameters. Missing parameters yield the empty result.
func (h *Handler) GetQuery(c echo.Context) error {
	result, err := h.querier.QueryRaw(
		c.QueryParam("neighbourhood"),
		c.QueryParam("room_type"),
		c.QueryParam("max_price"),
	)

	var ife *models.InvalidFilterError
	if errors.As(err, &ife) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ife.Error(), Field: ife.Field})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queryResponse{
		QueryResult: result,
		Cards:       result.Cards(),
		MapZoom:     models.DefaultMapZoom,
		Opacity:     models.MarkerOpacity,
	})
}
