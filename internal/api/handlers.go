package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/motio/analysis-api/internal/lib/geo"
	"github.com/motio/analysis-api/internal/models"
	"github.com/motio/analysis-api/internal/services"
)

// Analyzer runs the full event-context enrichment pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, event models.TelemetryEvent) (*models.AnalysisResult, error)
}

// Handler holds the dependencies of the three lookup endpoints.
type Handler struct {
	weather  services.WeatherLookup
	roads    services.RoadLookup
	analyzer Analyzer
	logger   *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(weather services.WeatherLookup, roads services.RoadLookup, analyzer Analyzer, logger *zap.Logger) *Handler {
	return &Handler{weather: weather, roads: roads, analyzer: analyzer, logger: logger}
}

// GetWeather handles POST /get-weather: the forecast record nearest the
// requested instant, or {} when the provider has no hourly data.
func (h *Handler) GetWeather(c *gin.Context) {
	var req models.WeatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondValidationError(c, "lat and lng are required")
		return
	}
	if req.WhenUTC == nil {
		respondValidationError(c, "when_utc is required")
		return
	}
	if err := geo.Validate(*req.Lat, *req.Lng); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	observation, err := h.weather.Lookup(c.Request.Context(), *req.Lat, *req.Lng, req.WhenUTC.Time)
	if err != nil {
		h.logger.Warn("weather lookup failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		respondError(c, err)
		return
	}
	if observation == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, observation)
}

// GetRoad handles POST /get-road: the first highway-tagged way within the
// search radius, or {} when none is found.
func (h *Handler) GetRoad(c *gin.Context) {
	var req models.RoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondValidationError(c, "lat and lng are required")
		return
	}
	if err := geo.Validate(*req.Lat, *req.Lng); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	road, err := h.roads.NearbyRoad(c.Request.Context(), *req.Lat, *req.Lng)
	if err != nil {
		h.logger.Warn("road lookup failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		respondError(c, err)
		return
	}
	if road == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, road)
}

// GetContext handles POST /get-context: the composed analysis of event,
// enrichment, and generated narrative.
func (h *Handler) GetContext(c *gin.Context) {
	var req models.ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondValidationError(c, "lat and lng are required")
		return
	}
	if req.TS == nil {
		respondValidationError(c, "ts is required")
		return
	}
	if err := geo.Validate(*req.Lat, *req.Lng); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	eventType := models.EventType(req.Type).OrDefault()
	if !eventType.Valid() {
		respondValidationError(c, "type must be one of hard_brake, rapid_accel, hard_corner, overspeed, other")
		return
	}

	event := models.TelemetryEvent{
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Timestamp: *req.TS,
		EventType: eventType,
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), event)
	if err != nil {
		h.logger.Warn("context analysis failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
