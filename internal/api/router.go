// Package api exposes the HTTP surface of the analysis service.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/motio/analysis-api/internal/observability"
	"github.com/motio/analysis-api/internal/services"
)

// Deps holds everything the router wires into its handlers.
type Deps struct {
	Weather  services.WeatherLookup
	Roads    services.RoadLookup
	Analyzer Analyzer
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// NewRouter builds the gin engine with all routes and middleware. CORS is
// fully open: the service fronts a public demo client.
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(deps.Logger))
	r.Use(Observe(deps.Metrics))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	r.GET("/", homepage)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(deps.Weather, deps.Roads, deps.Analyzer, deps.Logger)
	r.POST("/get-weather", h.GetWeather)
	r.POST("/get-road", h.GetRoad)
	r.POST("/get-context", h.GetContext)

	return r
}

// homepage serves a plain-text index describing the API.
func homepage(c *gin.Context) {
	c.String(http.StatusOK, `Motio Analysis API

Enriches raw driving-telemetry events with local time, road type, weather,
and an AI-generated explanation.

Endpoints:
  POST /get-weather   {lat, lng, when_utc}        - nearest hourly forecast record
  POST /get-road      {lat, lng}                  - nearby road name and classification
  POST /get-context   {lat, lng, ts, type}        - full event analysis with narrative
  GET  /healthz                                   - liveness
  GET  /metrics                                   - Prometheus metrics

Data sources:
  - Overpass API    - nearby road classification
  - Open-Meteo      - hourly weather forecasts
  - OpenAI          - event context narration
`)
}
