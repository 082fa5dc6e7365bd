package services

import (
	"context"
	"time"

	"github.com/motio/analysis-api/internal/lib/narrate"
	"github.com/motio/analysis-api/internal/models"
	"github.com/motio/analysis-api/internal/observability"
)

// Decorators recording provider call outcomes and latency. They wrap the raw
// clients so the clients themselves stay free of metrics plumbing.

type instrumentedWeather struct {
	inner   WeatherLookup
	metrics *observability.Metrics
}

// InstrumentWeather wraps a WeatherLookup with Prometheus instrumentation.
func InstrumentWeather(inner WeatherLookup, metrics *observability.Metrics) WeatherLookup {
	return &instrumentedWeather{inner: inner, metrics: metrics}
}

func (w *instrumentedWeather) Lookup(ctx context.Context, lat, lng float64, target time.Time) (*models.WeatherObservation, error) {
	start := time.Now()
	obs, err := w.inner.Lookup(ctx, lat, lng, target)
	w.metrics.ProviderDuration.WithLabelValues("open-meteo").Observe(time.Since(start).Seconds())
	w.metrics.ProviderRequests.WithLabelValues("open-meteo", outcome(obs == nil, err)).Inc()
	return obs, err
}

type instrumentedRoads struct {
	inner   RoadLookup
	metrics *observability.Metrics
}

// InstrumentRoads wraps a RoadLookup with Prometheus instrumentation.
func InstrumentRoads(inner RoadLookup, metrics *observability.Metrics) RoadLookup {
	return &instrumentedRoads{inner: inner, metrics: metrics}
}

func (r *instrumentedRoads) NearbyRoad(ctx context.Context, lat, lng float64) (*models.RoadInfo, error) {
	start := time.Now()
	road, err := r.inner.NearbyRoad(ctx, lat, lng)
	r.metrics.ProviderDuration.WithLabelValues("overpass").Observe(time.Since(start).Seconds())
	r.metrics.ProviderRequests.WithLabelValues("overpass", outcome(road == nil, err)).Inc()
	return road, err
}

type instrumentedNarrator struct {
	inner   narrate.Narrator
	metrics *observability.Metrics
}

// InstrumentNarrator wraps a Narrator with Prometheus instrumentation.
func InstrumentNarrator(inner narrate.Narrator, metrics *observability.Metrics) narrate.Narrator {
	return &instrumentedNarrator{inner: inner, metrics: metrics}
}

func (n *instrumentedNarrator) Narrate(ctx context.Context, req narrate.Request) (string, error) {
	start := time.Now()
	text, err := n.inner.Narrate(ctx, req)
	n.metrics.NarrationDuration.Observe(time.Since(start).Seconds())
	return text, err
}

func outcome(empty bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case empty:
		return "empty"
	default:
		return "success"
	}
}
