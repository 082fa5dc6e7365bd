// Package services orchestrates the enrichment pipeline: localization,
// weather and road lookups, and narration.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/motio/analysis-api/internal/lib/enrich"
	"github.com/motio/analysis-api/internal/lib/narrate"
	"github.com/motio/analysis-api/internal/models"
)

// WeatherLookup selects the forecast record nearest an instant at a
// coordinate.
type WeatherLookup interface {
	Lookup(ctx context.Context, lat, lng float64, target time.Time) (*models.WeatherObservation, error)
}

// RoadLookup finds the road classification near a coordinate.
type RoadLookup interface {
	NearbyRoad(ctx context.Context, lat, lng float64) (*models.RoadInfo, error)
}

// ContextService runs the full event-context enrichment pipeline.
type ContextService struct {
	weather   WeatherLookup
	roads     RoadLookup
	narrator  narrate.Narrator
	localizer *enrich.Localizer
	logger    *zap.Logger
}

// NewContextService creates a ContextService.
func NewContextService(weather WeatherLookup, roads RoadLookup, narrator narrate.Narrator, localizer *enrich.Localizer, logger *zap.Logger) *ContextService {
	return &ContextService{
		weather:   weather,
		roads:     roads,
		narrator:  narrator,
		localizer: localizer,
		logger:    logger,
	}
}

// Analyze enriches the event with local-time, weather and road context and
// generates the narrative. The weather and road lookups are independent and
// run concurrently; either failing fails the request, while empty results
// degrade to "unknown" in the prompt and nil fields in the response.
func (s *ContextService) Analyze(ctx context.Context, event models.TelemetryEvent) (*models.AnalysisResult, error) {
	event.EventType = event.EventType.OrDefault()
	instant := event.Timestamp.Time

	var (
		observation *models.WeatherObservation
		road        *models.RoadInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		observation, err = s.weather.Lookup(gctx, event.Lat, event.Lng, instant)
		return err
	})
	g.Go(func() error {
		var err error
		road, err = s.roads.NearbyRoad(gctx, event.Lat, event.Lng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	weatherSummary := "unknown"
	if observation != nil && observation.Summary != nil {
		weatherSummary = *observation.Summary
	}
	roadType := "unknown"
	if road != nil && road.Highway != nil {
		roadType = *road.Highway
	}

	localization := s.localizer.Localize(event.Lat, event.Lng, instant)

	narrative, err := s.narrator.Narrate(ctx, narrate.Request{
		EventType:      string(event.EventType),
		WeatherSummary: weatherSummary,
		RoadType:       roadType,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("event analyzed",
		zap.String("event_type", string(event.EventType)),
		zap.String("time_of_day", localization.TimeOfDay),
		zap.String("weather", weatherSummary),
		zap.String("road", roadType))

	enriched := models.EnrichedContext{
		LocalTimeISO: localization.LocalTimeISO,
		TimeOfDay:    localization.TimeOfDay,
		Timezone:     localization.Timezone,
	}
	if road != nil {
		enriched.RoadName = road.Name
		enriched.RoadHighwayType = road.Highway
	}
	if observation != nil {
		enriched.WeatherSummary = observation.Summary
		enriched.TemperatureF = observation.TemperatureF
		enriched.PrecipitationIn = observation.PrecipitationIn
		enriched.WindMPH = observation.WindMPH
		enriched.ConditionCode = observation.WeatherCode
	}

	return &models.AnalysisResult{
		Event:     event,
		Enriched:  enriched,
		AIContext: narrative,
	}, nil
}
