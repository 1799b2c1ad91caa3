package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/planner"
	"github.com/imaahil/dhonipass/internal/core/ports"
	"github.com/imaahil/dhonipass/internal/pkg/metrics"
)

// catalogCacheKey holds the materialized catalog; invalidated by the sync
// workflow whenever segments change.
const catalogCacheKey = "catalog:materialized"

// PlannerService runs the trip routing engine over the configured catalog
// source. The catalog is fetched once per plan (with a short valkey
// read-through), so the engine itself never touches the network.
type PlannerService struct {
	catalog   ports.CatalogRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	engine    planner.Engine
}

// NewPlannerService creates a new PlannerService. cache and publisher may be
// nil; planning degrades to uncached, unpublished operation.
func NewPlannerService(catalog ports.CatalogRepository, cache ports.CacheService, publisher ports.EventPublisher, engine planner.Engine) *PlannerService {
	return &PlannerService{catalog: catalog, cache: cache, publisher: publisher, engine: engine}
}

// PlanTrip builds one itinerary visiting the destinations in order. A nil
// itinerary with a nil error means no route exists — the UI distinguishes
// that from a failed catalog fetch.
func (s *PlannerService) PlanTrip(ctx context.Context, destinationIDs []string, startDate time.Time, pref domain.Preference) (*domain.Itinerary, error) {
	cat, err := s.materialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	started := time.Now()
	it := s.engine.BuildItinerary(cat, destinationIDs, startDate, pref)
	s.observe(ctx, destinationIDs, pref, it, time.Since(started))
	return it, nil
}

// PlanOptions builds up to four itineraries, one per optimization strategy,
// for side-by-side comparison.
func (s *PlannerService) PlanOptions(ctx context.Context, destinationIDs []string, startDate time.Time) ([]domain.Itinerary, error) {
	cat, err := s.materialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	started := time.Now()
	options := s.engine.BuildItineraryOptions(cat, destinationIDs, startDate)
	elapsed := time.Since(started)
	if len(options) == 0 {
		s.observe(ctx, destinationIDs, domain.PreferBalanced, nil, elapsed)
	} else {
		for i := range options {
			s.observe(ctx, destinationIDs, options[i].Preference, &options[i], elapsed)
		}
	}
	return options, nil
}

// ValidateItinerary runs the structural diagnostics over an itinerary.
func (s *PlannerService) ValidateItinerary(it *domain.Itinerary) domain.ValidationResult {
	return planner.Validate(it)
}

// materialize fetches the full catalog, serving from cache when possible.
func (s *PlannerService) materialize(ctx context.Context) (planner.Catalog, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var cat planner.Catalog
			if err := json.Unmarshal(data, &cat); err == nil {
				metrics.CacheHits.WithLabelValues("catalog").Inc()
				return cat, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("catalog").Inc()
	}

	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return planner.Catalog{}, err
	}
	segments, err := s.catalog.Segments(ctx)
	if err != nil {
		return planner.Catalog{}, err
	}
	cat := planner.Catalog{Locations: locations, Segments: segments}

	// Schedules change rarely; five minutes keeps plans one round trip.
	if s.cache != nil {
		if data, err := json.Marshal(cat); err == nil {
			_ = s.cache.Set(ctx, catalogCacheKey, data, 300)
		}
	}
	return cat, nil
}

// observe records metrics and publishes a plan event for the insights
// pipeline. Publishing is best-effort; a broker outage never fails a plan.
func (s *PlannerService) observe(ctx context.Context, destinationIDs []string, pref domain.Preference, it *domain.Itinerary, elapsed time.Duration) {
	metrics.PlansComputed.WithLabelValues(string(pref)).Inc()
	metrics.PlanDuration.Observe(elapsed.Seconds())

	event := &domain.PlanEvent{
		Time:          time.Now(),
		Destinations:  destinationIDs,
		Preference:    pref,
		ElapsedMillis: elapsed.Milliseconds(),
	}

	if it == nil {
		metrics.PlansNoRoute.Inc()
	} else {
		event.Found = true
		event.TotalCostAmount = it.TotalCostAmount
		event.DurationMinutes = it.TotalDurationMinutes
		for _, r := range it.Routes {
			if r.ViaHub {
				event.ViaHub = true
				metrics.HubFallbacks.Inc()
				break
			}
		}
	}

	if s.publisher != nil {
		_ = s.publisher.PublishPlanComputed(ctx, event)
	}
}
