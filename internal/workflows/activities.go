package workflows

import (
	"context"
	"fmt"

	"github.com/imaahil/dhonipass/internal/catalogfeed"
	"github.com/imaahil/dhonipass/internal/core/ports"
	"github.com/imaahil/dhonipass/internal/pkg/metrics"
)

// SyncActivities holds the activity implementations for the catalog sync
// workflow.
type SyncActivities struct {
	Catalog   ports.CatalogRepository
	Cache     ports.CacheService
	Publisher ports.EventPublisher
}

// FetchManifest downloads and normalizes an operator schedule manifest.
func (a *SyncActivities) FetchManifest(ctx context.Context, url string) (*catalogfeed.Manifest, error) {
	m, err := catalogfeed.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(m.Segments) == 0 {
		return nil, fmt.Errorf("manifest %s has no segments", url)
	}
	return m, nil
}

// UpsertCatalog writes the manifest into the catalog store and returns the
// segment count.
func (a *SyncActivities) UpsertCatalog(ctx context.Context, m *catalogfeed.Manifest) (int, error) {
	if err := a.Catalog.UpsertLocations(ctx, m.Locations); err != nil {
		return 0, fmt.Errorf("upsert locations: %w", err)
	}
	if err := a.Catalog.UpsertSegments(ctx, m.Segments); err != nil {
		return 0, fmt.Errorf("upsert segments: %w", err)
	}
	for _, s := range m.Segments {
		metrics.SegmentsIngested.WithLabelValues(s.Operator).Inc()
	}
	return len(m.Segments), nil
}

// InvalidateCatalogCache drops the planner's materialized catalog and the
// location listing so the next plan sees the fresh data.
func (a *SyncActivities) InvalidateCatalogCache(ctx context.Context) error {
	if a.Cache == nil {
		return nil
	}
	for _, key := range []string{"catalog:materialized", "locations:all"} {
		if err := a.Cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("invalidate %s: %w", key, err)
		}
	}
	return nil
}

// PublishCatalogUpdated notifies subscribers that the catalog changed.
func (a *SyncActivities) PublishCatalogUpdated(ctx context.Context, source string) error {
	if a.Publisher == nil {
		return nil
	}
	return a.Publisher.PublishCatalogUpdated(ctx, source)
}
