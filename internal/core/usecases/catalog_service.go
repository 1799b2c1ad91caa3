package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/ports"
)

// CatalogService handles location and segment lookups for the guide pages.
type CatalogService struct {
	catalog ports.CatalogRepository
	cache   ports.CacheService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog ports.CatalogRepository, cache ports.CacheService) *CatalogService {
	return &CatalogService{catalog: catalog, cache: cache}
}

// ListLocations returns the full location reference set.
func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	cacheKey := "locations:all"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var locations []domain.Location
			if err := json.Unmarshal(data, &locations); err == nil {
				return locations, nil
			}
		}
	}

	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(locations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}
	return locations, nil
}

// SearchLocations performs a name search over the reference set.
func (s *CatalogService) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.catalog.SearchLocations(ctx, query, limit)
}

// GetLocation returns a single location.
func (s *CatalogService) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	return s.catalog.LocationByID(ctx, id)
}

// ListSegments returns catalog segments, optionally filtered to a
// (from, to) pair.
func (s *CatalogService) ListSegments(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
	if from != "" && to != "" {
		return s.catalog.SegmentsBetween(ctx, from, to)
	}
	return s.catalog.Segments(ctx)
}

// GetSegment returns a single segment.
func (s *CatalogService) GetSegment(ctx context.Context, id string) (*domain.TransportSegment, error) {
	return s.catalog.SegmentByID(ctx, id)
}
