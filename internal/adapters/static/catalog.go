// Package static provides an in-memory catalog compiled into the binary.
// It backs the API when no database is configured and keeps local
// development and tests free of external services.
package static

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/imaahil/dhonipass/internal/catalogfeed"
	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/planner"
)

//go:embed data/catalog.json
var dataFS embed.FS

// Catalog implements ports.CatalogRepository over the embedded dataset.
// Upserts mutate the in-memory copy only; they exist so the sync workflow
// can run against a static deployment without branching.
type Catalog struct {
	mu        sync.RWMutex
	locations []domain.Location
	segments  []domain.TransportSegment
}

// Load parses the embedded dataset. Normalized duration, price, and
// distance fields are derived from the display values by the feed parser.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	m, err := catalogfeed.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}

	return &Catalog{locations: m.Locations, segments: m.Segments}, nil
}

func (c *Catalog) Locations(ctx context.Context) ([]domain.Location, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Location, len(c.locations))
	copy(out, c.locations)
	return out, nil
}

func (c *Catalog) LocationByID(ctx context.Context, id string) (*domain.Location, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.locations {
		if l.ID == id {
			loc := l
			return &loc, nil
		}
	}
	return nil, nil
}

func (c *Catalog) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	needle := planner.NormalizeName(query)
	var out []domain.Location
	for _, l := range c.locations {
		if strings.Contains(planner.NormalizeName(l.Name), needle) {
			out = append(out, l)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (c *Catalog) Segments(ctx context.Context) ([]domain.TransportSegment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.TransportSegment, len(c.segments))
	copy(out, c.segments)
	return out, nil
}

func (c *Catalog) SegmentByID(ctx context.Context, id string) (*domain.TransportSegment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.segments {
		if s.ID == id {
			seg := s
			return &seg, nil
		}
	}
	return nil, nil
}

func (c *Catalog) SegmentsBetween(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fromN := planner.NormalizeName(from)
	toN := planner.NormalizeName(to)
	var out []domain.TransportSegment
	for _, s := range c.segments {
		if strings.Contains(planner.NormalizeName(s.From), fromN) &&
			strings.Contains(planner.NormalizeName(s.To), toN) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) UpsertLocations(ctx context.Context, locations []domain.Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range locations {
		replaced := false
		for i := range c.locations {
			if c.locations[i].ID == l.ID {
				c.locations[i] = l
				replaced = true
				break
			}
		}
		if !replaced {
			c.locations = append(c.locations, l)
		}
	}
	return nil
}

func (c *Catalog) UpsertSegments(ctx context.Context, segments []domain.TransportSegment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range segments {
		replaced := false
		for i := range c.segments {
			if c.segments[i].ID == s.ID {
				c.segments[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			c.segments = append(c.segments, s)
		}
	}
	return nil
}
