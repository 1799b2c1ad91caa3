// Package catalogfeed loads operator schedule manifests: JSON documents
// published by transport operators with display-form durations and prices.
// Normalization derives the numeric fields the planner works with.
package catalogfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/planner"
	"github.com/imaahil/dhonipass/internal/pkg/geospatial"
)

// Manifest is an operator schedule feed.
type Manifest struct {
	Source    string                    `json:"source"`
	Locations []domain.Location         `json:"locations"`
	Segments  []domain.TransportSegment `json:"segments"`
}

// ReadFile loads and normalizes a manifest from disk.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Fetch downloads and normalizes a manifest from an operator URL.
func Fetch(ctx context.Context, url string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch manifest: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read manifest body: %w", err)
	}
	return Parse(data)
}

// Parse decodes and normalizes a raw manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.normalize()
	return &m, nil
}

// normalize derives duration minutes, price amounts, and distances from the
// display values. Operators only publish the display strings.
func (m *Manifest) normalize() {
	byName := make(map[string]domain.GeoPoint, len(m.Locations))
	for _, l := range m.Locations {
		byName[planner.NormalizeName(l.Name)] = l.Position
	}

	for i := range m.Segments {
		s := &m.Segments[i]
		if s.DurationMinutes == 0 {
			s.DurationMinutes = planner.ParseDurationMinutes(s.Duration)
		}
		if s.PriceAmount == 0 {
			s.PriceAmount = planner.ParsePriceAmount(s.Price)
		}
		if s.DistanceKm == 0 {
			from, okF := byName[planner.NormalizeName(s.From)]
			to, okT := byName[planner.NormalizeName(s.To)]
			if okF && okT {
				s.DistanceKm = geospatial.DistanceKm(from.Lat, from.Lon, to.Lat, to.Lon)
			}
		}
	}
}
