package static_test

import (
	"context"
	"testing"

	"github.com/imaahil/dhonipass/internal/adapters/static"
	"github.com/imaahil/dhonipass/internal/core/planner"
)

func TestLoad_DerivesNormalizedFields(t *testing.T) {
	cat, err := static.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	segments, err := cat.Segments(context.Background())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("expected embedded segments")
	}

	for _, s := range segments {
		if s.DurationMinutes <= 0 {
			t.Errorf("segment %s: duration %q parsed to %d minutes", s.ID, s.Duration, s.DurationMinutes)
		}
		if s.PriceAmount <= 0 {
			t.Errorf("segment %s: price %q parsed to %v", s.ID, s.Price, s.PriceAmount)
		}
		if s.DistanceKm <= 0 {
			t.Errorf("segment %s: no distance derived", s.ID)
		}
	}
}

func TestSearchLocations_AccentInsensitive(t *testing.T) {
	cat, err := static.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	locations, err := cat.SearchLocations(context.Background(), "male", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	found := false
	for _, l := range locations {
		if l.ID == "male" {
			found = true
		}
	}
	if !found {
		t.Error("expected unaccented query to find Malé")
	}
}

func TestSegmentsBetween(t *testing.T) {
	cat, err := static.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	segments, err := cat.SegmentsBetween(context.Background(), "Maafushi", "Gulhi")
	if err != nil {
		t.Fatalf("segments between: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("expected at least one Maafushi → Gulhi segment")
	}
	for _, s := range segments {
		if planner.NormalizeName(s.From) != "maafushi" {
			t.Errorf("segment %s departs %q", s.ID, s.From)
		}
	}
}

func TestPlannerOverEmbeddedCatalog(t *testing.T) {
	cat, err := static.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	segments, err := cat.Segments(context.Background())
	if err != nil {
		t.Fatalf("segments: %v", err)
	}

	engine := planner.DefaultEngine()
	// Gulhi to Thulusdhoo has no direct segment, so this exercises the hub
	// composition over real data.
	route := engine.RouteViaHub(segments, "Gulhi", "Thulusdhoo")
	if route == nil {
		t.Fatal("expected a hub route between Gulhi and Thulusdhoo")
	}
	if !route.ViaHub {
		t.Error("expected composed route to be flagged via hub")
	}
	if len(route.Legs) != 2 {
		t.Errorf("expected 2 legs, got %d", len(route.Legs))
	}
}
