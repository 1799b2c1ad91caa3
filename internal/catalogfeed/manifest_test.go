package catalogfeed

import (
	"testing"
)

const sampleManifest = `{
  "source": "mtcc",
  "locations": [
    {"id": "male", "name": "Malé", "category": "city", "position": {"lat": 4.1755, "lon": 73.5093}},
    {"id": "maafushi", "name": "Maafushi", "category": "island", "position": {"lat": 3.9423, "lon": 73.4907}}
  ],
  "segments": [
    {
      "id": "mv-900",
      "route_name": "Malé - Maafushi Ferry",
      "mode": "ferry",
      "from": "Malé",
      "to": "Maafushi",
      "duration": "1h 30m",
      "price": "$2.50",
      "capacity": 80
    }
  ]
}`

func TestParse_NormalizesDisplayFields(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Source != "mtcc" {
		t.Errorf("source = %q, want mtcc", m.Source)
	}
	if len(m.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(m.Segments))
	}

	s := m.Segments[0]
	if s.DurationMinutes != 90 {
		t.Errorf("duration minutes = %d, want 90", s.DurationMinutes)
	}
	if s.PriceAmount != 2.50 {
		t.Errorf("price amount = %v, want 2.50", s.PriceAmount)
	}
	if s.DistanceKm <= 0 {
		t.Errorf("distance km = %v, want > 0", s.DistanceKm)
	}
	// Malé to Maafushi is roughly 26 km over water.
	if s.DistanceKm < 20 || s.DistanceKm > 35 {
		t.Errorf("distance km = %v, outside plausible range", s.DistanceKm)
	}
}

func TestParse_KeepsExplicitNumericFields(t *testing.T) {
	raw := `{
	  "source": "speedboat-op",
	  "locations": [],
	  "segments": [
	    {"id": "mv-901", "mode": "speedboat", "from": "Malé", "to": "Gulhi",
	     "duration": "45 minutes", "duration_minutes": 40,
	     "price": "$25", "price_amount": 22.5, "distance_km": 19.1, "capacity": 12}
	  ]
	}`

	m, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	s := m.Segments[0]
	if s.DurationMinutes != 40 {
		t.Errorf("duration minutes = %d, want 40 (explicit value kept)", s.DurationMinutes)
	}
	if s.PriceAmount != 22.5 {
		t.Errorf("price amount = %v, want 22.5 (explicit value kept)", s.PriceAmount)
	}
	if s.DistanceKm != 19.1 {
		t.Errorf("distance km = %v, want 19.1 (explicit value kept)", s.DistanceKm)
	}
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"source": `)); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}
