package domain

import (
	"time"
)

// LocationCategory classifies a place in the island catalog.
type LocationCategory string

const (
	CategoryCity   LocationCategory = "city"
	CategoryAtoll  LocationCategory = "atoll"
	CategoryIsland LocationCategory = "island"
)

// Location is a named place in the reference catalog. Locations are loaded
// once at catalog-ingest time and never mutated by the planner.
type Location struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  LocationCategory `json:"category"`
	Position  GeoPoint         `json:"position"`
	CreatedAt time.Time        `json:"created_at,omitempty"`
}

// TransportMode is the vessel type operating a segment.
type TransportMode string

const (
	ModeFerry     TransportMode = "ferry"
	ModeSpeedboat TransportMode = "speedboat"
	ModeDhoni     TransportMode = "dhoni"
	ModeSeaplane  TransportMode = "seaplane"
)

// TransportSegment is one scheduled, operator-run connection between two
// named locations. Duration and price carry both the operator's display
// string and a normalized numeric form; the numeric form is derived from the
// display string at ingest time (or supplied directly by the database) and
// the two must not diverge.
type TransportSegment struct {
	ID              string        `json:"id"`
	RouteName       string        `json:"route_name"`
	Mode            TransportMode `json:"mode"`
	From            string        `json:"from"`
	To              string        `json:"to"`
	Duration        string        `json:"duration"`
	DurationMinutes int           `json:"duration_minutes"`
	Price           string        `json:"price"`
	PriceAmount     float64       `json:"price_amount"`
	Capacity        int           `json:"capacity"`
	Amenities       []string      `json:"amenities,omitempty"`
	Operator        string        `json:"operator,omitempty"`
	Departures      []string      `json:"departures,omitempty"`
	DistanceKm      float64       `json:"distance_km,omitempty"`
	CreatedAt       time.Time     `json:"created_at,omitempty"`
}

// CandidateRoute is one option for a single leg of a trip: either a direct
// TransportSegment, or two segments composed through the hub. Composed routes
// get a reproducible identity derived from their constituent segment IDs so
// repeated plans over the same catalog select identical routes.
type CandidateRoute struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Mode            TransportMode      `json:"mode"`
	From            string             `json:"from"`
	To              string             `json:"to"`
	Duration        string             `json:"duration"`
	DurationMinutes int                `json:"duration_minutes"`
	Price           string             `json:"price"`
	PriceAmount     float64            `json:"price_amount"`
	Capacity        int                `json:"capacity"`
	Operator        string             `json:"operator,omitempty"`
	DistanceKm      float64            `json:"distance_km,omitempty"`
	ViaHub          bool               `json:"via_hub"`
	Legs            []TransportSegment `json:"legs"`
}

// Preference selects the optimization strategy for route selection.
type Preference string

const (
	PreferSpeed    Preference = "speed"
	PreferCost     Preference = "cost"
	PreferComfort  Preference = "comfort"
	PreferBalanced Preference = "balanced"
)

// ParsePreference maps a request string onto a known Preference,
// defaulting to balanced.
func ParsePreference(s string) Preference {
	switch Preference(s) {
	case PreferSpeed, PreferCost, PreferComfort:
		return Preference(s)
	default:
		return PreferBalanced
	}
}

// Itinerary is an assembled multi-stop trip: the resolved destinations in
// visiting order and one selected route per consecutive pair. Built once per
// plan request and never mutated afterwards.
type Itinerary struct {
	Destinations         []Location       `json:"destinations"`
	Routes               []CandidateRoute `json:"routes"`
	TotalDuration        string           `json:"total_duration"`
	TotalDurationMinutes int              `json:"total_duration_minutes"`
	TotalCost            string           `json:"total_cost"`
	TotalCostAmount      float64          `json:"total_cost_amount"`
	TotalDistance        string           `json:"total_distance"`
	TotalDistanceKm      float64          `json:"total_distance_km"`
	StartDate            time.Time        `json:"start_date"`
	EndDate              time.Time        `json:"end_date"`
	Preference           Preference       `json:"preference"`
	Optimal              bool             `json:"optimal"`
}

// ValidationResult reports every structural violation found in an itinerary.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// PlanEvent records one computed (or failed) plan request for the
// insights pipeline.
type PlanEvent struct {
	ID              string     `json:"id,omitempty"`
	Time            time.Time  `json:"time"`
	Destinations    []string   `json:"destinations"`
	Preference      Preference `json:"preference"`
	Found           bool       `json:"found"`
	ViaHub          bool       `json:"via_hub"`
	TotalCostAmount float64    `json:"total_cost_amount"`
	DurationMinutes int        `json:"duration_minutes"`
	ElapsedMillis   int64      `json:"elapsed_millis"`
}

// PlanStats aggregates plan events for the dashboard.
type PlanStats struct {
	TotalPlans      int            `json:"total_plans"`
	PlansFound      int            `json:"plans_found"`
	PlansNoRoute    int            `json:"plans_no_route"`
	HubFallbacks    int            `json:"hub_fallbacks"`
	ByPreference    map[string]int `json:"by_preference"`
	TopDestinations []DestCount    `json:"top_destinations,omitempty"`
}

// DestCount is a destination popularity entry.
type DestCount struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}
