package planner

import (
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// preferenceOrder fixes the strategy sequence for BuildItineraryOptions.
var preferenceOrder = []domain.Preference{
	domain.PreferSpeed,
	domain.PreferCost,
	domain.PreferComfort,
	domain.PreferBalanced,
}

// BuildItinerary assembles a trip visiting the given destinations in order,
// selecting one route per consecutive pair under the caller's preference.
//
// Unknown destination IDs are silently dropped; fewer than two resolved
// destinations returns nil. Assembly is all-or-nothing: if any leg has no
// direct or hub-composed route the whole itinerary is nil — partial
// itineraries are never returned, and no alternate intermediate stops are
// attempted.
func (e Engine) BuildItinerary(catalog Catalog, destinationIDs []string, startDate time.Time, pref domain.Preference) *domain.Itinerary {
	resolved := resolveDestinations(catalog.Locations, destinationIDs)
	if len(resolved) < 2 {
		return nil
	}

	var (
		routes       []domain.CandidateRoute
		totalMinutes int
		totalCost    float64
		totalKm      float64
	)

	for i := 0; i < len(resolved)-1; i++ {
		from, to := resolved[i].Name, resolved[i+1].Name

		candidates := e.Match(catalog.Segments, from, to)
		if len(candidates) == 0 {
			if hub := e.RouteViaHub(catalog.Segments, from, to); hub != nil {
				candidates = append(candidates, *hub)
			}
		}
		if len(candidates) == 0 {
			return nil
		}

		best := e.SelectBest(candidates, pref)
		routes = append(routes, best)
		totalMinutes += best.DurationMinutes
		totalCost += best.PriceAmount
		totalKm += best.DistanceKm
	}

	return &domain.Itinerary{
		Destinations:         resolved,
		Routes:               routes,
		TotalDuration:        FormatDuration(totalMinutes),
		TotalDurationMinutes: totalMinutes,
		TotalCost:            FormatPrice(totalCost),
		TotalCostAmount:      totalCost,
		TotalDistance:        FormatDistance(totalKm),
		TotalDistanceKm:      totalKm,
		StartDate:            startDate,
		EndDate:              endDate(startDate, len(resolved), totalMinutes),
		Preference:           pref,
		Optimal:              true,
	}
}

// BuildItineraryOptions builds one itinerary per strategy (speed, cost,
// comfort, balanced, in that order) for side-by-side comparison. Strategies
// that find no route are skipped; the same route winning under several
// strategies appears once per strategy — callers see up to four entries,
// repeats included.
func (e Engine) BuildItineraryOptions(catalog Catalog, destinationIDs []string, startDate time.Time) []domain.Itinerary {
	var options []domain.Itinerary
	for _, pref := range preferenceOrder {
		if it := e.BuildItinerary(catalog, destinationIDs, startDate, pref); it != nil {
			options = append(options, *it)
		}
	}
	return options
}

// endDate applies the dwell-time heuristic: a full day per destination
// visited plus a day per 24h of accumulated travel.
func endDate(start time.Time, destinations, totalMinutes int) time.Time {
	days := destinations + (totalMinutes+1439)/1440
	return start.AddDate(0, 0, days)
}

// resolveDestinations maps request IDs onto catalog locations, dropping any
// that resolve to nothing. An ID matches on exact identity or on normalized
// name equality ("maafushi-island" resolves to "Maafushi Island").
func resolveDestinations(locations []domain.Location, ids []string) []domain.Location {
	var resolved []domain.Location
	for _, id := range ids {
		if loc := findLocation(locations, id); loc != nil {
			resolved = append(resolved, *loc)
		}
	}
	return resolved
}

func findLocation(locations []domain.Location, id string) *domain.Location {
	for i := range locations {
		if locations[i].ID == id {
			return &locations[i]
		}
	}
	want := NormalizeName(id)
	for i := range locations {
		if NormalizeName(locations[i].Name) == want {
			return &locations[i]
		}
	}
	return nil
}
