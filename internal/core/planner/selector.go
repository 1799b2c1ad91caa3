package planner

import (
	"github.com/imaahil/dhonipass/internal/core/domain"
)

// SelectBest picks the single best candidate for a leg under the given
// preference. Candidates must be non-empty; callers handle the no-route case
// before ranking. Ties keep the first-encountered candidate, so selection is
// stable across identical catalogs.
func (e Engine) SelectBest(candidates []domain.CandidateRoute, pref domain.Preference) domain.CandidateRoute {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if e.better(c, best, pref) {
			best = c
		}
	}
	return best
}

func (e Engine) better(a, b domain.CandidateRoute, pref domain.Preference) bool {
	switch pref {
	case domain.PreferSpeed:
		return a.DurationMinutes < b.DurationMinutes
	case domain.PreferCost:
		return a.PriceAmount < b.PriceAmount
	case domain.PreferComfort:
		return a.Capacity > b.Capacity
	default:
		return e.balancedScore(a) < e.balancedScore(b)
	}
}

// balancedScore blends fare and travel time into one dimensionless number.
// The weighting ($100 of fare ≈ 1 hour) is a fixed business constant; do not
// re-derive it, downstream comparisons depend on these exact values.
func (e Engine) balancedScore(c domain.CandidateRoute) float64 {
	return c.PriceAmount/e.BalancedPriceUnit + float64(c.DurationMinutes)/e.BalancedTimeUnit
}
