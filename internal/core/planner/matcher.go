package planner

import (
	"strings"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// nameMatches reports whether two free-text location names refer to the same
// place. The test is a bidirectional substring check over normalized forms:
// names vary in specificity across sources ("Malé" vs "Malé City" vs
// "North Malé Atoll"), so either side containing the other counts as a match.
func nameMatches(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// segmentConnects reports whether a catalog segment serves the (from, to)
// pair in its published direction.
func segmentConnects(seg domain.TransportSegment, from, to string) bool {
	return nameMatches(seg.From, from) && nameMatches(seg.To, to)
}

// Match returns every catalog segment connecting from and to, unranked and
// in catalog order. An empty result means no direct route exists; that is a
// normal outcome, not an error.
func (e Engine) Match(segments []domain.TransportSegment, from, to string) []domain.CandidateRoute {
	var candidates []domain.CandidateRoute
	for _, seg := range segments {
		if segmentConnects(seg, from, to) {
			candidates = append(candidates, directCandidate(seg))
		}
	}
	return candidates
}

// directCandidate lifts a single segment into a CandidateRoute.
func directCandidate(seg domain.TransportSegment) domain.CandidateRoute {
	return domain.CandidateRoute{
		ID:              seg.ID,
		Name:            seg.RouteName,
		Mode:            seg.Mode,
		From:            seg.From,
		To:              seg.To,
		Duration:        seg.Duration,
		DurationMinutes: seg.DurationMinutes,
		Price:           seg.Price,
		PriceAmount:     seg.PriceAmount,
		Capacity:        seg.Capacity,
		Operator:        seg.Operator,
		DistanceKm:      seg.DistanceKm,
		ViaHub:          false,
		Legs:            []domain.TransportSegment{seg},
	}
}
