package planner

import (
	"fmt"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// RouteViaHub composes a two-leg route through the hub when no direct
// segment serves (from, to). Each leg takes the first catalog segment that
// matches; ranking happens later in SelectBest once the composed route sits
// next to whatever other candidates exist. Ferries run both ways in
// practice, so a leg published only in the reverse direction still counts.
//
// Returns nil when either leg is unresolvable, or when from or to is itself
// the hub (a self-hub composition would be degenerate). Nil is a normal
// no-route outcome, not a failure.
func (e Engine) RouteViaHub(segments []domain.TransportSegment, from, to string) *domain.CandidateRoute {
	if nameMatches(from, e.Hub) || nameMatches(to, e.Hub) {
		return nil
	}

	leg1 := e.firstLeg(segments, from, e.Hub)
	if leg1 == nil {
		return nil
	}
	leg2 := e.firstLeg(segments, e.Hub, to)
	if leg2 == nil {
		return nil
	}

	minutes := leg1.DurationMinutes + leg2.DurationMinutes + e.TransferBufferMinutes
	price := leg1.PriceAmount + leg2.PriceAmount

	return &domain.CandidateRoute{
		// Identity derives from the constituent segment IDs so the same
		// catalog always yields the same composed route.
		ID:              leg1.ID + "+" + leg2.ID,
		Name:            fmt.Sprintf("%s → %s → %s", from, e.Hub, to),
		Mode:            composedMode(*leg1, *leg2),
		From:            from,
		To:              to,
		Duration:        FormatDuration(minutes),
		DurationMinutes: minutes,
		Price:           FormatPrice(price),
		PriceAmount:     price,
		Capacity:        minCapacity(*leg1, *leg2),
		Operator:        composedOperator(*leg1, *leg2),
		DistanceKm:      leg1.DistanceKm + leg2.DistanceKm,
		ViaHub:          true,
		Legs:            []domain.TransportSegment{*leg1, *leg2},
	}
}

// firstLeg finds the first segment serving (from, to), accepting the reverse
// direction when a route is only published one way.
func (e Engine) firstLeg(segments []domain.TransportSegment, from, to string) *domain.TransportSegment {
	for i := range segments {
		if segmentConnects(segments[i], from, to) {
			return &segments[i]
		}
	}
	for i := range segments {
		if segmentConnects(segments[i], to, from) {
			return &segments[i]
		}
	}
	return nil
}

// composedMode tags a hub route with the lower-capacity leg's mode, falling
// back to ferry when the legs are indistinguishable.
func composedMode(a, b domain.TransportSegment) domain.TransportMode {
	if a.Mode == b.Mode {
		return a.Mode
	}
	switch {
	case a.Capacity < b.Capacity:
		return a.Mode
	case b.Capacity < a.Capacity:
		return b.Mode
	default:
		return domain.ModeFerry
	}
}

func minCapacity(a, b domain.TransportSegment) int {
	if a.Capacity < b.Capacity {
		return a.Capacity
	}
	return b.Capacity
}

func composedOperator(a, b domain.TransportSegment) string {
	if a.Operator == b.Operator {
		return a.Operator
	}
	return a.Operator + " / " + b.Operator
}
