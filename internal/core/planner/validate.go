package planner

import (
	"fmt"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// Validate checks the structural invariants of an itinerary and reports
// every violation, not just the first. It never mutates its input; it exists
// for tests and defensive UI checks — BuildItinerary already enforces the
// stronger all-or-nothing policy at construction time.
func Validate(it *domain.Itinerary) domain.ValidationResult {
	var errs []string

	if len(it.Destinations) < 2 {
		errs = append(errs, fmt.Sprintf("itinerary needs at least 2 destinations, has %d", len(it.Destinations)))
	}
	if len(it.Routes) < 1 {
		errs = append(errs, "itinerary has no routes")
	}
	if len(it.Destinations) > 0 && len(it.Routes) != len(it.Destinations)-1 {
		errs = append(errs, fmt.Sprintf(
			"route count %d does not match destination count %d (expected %d routes)",
			len(it.Routes), len(it.Destinations), len(it.Destinations)-1))
	}
	if !it.StartDate.Before(it.EndDate) {
		errs = append(errs, fmt.Sprintf(
			"start date %s is not before end date %s",
			it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02")))
	}
	if it.TotalCostAmount < 0 {
		errs = append(errs, fmt.Sprintf("total cost %.2f is negative", it.TotalCostAmount))
	}

	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
