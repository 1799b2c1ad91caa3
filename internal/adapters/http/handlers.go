package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// ListLocationsHandler returns the island/atoll reference catalog.
func ListLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locations, err := deps.Catalog.ListLocations(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		// Apply offset/limit pagination on the full list
		offset, limit := ParseOffsetLimit(c, 100, 200)
		pg := Pagination{Offset: offset, Limit: limit, Total: len(locations)}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: Page(locations, offset, limit), Pagination: pg})
	}
}

// SearchLocationsHandler performs name search on the catalog.
func SearchLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 20)

		locations, err := deps.Catalog.SearchLocations(c.Context(), query, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(locations)
	}
}

// GetLocationHandler returns a single location by ID.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "location id is required")
		}
		location, err := deps.Catalog.GetLocation(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if location == nil {
			return errNotFound(c, "location not found")
		}
		return c.JSON(location)
	}
}

// ListSegmentsHandler lists transport segments, optionally filtered to a
// from/to pair.
func ListSegmentsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := c.Query("from")
		to := c.Query("to")

		segments, err := deps.Catalog.ListSegments(c.Context(), from, to)
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset, limit := ParseOffsetLimit(c, 100, 500)
		pg := Pagination{Offset: offset, Limit: limit, Total: len(segments)}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: Page(segments, offset, limit), Pagination: pg})
	}
}

// GetSegmentHandler returns a single segment by ID.
func GetSegmentHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "segment id is required")
		}
		segment, err := deps.Catalog.GetSegment(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if segment == nil {
			return errNotFound(c, "segment not found")
		}
		return c.JSON(segment)
	}
}

// parsePlanQuery extracts the shared planner query parameters.
// destinations is a comma-separated list of location IDs or names;
// date defaults to tomorrow when absent or malformed.
func parsePlanQuery(c *fiber.Ctx) (destinations []string, startDate time.Time, badReq string) {
	raw := c.Query("destinations")
	if raw == "" {
		return nil, time.Time{}, "destinations query parameter is required"
	}

	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			destinations = append(destinations, trimmed)
		}
	}
	if len(destinations) < 2 {
		return nil, time.Time{}, "at least two destinations are required"
	}

	startDate = time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			startDate = t
		}
	}
	return destinations, startDate, ""
}

// PlanTripHandler builds one itinerary for the requested island hops.
// GET /v1/trips/plan?destinations=male,maafushi&date=2026-01-15&preference=cost
func PlanTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		destinations, startDate, badReq := parsePlanQuery(c)
		if badReq != "" {
			return errBadRequest(c, badReq)
		}
		pref := domain.ParsePreference(c.Query("preference"))

		itinerary, err := deps.Planner.PlanTrip(c.Context(), destinations, startDate, pref)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if itinerary == nil {
			return errNotFound(c, "no routes found between these islands")
		}
		return c.JSON(itinerary)
	}
}

// TripOptionsHandler builds one itinerary per optimization strategy so the
// UI can render a comparison table.
func TripOptionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		destinations, startDate, badReq := parsePlanQuery(c)
		if badReq != "" {
			return errBadRequest(c, badReq)
		}

		options, err := deps.Planner.PlanOptions(c.Context(), destinations, startDate)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if len(options) == 0 {
			return errNotFound(c, "no routes found between these islands")
		}
		return c.JSON(fiber.Map{"options": options, "count": len(options)})
	}
}

// ValidateTripHandler runs the structural diagnostics over a submitted
// itinerary and reports every violation found.
func ValidateTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var itinerary domain.Itinerary
		if err := c.BodyParser(&itinerary); err != nil {
			return errBadRequest(c, "invalid itinerary payload: "+err.Error())
		}
		result := deps.Planner.ValidateItinerary(&itinerary)
		return c.JSON(result)
	}
}

// PlanStatsHandler returns aggregated plan counters for the dashboard.
// GET /v1/stats?window_days=30
func PlanStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Insights == nil {
			return errUnavailable(c, "plan insights require a database")
		}
		stats, err := deps.Insights.Stats(c.Context(), c.QueryInt("window_days", 30))
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}
