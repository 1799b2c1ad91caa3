package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"category": &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{Type: geoPointType},
		},
	})

	segmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Segment",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.String},
			"route_name":       &graphql.Field{Type: graphql.String},
			"mode":             &graphql.Field{Type: graphql.String},
			"from":             &graphql.Field{Type: graphql.String},
			"to":               &graphql.Field{Type: graphql.String},
			"duration":         &graphql.Field{Type: graphql.String},
			"duration_minutes": &graphql.Field{Type: graphql.Int},
			"price":            &graphql.Field{Type: graphql.String},
			"price_amount":     &graphql.Field{Type: graphql.Float},
			"capacity":         &graphql.Field{Type: graphql.Int},
			"operator":         &graphql.Field{Type: graphql.String},
			"distance_km":      &graphql.Field{Type: graphql.Float},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"mode":             &graphql.Field{Type: graphql.String},
			"from":             &graphql.Field{Type: graphql.String},
			"to":               &graphql.Field{Type: graphql.String},
			"duration":         &graphql.Field{Type: graphql.String},
			"duration_minutes": &graphql.Field{Type: graphql.Int},
			"price":            &graphql.Field{Type: graphql.String},
			"price_amount":     &graphql.Field{Type: graphql.Float},
			"via_hub":          &graphql.Field{Type: graphql.Boolean},
			"legs":             &graphql.Field{Type: graphql.NewList(segmentType)},
		},
	})

	itineraryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Itinerary",
		Fields: graphql.Fields{
			"destinations":           &graphql.Field{Type: graphql.NewList(locationType)},
			"routes":                 &graphql.Field{Type: graphql.NewList(routeType)},
			"total_duration":         &graphql.Field{Type: graphql.String},
			"total_duration_minutes": &graphql.Field{Type: graphql.Int},
			"total_cost":             &graphql.Field{Type: graphql.String},
			"total_cost_amount":      &graphql.Field{Type: graphql.Float},
			"total_distance":         &graphql.Field{Type: graphql.String},
			"start_date":             &graphql.Field{Type: graphql.DateTime},
			"end_date":               &graphql.Field{Type: graphql.DateTime},
			"preference":             &graphql.Field{Type: graphql.String},
			"optimal":                &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"locations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "List all islands and atolls",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.ListLocations(p.Context)
				},
			},
			"searchLocations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Search locations by name",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					limit := p.Args["limit"].(int)
					return deps.Catalog.SearchLocations(p.Context, q, limit)
				},
			},
			"location": &graphql.Field{
				Type:        locationType,
				Description: "Get a location by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.GetLocation(p.Context, p.Args["id"].(string))
				},
			},
			"segments": &graphql.Field{
				Type:        graphql.NewList(segmentType),
				Description: "List transport segments, optionally filtered by endpoints",
				Args: graphql.FieldConfigArgument{
					"from": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"to":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from := p.Args["from"].(string)
					to := p.Args["to"].(string)
					return deps.Catalog.ListSegments(p.Context, from, to)
				},
			},
			"planTrip": &graphql.Field{
				Type:        itineraryType,
				Description: "Plan an itinerary across the given destinations",
				Args: graphql.FieldConfigArgument{
					"destinations": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.String))},
					"date":         &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"preference":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "balanced"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rawDest := p.Args["destinations"].([]interface{})
					destinations := make([]string, 0, len(rawDest))
					for _, d := range rawDest {
						if s, ok := d.(string); ok {
							destinations = append(destinations, s)
						}
					}

					startDate := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
					if raw := p.Args["date"].(string); raw != "" {
						if t, err := time.Parse("2006-01-02", raw); err == nil {
							startDate = t
						}
					}
					pref := domain.ParsePreference(p.Args["preference"].(string))

					return deps.Planner.PlanTrip(p.Context, destinations, startDate, pref)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
