package http

import (
	"github.com/nats-io/nats.go"

	"github.com/imaahil/dhonipass/internal/adapters/postgres"
	"github.com/imaahil/dhonipass/internal/adapters/valkey"
	"github.com/imaahil/dhonipass/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers. DB, NATS, Cache,
// and Insights may be nil when running against the embedded catalog.
type Dependencies struct {
	Planner  *usecases.PlannerService
	Catalog  *usecases.CatalogService
	Insights *usecases.InsightsService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
