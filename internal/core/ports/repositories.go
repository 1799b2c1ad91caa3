package ports

import (
	"context"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// CatalogRepository provides the transport catalog. The planner materializes
// the full segment list in one call and runs entirely in memory afterwards,
// so implementations pay exactly one round trip per plan.
type CatalogRepository interface {
	Locations(ctx context.Context) ([]domain.Location, error)
	LocationByID(ctx context.Context, id string) (*domain.Location, error)
	SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error)
	Segments(ctx context.Context) ([]domain.TransportSegment, error)
	SegmentByID(ctx context.Context, id string) (*domain.TransportSegment, error)
	SegmentsBetween(ctx context.Context, from, to string) ([]domain.TransportSegment, error)
	UpsertLocations(ctx context.Context, locations []domain.Location) error
	UpsertSegments(ctx context.Context, segments []domain.TransportSegment) error
}

// PlanEventRepository persists plan-computed events for insights.
type PlanEventRepository interface {
	Insert(ctx context.Context, event *domain.PlanEvent) error
	Stats(ctx context.Context, since time.Time) (*domain.PlanStats, error)
}
