package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/planner"
	"github.com/imaahil/dhonipass/internal/core/usecases"
)

// --- Mock CatalogRepository ---

type mockCatalogRepo struct {
	locationsFn       func(ctx context.Context) ([]domain.Location, error)
	segmentsFn        func(ctx context.Context) ([]domain.TransportSegment, error)
	locationByIDFn    func(ctx context.Context, id string) (*domain.Location, error)
	searchLocationsFn func(ctx context.Context, query string, limit int) ([]domain.Location, error)
	segmentsBetweenFn func(ctx context.Context, from, to string) ([]domain.TransportSegment, error)
}

func (m *mockCatalogRepo) Locations(ctx context.Context) ([]domain.Location, error) {
	if m.locationsFn != nil {
		return m.locationsFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo) Segments(ctx context.Context) ([]domain.TransportSegment, error) {
	if m.segmentsFn != nil {
		return m.segmentsFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo) LocationByID(ctx context.Context, id string) (*domain.Location, error) {
	if m.locationByIDFn != nil {
		return m.locationByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCatalogRepo) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if m.searchLocationsFn != nil {
		return m.searchLocationsFn(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockCatalogRepo) SegmentByID(ctx context.Context, id string) (*domain.TransportSegment, error) {
	return nil, nil
}

func (m *mockCatalogRepo) SegmentsBetween(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
	if m.segmentsBetweenFn != nil {
		return m.segmentsBetweenFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockCatalogRepo) UpsertLocations(ctx context.Context, locations []domain.Location) error {
	return nil
}

func (m *mockCatalogRepo) UpsertSegments(ctx context.Context, segments []domain.TransportSegment) error {
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	planEvents []*domain.PlanEvent
}

func (m *mockPublisher) PublishPlanComputed(ctx context.Context, event *domain.PlanEvent) error {
	m.planEvents = append(m.planEvents, event)
	return nil
}

func (m *mockPublisher) PublishCatalogUpdated(ctx context.Context, source string) error { return nil }
func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error        { return nil }

// --- Fixtures ---

func fixtureLocations() []domain.Location {
	return []domain.Location{
		{ID: "male", Name: "Malé", Category: domain.CategoryCity},
		{ID: "maafushi-island", Name: "Maafushi Island", Category: domain.CategoryIsland},
		{ID: "thulusdhoo", Name: "Thulusdhoo", Category: domain.CategoryIsland},
	}
}

func fixtureSegments() []domain.TransportSegment {
	return []domain.TransportSegment{
		{ID: "mv-1", From: "Malé", To: "Maafushi", Mode: domain.ModeSpeedboat,
			Duration: "45 minutes", DurationMinutes: 45, Price: "$10", PriceAmount: 10, Capacity: 20},
		{ID: "mv-2", From: "Malé", To: "Maafushi", Mode: domain.ModeFerry,
			Duration: "1h 30m", DurationMinutes: 90, Price: "$5", PriceAmount: 5, Capacity: 30},
	}
}

func fixtureRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		locationsFn: func(ctx context.Context) ([]domain.Location, error) {
			return fixtureLocations(), nil
		},
		segmentsFn: func(ctx context.Context) ([]domain.TransportSegment, error) {
			return fixtureSegments(), nil
		},
	}
}

func testDate() time.Time {
	d, _ := time.Parse("2006-01-02", "2025-06-01")
	return d
}

// --- Tests ---

func TestPlannerService_PlanTrip(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewPlannerService(fixtureRepo(), nil, pub, planner.DefaultEngine())

	it, err := svc.PlanTrip(context.Background(), []string{"male", "maafushi-island"}, testDate(), domain.PreferBalanced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it == nil {
		t.Fatal("expected an itinerary")
	}
	if it.Routes[0].ID != "mv-1" {
		t.Errorf("balanced preference should select mv-1, got %s", it.Routes[0].ID)
	}
	if len(pub.planEvents) != 1 || !pub.planEvents[0].Found {
		t.Errorf("expected one found plan event, got %+v", pub.planEvents)
	}
}

func TestPlannerService_NoRouteIsNilNotError(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewPlannerService(fixtureRepo(), nil, pub, planner.DefaultEngine())

	it, err := svc.PlanTrip(context.Background(), []string{"male", "thulusdhoo"}, testDate(), domain.PreferSpeed)
	if err != nil {
		t.Fatalf("no-route must not be an error, got %v", err)
	}
	if it != nil {
		t.Fatal("expected nil itinerary when no route exists")
	}
	if len(pub.planEvents) != 1 || pub.planEvents[0].Found {
		t.Errorf("expected one not-found plan event, got %+v", pub.planEvents)
	}
}

func TestPlannerService_CatalogFetchError(t *testing.T) {
	repo := &mockCatalogRepo{
		segmentsFn: func(ctx context.Context) ([]domain.TransportSegment, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	svc := usecases.NewPlannerService(repo, nil, nil, planner.DefaultEngine())

	if _, err := svc.PlanTrip(context.Background(), []string{"male", "maafushi-island"}, testDate(), domain.PreferCost); err == nil {
		t.Fatal("expected a catalog fetch error")
	}
}

func TestPlannerService_PlanOptions(t *testing.T) {
	svc := usecases.NewPlannerService(fixtureRepo(), nil, nil, planner.DefaultEngine())

	options, err := svc.PlanOptions(context.Background(), []string{"male", "maafushi-island"}, testDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(options))
	}
	if options[1].Preference != domain.PreferCost || options[1].Routes[0].ID != "mv-2" {
		t.Errorf("cost option should select mv-2, got %+v", options[1].Routes[0].ID)
	}
}

func TestPlannerService_ValidateItinerary(t *testing.T) {
	svc := usecases.NewPlannerService(fixtureRepo(), nil, nil, planner.DefaultEngine())

	it, err := svc.PlanTrip(context.Background(), []string{"male", "maafushi-island"}, testDate(), domain.PreferComfort)
	if err != nil || it == nil {
		t.Fatalf("plan failed: %v", err)
	}
	if res := svc.ValidateItinerary(it); !res.Valid {
		t.Errorf("assembled itinerary failed validation: %v", res.Errors)
	}
}
