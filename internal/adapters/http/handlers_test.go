package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/imaahil/dhonipass/internal/adapters/http"
	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/planner"
	"github.com/imaahil/dhonipass/internal/core/usecases"
)

// ---- Mock catalog ----

type mockCatalogRepo struct {
	locations []domain.Location
	segments  []domain.TransportSegment
}

func (m *mockCatalogRepo) Locations(ctx context.Context) ([]domain.Location, error) {
	return m.locations, nil
}
func (m *mockCatalogRepo) LocationByID(ctx context.Context, id string) (*domain.Location, error) {
	for _, l := range m.locations {
		if l.ID == id {
			loc := l
			return &loc, nil
		}
	}
	return nil, nil
}
func (m *mockCatalogRepo) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	var out []domain.Location
	for _, l := range m.locations {
		if strings.Contains(strings.ToLower(l.Name), strings.ToLower(query)) {
			out = append(out, l)
		}
	}
	return out, nil
}
func (m *mockCatalogRepo) Segments(ctx context.Context) ([]domain.TransportSegment, error) {
	return m.segments, nil
}
func (m *mockCatalogRepo) SegmentByID(ctx context.Context, id string) (*domain.TransportSegment, error) {
	for _, s := range m.segments {
		if s.ID == id {
			seg := s
			return &seg, nil
		}
	}
	return nil, nil
}
func (m *mockCatalogRepo) SegmentsBetween(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
	var out []domain.TransportSegment
	for _, s := range m.segments {
		if strings.EqualFold(s.From, from) && strings.EqualFold(s.To, to) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (m *mockCatalogRepo) UpsertLocations(ctx context.Context, locations []domain.Location) error {
	return nil
}
func (m *mockCatalogRepo) UpsertSegments(ctx context.Context, segments []domain.TransportSegment) error {
	return nil
}

func fixtureCatalog() *mockCatalogRepo {
	return &mockCatalogRepo{
		locations: []domain.Location{
			{ID: "male", Name: "Malé", Category: domain.CategoryCity},
			{ID: "maafushi", Name: "Maafushi", Category: domain.CategoryIsland},
			{ID: "gulhi", Name: "Gulhi", Category: domain.CategoryIsland},
		},
		segments: []domain.TransportSegment{
			{
				ID: "mv-1", RouteName: "Malé – Maafushi Ferry", Mode: domain.ModeFerry,
				From: "Malé", To: "Maafushi",
				Duration: "1h 30m", DurationMinutes: 90,
				Price: "$2.50", PriceAmount: 2.5, Capacity: 80,
			},
			{
				ID: "mv-2", RouteName: "Maafushi – Gulhi Dhoni", Mode: domain.ModeDhoni,
				From: "Maafushi", To: "Gulhi",
				Duration: "30m", DurationMinutes: 30,
				Price: "$5.00", PriceAmount: 5, Capacity: 16,
			},
		},
	}
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(repo *mockCatalogRepo) *handler.Dependencies {
	return &handler.Dependencies{
		Planner: usecases.NewPlannerService(repo, nil, nil, planner.DefaultEngine()),
		Catalog: usecases.NewCatalogService(repo, nil),
	}
}

// ---- Catalog handler tests ----

func TestListLocations_Success(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/locations", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Location `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 3 {
		t.Errorf("expected 3 locations, got %d", len(result.Data))
	}
}

func TestListLocations_Pagination(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/locations?offset=1&limit=1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Location `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 1 {
		t.Errorf("expected 1 location in page, got %d", len(result.Data))
	}
	if result.Data[0].ID != "maafushi" {
		t.Errorf("expected maafushi at offset 1, got %s", result.Data[0].ID)
	}
}

func TestSearchLocations_MissingQuery(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/locations/search", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetLocation_NotFound(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/locations/atlantis", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "not_found" {
		t.Errorf("expected not_found code, got %s", apiErr.Code)
	}
}

func TestListSegments_PairFilter(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/segments?from=Maafushi&to=Gulhi", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.TransportSegment `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 1 || result.Data[0].ID != "mv-2" {
		t.Errorf("expected only mv-2, got %+v", result.Data)
	}
}

// ---- Planner handler tests ----

func TestPlanTrip_Success(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/trips/plan?destinations=male,maafushi,gulhi&date=2026-03-01&preference=cost", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var it domain.Itinerary
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		t.Fatal(err)
	}
	if len(it.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(it.Routes))
	}
	if it.Preference != domain.PreferCost {
		t.Errorf("expected cost preference, got %s", it.Preference)
	}
	if !it.StartDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start date %v", it.StartDate)
	}
}

func TestPlanTrip_NoRoute(t *testing.T) {
	repo := fixtureCatalog()
	repo.locations = append(repo.locations, domain.Location{ID: "thinadhoo", Name: "Thinadhoo", Category: domain.CategoryIsland})
	app := setupApp(makeDeps(repo))

	req := httptest.NewRequest("GET", "/v1/trips/plan?destinations=male,thinadhoo", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if !strings.Contains(apiErr.Message, "no routes found") {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestPlanTrip_RequiresTwoDestinations(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/trips/plan?destinations=male", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTripOptions_Success(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/trips/options?destinations=male,maafushi&date=2026-03-01", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Options []domain.Itinerary `json:"options"`
		Count   int                `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Count != 4 {
		t.Errorf("expected 4 options, got %d", result.Count)
	}
}

func TestValidateTrip_ReportsMismatch(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	payload := `{
		"destinations": [{"id":"male","name":"Malé"},{"id":"maafushi","name":"Maafushi"},{"id":"gulhi","name":"Gulhi"}],
		"routes": [{"id":"mv-1","from":"Malé","to":"Maafushi"}],
		"start_date": "2026-03-01T00:00:00Z",
		"end_date": "2026-03-05T00:00:00Z"
	}`
	req := httptest.NewRequest("POST", "/v1/trips/validate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.ValidationResult
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Valid {
		t.Error("expected invalid itinerary")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "route count") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a route count error, got %v", result.Errors)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps(fixtureCatalog()))

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
