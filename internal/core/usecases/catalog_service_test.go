package usecases_test

import (
	"context"
	"testing"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/usecases"
)

func TestCatalogService_ListLocations(t *testing.T) {
	svc := usecases.NewCatalogService(fixtureRepo(), nil)

	locations, err := svc.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(locations))
	}
	if locations[0].Name != "Malé" {
		t.Errorf("expected Malé, got %s", locations[0].Name)
	}
}

func TestCatalogService_Search_EmptyQuery(t *testing.T) {
	svc := usecases.NewCatalogService(&mockCatalogRepo{}, nil)
	if _, err := svc.SearchLocations(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestCatalogService_Search_ClampLimit(t *testing.T) {
	called := false
	repo := &mockCatalogRepo{
		searchLocationsFn: func(ctx context.Context, query string, limit int) ([]domain.Location, error) {
			called = true
			if limit != 20 {
				t.Errorf("expected limit clamped to 20, got %d", limit)
			}
			return nil, nil
		},
	}
	svc := usecases.NewCatalogService(repo, nil)
	_, _ = svc.SearchLocations(context.Background(), "maafushi", 999)
	if !called {
		t.Error("repo was not called")
	}
}

func TestCatalogService_ListSegments_PairFilter(t *testing.T) {
	repo := fixtureRepo()
	repo.segmentsBetweenFn = func(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
		if from != "male" || to != "maafushi" {
			t.Errorf("unexpected filter %q → %q", from, to)
		}
		return fixtureSegments()[:1], nil
	}
	svc := usecases.NewCatalogService(repo, nil)

	segments, err := svc.ListSegments(context.Background(), "male", "maafushi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 filtered segment, got %d", len(segments))
	}

	all, err := svc.ListSegments(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected full catalog, got %d", len(all))
	}
}
