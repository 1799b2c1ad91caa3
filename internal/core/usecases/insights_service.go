package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
	"github.com/imaahil/dhonipass/internal/core/ports"
)

// InsightsService records computed plans and aggregates them for the
// marketing dashboard.
type InsightsService struct {
	events ports.PlanEventRepository
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(events ports.PlanEventRepository) *InsightsService {
	return &InsightsService{events: events}
}

// Record persists a single plan event.
func (s *InsightsService) Record(ctx context.Context, event *domain.PlanEvent) error {
	if event == nil {
		return fmt.Errorf("plan event must not be nil")
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	return s.events.Insert(ctx, event)
}

// Stats aggregates plan events over the given window. windowDays is clamped
// to 1–365 and defaults to 30.
func (s *InsightsService) Stats(ctx context.Context, windowDays int) (*domain.PlanStats, error) {
	if windowDays <= 0 || windowDays > 365 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	return s.events.Stats(ctx, since)
}
