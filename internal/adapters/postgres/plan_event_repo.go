package postgres

import (
	"context"
	"time"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// PlanEventRepo implements ports.PlanEventRepository.
type PlanEventRepo struct {
	db *DB
}

// NewPlanEventRepo creates a new PlanEventRepo.
func NewPlanEventRepo(db *DB) *PlanEventRepo {
	return &PlanEventRepo{db: db}
}

// Insert persists one plan event.
func (r *PlanEventRepo) Insert(ctx context.Context, event *domain.PlanEvent) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO plan_events (occurred_at, destinations, preference, found,
		                         via_hub, total_cost_amount, duration_minutes, elapsed_millis)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.Time, event.Destinations, event.Preference, event.Found,
		event.ViaHub, event.TotalCostAmount, event.DurationMinutes, event.ElapsedMillis)
	return err
}

// Stats aggregates plan events recorded since the given time.
func (r *PlanEventRepo) Stats(ctx context.Context, since time.Time) (*domain.PlanStats, error) {
	stats := &domain.PlanStats{ByPreference: map[string]int{}}

	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE found),
		       COUNT(*) FILTER (WHERE NOT found),
		       COUNT(*) FILTER (WHERE via_hub)
		FROM plan_events WHERE occurred_at >= $1
	`, since).Scan(&stats.TotalPlans, &stats.PlansFound, &stats.PlansNoRoute, &stats.HubFallbacks)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT preference, COUNT(*)
		FROM plan_events WHERE occurred_at >= $1
		GROUP BY preference
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pref string
		var count int
		if err := rows.Scan(&pref, &count); err != nil {
			return nil, err
		}
		stats.ByPreference[pref] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Pool.Query(ctx, `
		SELECT dest, COUNT(*) AS n
		FROM plan_events, unnest(destinations) AS dest
		WHERE occurred_at >= $1
		GROUP BY dest
		ORDER BY n DESC, dest
		LIMIT 10
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dc domain.DestCount
		if err := rows.Scan(&dc.Destination, &dc.Count); err != nil {
			return nil, err
		}
		stats.TopDestinations = append(stats.TopDestinations, dc)
	}
	return stats, rows.Err()
}
