package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/imaahil/dhonipass/internal/core/domain"
)

// CatalogRepo implements ports.CatalogRepository with pgx.
type CatalogRepo struct {
	db *DB
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(db *DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const locationColumns = `id, name, category, lat, lon, created_at`

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var l domain.Location
	err := row.Scan(&l.ID, &l.Name, &l.Category, &l.Position.Lat, &l.Position.Lon, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Locations returns the full location catalog in insertion order.
func (r *CatalogRepo) Locations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

// LocationByID returns one location, or nil when it does not exist.
func (r *CatalogRepo) LocationByID(ctx context.Context, id string) (*domain.Location, error) {
	l, err := scanLocation(r.db.Pool.QueryRow(ctx, `
		SELECT `+locationColumns+`
		FROM locations WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

// SearchLocations performs trigram-assisted substring search on names.
func (r *CatalogRepo) SearchLocations(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE name ILIKE '%' || $1 || '%' OR name %> $1
		ORDER BY similarity(name, $1) DESC, name
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

const segmentColumns = `id, route_name, mode, from_name, to_name,
	       duration, duration_minutes, price, price_amount, capacity,
	       COALESCE(amenities, '{}'), COALESCE(operator, ''),
	       COALESCE(departures, '{}'), COALESCE(distance_km, 0), created_at`

func scanSegment(row pgx.Row) (*domain.TransportSegment, error) {
	var s domain.TransportSegment
	err := row.Scan(&s.ID, &s.RouteName, &s.Mode, &s.From, &s.To,
		&s.Duration, &s.DurationMinutes, &s.Price, &s.PriceAmount, &s.Capacity,
		&s.Amenities, &s.Operator, &s.Departures, &s.DistanceKm, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Segments returns every transport segment in insertion order. The planner
// matches over the whole set in memory, so no filtering happens here.
func (r *CatalogRepo) Segments(ctx context.Context) ([]domain.TransportSegment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+segmentColumns+`
		FROM segments ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []domain.TransportSegment
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *s)
	}
	return segments, rows.Err()
}

// SegmentByID returns one segment, or nil when it does not exist.
func (r *CatalogRepo) SegmentByID(ctx context.Context, id string) (*domain.TransportSegment, error) {
	s, err := scanSegment(r.db.Pool.QueryRow(ctx, `
		SELECT `+segmentColumns+`
		FROM segments WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// SegmentsBetween returns segments whose endpoint names contain the given
// fragments, case-insensitively, in either position.
func (r *CatalogRepo) SegmentsBetween(ctx context.Context, from, to string) ([]domain.TransportSegment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+segmentColumns+`
		FROM segments
		WHERE from_name ILIKE '%' || $1 || '%' AND to_name ILIKE '%' || $2 || '%'
		ORDER BY created_at, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []domain.TransportSegment
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *s)
	}
	return segments, rows.Err()
}

// UpsertLocations inserts or updates locations using pgx.Batch.
func (r *CatalogRepo) UpsertLocations(ctx context.Context, locations []domain.Location) error {
	if len(locations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range locations {
		batch.Queue(`
			INSERT INTO locations (id, name, category, lat, lon)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, category = EXCLUDED.category,
			    lat = EXCLUDED.lat, lon = EXCLUDED.lon
		`, l.ID, l.Name, l.Category, l.Position.Lat, l.Position.Lon)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range locations {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// UpsertSegments inserts or updates segments using pgx.Batch.
func (r *CatalogRepo) UpsertSegments(ctx context.Context, segments []domain.TransportSegment) error {
	if len(segments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range segments {
		batch.Queue(`
			INSERT INTO segments (id, route_name, mode, from_name, to_name,
			                      duration, duration_minutes, price, price_amount,
			                      capacity, amenities, operator, departures, distance_km)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE
			SET route_name = EXCLUDED.route_name, mode = EXCLUDED.mode,
			    from_name = EXCLUDED.from_name, to_name = EXCLUDED.to_name,
			    duration = EXCLUDED.duration, duration_minutes = EXCLUDED.duration_minutes,
			    price = EXCLUDED.price, price_amount = EXCLUDED.price_amount,
			    capacity = EXCLUDED.capacity, amenities = EXCLUDED.amenities,
			    operator = EXCLUDED.operator, departures = EXCLUDED.departures,
			    distance_km = EXCLUDED.distance_km
		`, s.ID, s.RouteName, s.Mode, s.From, s.To,
			s.Duration, s.DurationMinutes, s.Price, s.PriceAmount,
			s.Capacity, s.Amenities, s.Operator, s.Departures, s.DistanceKm)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range segments {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}
