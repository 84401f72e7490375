package repositories

import (
	"context"
	"strings"
	"time"

	"farewatch/internal/models/entities"

	"gorm.io/gorm"
)

// RouteFilter narrows queries to one (origin, destination) pair. Matching is
// case-insensitive on both airports. A nil filter means the full history.
type RouteFilter struct {
	Origin      string
	Destination string
}

// ObservationRepository owns fare observation durability. The table is
// append-only: Record never updates, nothing deletes.
type ObservationRepository struct {
	db *gorm.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Record validates, normalizes and appends a single observation.
// Airport codes are uppercased at write time; ScrapedAt defaults to now.
func (r *ObservationRepository) Record(ctx context.Context, obs *entities.FareObservation) error {
	if obs.Price <= 0 {
		return &ValidationError{Field: "price", Message: "must be positive"}
	}
	if strings.TrimSpace(obs.Airline) == "" {
		return &ValidationError{Field: "airline", Message: "must not be empty"}
	}
	if strings.TrimSpace(obs.Origin) == "" {
		return &ValidationError{Field: "origin", Message: "must not be empty"}
	}
	if strings.TrimSpace(obs.Destination) == "" {
		return &ValidationError{Field: "destination", Message: "must not be empty"}
	}

	obs.Origin = strings.ToUpper(strings.TrimSpace(obs.Origin))
	obs.Destination = strings.ToUpper(strings.TrimSpace(obs.Destination))
	if obs.ScrapedAt.IsZero() {
		obs.ScrapedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(obs).Error; err != nil {
		return &StorageError{Op: "record", Err: err}
	}
	return nil
}

// QueryHistory returns observations matching the optional route filter,
// ordered by scrape time ascending.
func (r *ObservationRepository) QueryHistory(ctx context.Context, filter *RouteFilter) ([]entities.FareObservation, error) {
	var rows []entities.FareObservation

	q := r.scopedQuery(ctx, filter).Order("scraped_at ASC")
	if err := q.Find(&rows).Error; err != nil {
		return nil, &StorageError{Op: "query_history", Err: err}
	}
	return rows, nil
}

// QueryRecent returns the most recent observations first, capped at limit
// (default 100 when limit <= 0).
func (r *ObservationRepository) QueryRecent(ctx context.Context, filter *RouteFilter, limit int) ([]entities.FareObservation, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []entities.FareObservation
	q := r.scopedQuery(ctx, filter).Order("scraped_at DESC").Limit(limit)
	if err := q.Find(&rows).Error; err != nil {
		return nil, &StorageError{Op: "query_recent", Err: err}
	}
	return rows, nil
}

func (r *ObservationRepository) scopedQuery(ctx context.Context, filter *RouteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entities.FareObservation{})
	if filter != nil {
		q = q.Where("UPPER(origin) = UPPER(?) AND UPPER(destination) = UPPER(?)",
			filter.Origin, filter.Destination)
	}
	return q
}
