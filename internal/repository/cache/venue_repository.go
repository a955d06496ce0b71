// Package cache decorates repositories with Redis backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const allCategories = "all"

// venueRepository caches active venue lists per category. Writes through
// Create drop the affected lists; counter increments do not, since ranking
// never reads the counters.
type venueRepository struct {
	next   repository.VenueRepository
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewVenueRepository(next repository.VenueRepository, client *redis.Client, ttl time.Duration, log *slog.Logger) repository.VenueRepository {
	return &venueRepository{next: next, client: client, ttl: ttl, log: log}
}

func activeKey(category string) string {
	if category == "" {
		category = allCategories
	}
	return "venues:active:" + category
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if err := r.next.Create(ctx, venue); err != nil {
		return err
	}
	if err := r.client.Del(ctx, activeKey(""), activeKey(venue.Category)).Err(); err != nil {
		r.log.Warn("failed to invalidate venue cache", "category", venue.Category, "error", err)
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	return r.next.GetByID(ctx, id)
}

func (r *venueRepository) GetActive(ctx context.Context, category string) ([]*domain.Venue, error) {
	key := activeKey(category)

	venues, err := r.get(ctx, key)
	if err == nil {
		return venues, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.log.Warn("venue cache read failed", "key", key, "error", err)
	}

	venues, err = r.next.GetActive(ctx, category)
	if err != nil {
		return nil, err
	}

	if err := r.set(ctx, key, venues); err != nil {
		r.log.Warn("venue cache write failed", "key", key, "error", err)
	}
	return venues, nil
}

func (r *venueRepository) IncrementCounter(ctx context.Context, counter domain.VenueCounter, ids ...string) error {
	return r.next.IncrementCounter(ctx, counter, ids...)
}

func (r *venueRepository) get(ctx context.Context, key string) ([]*domain.Venue, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var venues []*domain.Venue
	if err := json.Unmarshal(val, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return venues, nil
}

func (r *venueRepository) set(ctx context.Context, key string, venues []*domain.Venue) error {
	val, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.client.Set(ctx, key, val, r.ttl).Err()
}
