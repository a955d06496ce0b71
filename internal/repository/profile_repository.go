package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateLocation(ctx context.Context, id string, lat, lng float64, city, state *string) error
	SetPaused(ctx context.Context, id string, paused bool) error
	SoftDelete(ctx context.Context, id string) error
	UpdateMainPhoto(ctx context.Context, id string, url *string, expiresAt *time.Time) error
	UpdatePhotoURLs(ctx context.Context, id string, urls []string) error
	TouchLastActive(ctx context.Context, id string, at time.Time) error
	// AddMatchCount adds delta to the match counter without going below zero.
	AddMatchCount(ctx context.Context, id string, delta int) error
	// ListDiscoverable pages through the profiles the viewer may see: active,
	// not paused, not deleted, with a main photo, not the viewer, not swiped
	// by the viewer, not blocked in either direction and accepted by
	// query.Evaluate. Rows come best query.Score first, ties by id.
	ListDiscoverable(ctx context.Context, query *domain.DiscoverQuery, limit, offset int) ([]*domain.Profile, error)
}

type DealBreakersRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.DealBreakers, error)
	Upsert(ctx context.Context, dealBreakers *domain.DealBreakers) error
}
