package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	// GetActive lists active venues, restricted to category when it is not empty.
	GetActive(ctx context.Context, category string) ([]*domain.Venue, error)
	IncrementCounter(ctx context.Context, counter domain.VenueCounter, ids ...string) error
}

type DateSuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.DateSuggestion) error
	GetByID(ctx context.Context, id string) (*domain.DateSuggestion, error)
	GetLatestByMatch(ctx context.Context, matchID string) (*domain.DateSuggestion, error)
	HasPending(ctx context.Context, matchID string) (bool, error)
	// Respond answers a pending suggestion. It returns ErrSuggestionResolved
	// when the suggestion is no longer pending.
	Respond(ctx context.Context, id string, status domain.SuggestionStatus, at time.Time) (*domain.DateSuggestion, error)
}
