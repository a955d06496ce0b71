package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type MatchRepository interface {
	// CreateIfAbsent inserts the match unless one already exists for the
	// canonical pair. It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	// GetByIDForUpdate locks the match row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	GetActiveMatches(ctx context.Context, userID string) ([]*domain.Match, error)
	GetConversations(ctx context.Context, userID string) ([]*domain.Match, error)
	CountActive(ctx context.Context, userID string) (int, error)
	// LockPair serializes transactions touching the same unordered pair.
	LockPair(ctx context.Context, user1ID, user2ID string) error
	// LockUser serializes transactions that check one user's active matches.
	LockUser(ctx context.Context, userID string) error
	// TransitionStatus moves the match from one status to another and reports
	// whether the match was in the expected status.
	TransitionStatus(ctx context.Context, id string, from, to domain.MatchStatus) (bool, error)
	// RecordMessage atomically bumps the message counters and preview.
	RecordMessage(ctx context.Context, id, senderID, preview string, at time.Time) (*domain.Match, error)
	MarkDateSuggested(ctx context.Context, id string, at time.Time) error
	SetVenueSelected(ctx context.Context, id, venueID string) error
}
