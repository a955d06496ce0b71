package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// GetByMatch returns messages in creation order, optionally only those
	// created after since.
	GetByMatch(ctx context.Context, matchID string, since *time.Time) ([]*domain.Message, error)
	MarkRead(ctx context.Context, matchID, readerID string, at time.Time) (int64, error)
}

type MessageLimitRepository interface {
	Get(ctx context.Context, matchID, userID string) (*domain.MessageLimit, error)
	// Increment adds one to today's counter, restarting it when the stored
	// date is not today, and returns the stored row.
	Increment(ctx context.Context, matchID, userID, today string) (*domain.MessageLimit, error)
}
