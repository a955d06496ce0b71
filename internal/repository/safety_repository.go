package repository

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type BlockRepository interface {
	// Create is idempotent for an existing (blocker, blocked) pair.
	Create(ctx context.Context, block *domain.Block) error
	IsBlocked(ctx context.Context, user1ID, user2ID string) (bool, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
}
