package postgres

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type blockRepository struct {
	conn
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{conn{db: db}}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.Block) error {
	query := `
		INSERT INTO blocks (blocker_id, blocked_id)
		VALUES ($1, $2)
		ON CONFLICT (blocker_id, blocked_id) DO UPDATE SET blocker_id = EXCLUDED.blocker_id
		RETURNING id, created_at
	`
	return r.q(ctx).QueryRowContext(ctx, query, block.BlockerID, block.BlockedID).
		Scan(&block.ID, &block.CreatedAt)
}

func (r *blockRepository) IsBlocked(ctx context.Context, user1ID, user2ID string) (bool, error) {
	var blocked bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2) OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	err := r.q(ctx).QueryRowContext(ctx, query, user1ID, user2ID).Scan(&blocked)
	return blocked, err
}

type reportRepository struct {
	conn
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{conn{db: db}}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_id, reported_id, reason, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.q(ctx).QueryRowContext(ctx, query, report.ReporterID, report.ReportedID, report.Reason, report.Description, report.Status).
		Scan(&report.ID, &report.CreatedAt)
}
