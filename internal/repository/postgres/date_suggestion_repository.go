package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type dateSuggestionRepository struct {
	conn
}

func NewDateSuggestionRepository(db *sqlx.DB) repository.DateSuggestionRepository {
	return &dateSuggestionRepository{conn{db: db}}
}

func (r *dateSuggestionRepository) Create(ctx context.Context, s *domain.DateSuggestion) error {
	query := `
		INSERT INTO date_suggestions (match_id, suggested_by_id, venue_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.q(ctx).QueryRowContext(ctx, query, s.MatchID, s.SuggestedByID, s.VenueID, s.Status).
		Scan(&s.ID, &s.CreatedAt)
}

func (r *dateSuggestionRepository) GetByID(ctx context.Context, id string) (*domain.DateSuggestion, error) {
	return r.get(ctx, `SELECT * FROM date_suggestions WHERE id = $1`, id)
}

func (r *dateSuggestionRepository) GetLatestByMatch(ctx context.Context, matchID string) (*domain.DateSuggestion, error) {
	query := `
		SELECT * FROM date_suggestions
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.get(ctx, query, matchID)
}

func (r *dateSuggestionRepository) HasPending(ctx context.Context, matchID string) (bool, error) {
	var pending bool
	query := `SELECT EXISTS (SELECT 1 FROM date_suggestions WHERE match_id = $1 AND status = 'pending')`
	err := r.q(ctx).QueryRowContext(ctx, query, matchID).Scan(&pending)
	return pending, err
}

func (r *dateSuggestionRepository) Respond(ctx context.Context, id string, status domain.SuggestionStatus, at time.Time) (*domain.DateSuggestion, error) {
	query := `
		UPDATE date_suggestions
		SET status = $1, responded_at = $2
		WHERE id = $3 AND status = 'pending'
		RETURNING *
	`
	suggestion, err := r.get(ctx, query, status, at, id)
	if err == domain.ErrDateSuggestionNotFound {
		return nil, domain.ErrSuggestionResolved
	}
	return suggestion, err
}

func (r *dateSuggestionRepository) get(ctx context.Context, query string, args ...interface{}) (*domain.DateSuggestion, error) {
	var s domain.DateSuggestion
	if err := r.q(ctx).GetContext(ctx, &s, query, args...); err != nil {
		return nil, notFound(err, domain.ErrDateSuggestionNotFound)
	}
	return &s, nil
}
