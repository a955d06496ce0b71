package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `
	id, user1_id, user2_id, status, total_messages,
	user1_message_count, user2_message_count, last_message_at, last_message_preview,
	date_suggested, date_suggestion_sent_at, venue_selected, created_at`

type matchRepository struct {
	conn
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{conn{db: db}}
}

func (r *matchRepository) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	// Ensure user1_id < user2_id for the unique pair constraint
	match.User1ID, match.User2ID = domain.CanonicalPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING ` + matchColumns
	err := r.q(ctx).GetContext(ctx, match, query, match.User1ID, match.User2ID, domain.MatchStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		// Another transaction created the pair first
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	return r.get(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
}

func (r *matchRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Match, error) {
	return r.get(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)
	return r.get(ctx, `SELECT `+matchColumns+` FROM matches WHERE user1_id = $1 AND user2_id = $2`, user1ID, user2ID)
}

func (r *matchRepository) get(ctx context.Context, query string, args ...interface{}) (*domain.Match, error) {
	var match domain.Match
	if err := r.q(ctx).GetContext(ctx, &match, query, args...); err != nil {
		return nil, notFound(err, domain.ErrMatchNotFound)
	}
	return &match, nil
}

func (r *matchRepository) GetActiveMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = 'active'
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC
	`
	err := r.q(ctx).SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) GetConversations(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = 'active' AND total_messages > 0
		ORDER BY last_message_at DESC
	`
	err := r.q(ctx).SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) CountActive(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM matches WHERE (user1_id = $1 OR user2_id = $1) AND status = 'active'`
	err := r.q(ctx).QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *matchRepository) LockPair(ctx context.Context, user1ID, user2ID string) error {
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)
	_, err := r.q(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, user1ID+":"+user2ID)
	return err
}

func (r *matchRepository) LockUser(ctx context.Context, userID string) error {
	_, err := r.q(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "user:"+userID)
	return err
}

func (r *matchRepository) TransitionStatus(ctx context.Context, id string, from, to domain.MatchStatus) (bool, error) {
	query := `UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`
	rows, err := rowsAffected(r.q(ctx).ExecContext(ctx, query, to, id, from))
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *matchRepository) RecordMessage(ctx context.Context, id, senderID, preview string, at time.Time) (*domain.Match, error) {
	query := `
		UPDATE matches
		SET total_messages = total_messages + 1,
		    user1_message_count = user1_message_count + CASE WHEN user1_id = $2 THEN 1 ELSE 0 END,
		    user2_message_count = user2_message_count + CASE WHEN user2_id = $2 THEN 1 ELSE 0 END,
		    last_message_at = $3,
		    last_message_preview = $4
		WHERE id = $1
		RETURNING ` + matchColumns
	return r.get(ctx, query, id, senderID, at, preview)
}

func (r *matchRepository) MarkDateSuggested(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE matches SET date_suggested = true, date_suggestion_sent_at = $1 WHERE id = $2`
	return r.execOne(ctx, query, at, id)
}

func (r *matchRepository) SetVenueSelected(ctx context.Context, id, venueID string) error {
	query := `UPDATE matches SET venue_selected = $1 WHERE id = $2`
	return r.execOne(ctx, query, venueID, id)
}

func (r *matchRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	rows, err := rowsAffected(r.q(ctx).ExecContext(ctx, query, args...))
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
