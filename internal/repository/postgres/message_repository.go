package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	conn
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{conn{db: db}}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.q(ctx).QueryRowContext(ctx, query, message.MatchID, message.SenderID, message.Content, message.CreatedAt).
		Scan(&message.ID)
}

func (r *messageRepository) GetByMatch(ctx context.Context, matchID string, since *time.Time) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	if since != nil {
		query := `
			SELECT * FROM messages
			WHERE match_id = $1 AND created_at > $2
			ORDER BY created_at ASC, id ASC
		`
		err := r.q(ctx).SelectContext(ctx, &messages, query, matchID, *since)
		return messages, err
	}

	query := `SELECT * FROM messages WHERE match_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.q(ctx).SelectContext(ctx, &messages, query, matchID)
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, matchID, readerID string, at time.Time) (int64, error) {
	query := `
		UPDATE messages SET read_at = $1
		WHERE match_id = $2 AND sender_id <> $3 AND read_at IS NULL
	`
	return rowsAffected(r.q(ctx).ExecContext(ctx, query, at, matchID, readerID))
}

type messageLimitRepository struct {
	conn
}

func NewMessageLimitRepository(db *sqlx.DB) repository.MessageLimitRepository {
	return &messageLimitRepository{conn{db: db}}
}

func (r *messageLimitRepository) Get(ctx context.Context, matchID, userID string) (*domain.MessageLimit, error) {
	var limit domain.MessageLimit
	query := `
		SELECT match_id, user_id, messages_today, to_char(last_message_date, 'YYYY-MM-DD') AS last_message_date
		FROM message_limits
		WHERE match_id = $1 AND user_id = $2
	`
	if err := r.q(ctx).GetContext(ctx, &limit, query, matchID, userID); err != nil {
		return nil, notFound(err, domain.ErrMessageLimitNotFound)
	}
	return &limit, nil
}

func (r *messageLimitRepository) Increment(ctx context.Context, matchID, userID, today string) (*domain.MessageLimit, error) {
	var limit domain.MessageLimit
	query := `
		INSERT INTO message_limits (match_id, user_id, messages_today, last_message_date)
		VALUES ($1, $2, 1, $3::date)
		ON CONFLICT (match_id, user_id) DO UPDATE SET
			messages_today = CASE
				WHEN message_limits.last_message_date = EXCLUDED.last_message_date
				THEN message_limits.messages_today + 1
				ELSE 1
			END,
			last_message_date = EXCLUDED.last_message_date
		RETURNING match_id, user_id, messages_today, to_char(last_message_date, 'YYYY-MM-DD') AS last_message_date
	`
	if err := r.q(ctx).GetContext(ctx, &limit, query, matchID, userID, today); err != nil {
		return nil, err
	}
	return &limit, nil
}
