package memory

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type messageRepository struct {
	s *Store
}

func NewMessageRepository(s *Store) repository.MessageRepository {
	return &messageRepository{s: s}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	defer r.s.lockWrite(ctx)()

	message.ID = newID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = r.s.now()
	}
	c := *message
	r.s.t.messages = append(r.s.t.messages, &c)
	return nil
}

func (r *messageRepository) GetByMatch(_ context.Context, matchID string, since *time.Time) ([]*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	messages := []*domain.Message{}
	for _, m := range r.s.t.messages {
		if m.MatchID != matchID {
			continue
		}
		if since != nil && !m.CreatedAt.After(*since) {
			continue
		}
		c := *m
		messages = append(messages, &c)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, matchID, readerID string, at time.Time) (int64, error) {
	defer r.s.lockWrite(ctx)()

	var marked int64
	for _, m := range r.s.t.messages {
		if m.MatchID == matchID && m.SenderID != readerID && m.ReadAt == nil {
			readAt := at
			m.ReadAt = &readAt
			marked++
		}
	}
	return marked, nil
}

type messageLimitRepository struct {
	s *Store
}

func NewMessageLimitRepository(s *Store) repository.MessageLimitRepository {
	return &messageLimitRepository{s: s}
}

func (r *messageLimitRepository) Get(_ context.Context, matchID, userID string) (*domain.MessageLimit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.t.limits[pairKey{matchID, userID}]
	if !ok {
		return nil, domain.ErrMessageLimitNotFound
	}
	c := *l
	return &c, nil
}

func (r *messageLimitRepository) Increment(ctx context.Context, matchID, userID, today string) (*domain.MessageLimit, error) {
	defer r.s.lockWrite(ctx)()

	key := pairKey{matchID, userID}
	l, ok := r.s.t.limits[key]
	if !ok {
		l = &domain.MessageLimit{MatchID: matchID, UserID: userID}
		r.s.t.limits[key] = l
	}
	if l.LastMessageDate == today {
		l.MessagesToday++
	} else {
		l.MessagesToday = 1
		l.LastMessageDate = today
	}

	c := *l
	return &c, nil
}
