package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type matchRepository struct {
	s *Store
}

func NewMatchRepository(s *Store) repository.MatchRepository {
	return &matchRepository{s: s}
}

func (r *matchRepository) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	defer r.s.lockWrite(ctx)()

	match.User1ID, match.User2ID = domain.CanonicalPair(match.User1ID, match.User2ID)
	for _, m := range r.s.t.matches {
		if m.User1ID == match.User1ID && m.User2ID == match.User2ID {
			return false, nil
		}
	}

	match.ID = newID()
	match.Status = domain.MatchStatusActive
	match.CreatedAt = r.s.now()
	c := *match
	r.s.t.matches[match.ID] = &c
	return true, nil
}

func (r *matchRepository) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.t.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	c := *m
	return &c, nil
}

// GetByIDForUpdate relies on transactions being serialized by the store.
func (r *matchRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Match, error) {
	return r.GetByID(ctx, id)
}

func (r *matchRepository) GetByUsers(_ context.Context, user1ID, user2ID string) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)
	for _, m := range r.s.t.matches {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			c := *m
			return &c, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *matchRepository) GetActiveMatches(_ context.Context, userID string) ([]*domain.Match, error) {
	return r.list(userID, func(m *domain.Match) bool { return true }), nil
}

func (r *matchRepository) GetConversations(_ context.Context, userID string) ([]*domain.Match, error) {
	return r.list(userID, func(m *domain.Match) bool { return m.TotalMessages > 0 }), nil
}

func (r *matchRepository) list(userID string, keep func(m *domain.Match) bool) []*domain.Match {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matches := []*domain.Match{}
	for _, m := range r.s.t.matches {
		if m.HasUser(userID) && m.IsActive() && keep(m) {
			c := *m
			matches = append(matches, &c)
		}
	}

	// last_message_at DESC NULLS LAST, created_at DESC
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch {
		case a.LastMessageAt != nil && b.LastMessageAt != nil && !a.LastMessageAt.Equal(*b.LastMessageAt):
			return a.LastMessageAt.After(*b.LastMessageAt)
		case a.LastMessageAt != nil && b.LastMessageAt == nil:
			return true
		case a.LastMessageAt == nil && b.LastMessageAt != nil:
			return false
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return matches
}

func (r *matchRepository) CountActive(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, m := range r.s.t.matches {
		if m.HasUser(userID) && m.IsActive() {
			count++
		}
	}
	return count, nil
}

// LockPair is a no-op: the store already runs one transaction at a time.
func (r *matchRepository) LockPair(context.Context, string, string) error {
	return nil
}

func (r *matchRepository) LockUser(context.Context, string) error {
	return nil
}

func (r *matchRepository) TransitionStatus(ctx context.Context, id string, from, to domain.MatchStatus) (bool, error) {
	defer r.s.lockWrite(ctx)()

	m, ok := r.s.t.matches[id]
	if !ok || m.Status != from {
		return false, nil
	}
	m.Status = to
	return true, nil
}

func (r *matchRepository) RecordMessage(ctx context.Context, id, senderID, preview string, at time.Time) (*domain.Match, error) {
	defer r.s.lockWrite(ctx)()

	m, ok := r.s.t.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	m.TotalMessages++
	switch senderID {
	case m.User1ID:
		m.User1MessageCount++
	case m.User2ID:
		m.User2MessageCount++
	}
	m.LastMessageAt = &at
	m.LastMessagePreview = &preview

	c := *m
	return &c, nil
}

func (r *matchRepository) MarkDateSuggested(ctx context.Context, id string, at time.Time) error {
	return r.mutate(ctx, id, func(m *domain.Match) {
		m.DateSuggested = true
		m.DateSuggestionSentAt = &at
	})
}

func (r *matchRepository) SetVenueSelected(ctx context.Context, id, venueID string) error {
	return r.mutate(ctx, id, func(m *domain.Match) {
		m.VenueSelected = &venueID
	})
}

func (r *matchRepository) mutate(ctx context.Context, id string, fn func(m *domain.Match)) error {
	defer r.s.lockWrite(ctx)()

	m, ok := r.s.t.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	fn(m)
	return nil
}
