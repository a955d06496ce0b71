package memory

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type swipeRepository struct {
	s *Store
}

func NewSwipeRepository(s *Store) repository.SwipeRepository {
	return &swipeRepository{s: s}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	defer r.s.lockWrite(ctx)()

	key := pairKey{swipe.SwiperID, swipe.SwipedID}
	if _, ok := r.s.t.swipes[key]; ok {
		return domain.ErrSwipeAlreadyExists
	}
	swipe.ID = newID()
	swipe.CreatedAt = r.s.now()
	c := *swipe
	r.s.t.swipes[key] = &c
	return nil
}

func (r *swipeRepository) GetByUsers(_ context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	swipe, ok := r.s.t.swipes[pairKey{swiperID, swipedID}]
	if !ok {
		return nil, domain.ErrSwipeNotFound
	}
	c := *swipe
	return &c, nil
}

func (r *swipeRepository) HasLiked(_ context.Context, swiperID, swipedID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	swipe, ok := r.s.t.swipes[pairKey{swiperID, swipedID}]
	return ok && swipe.Liked, nil
}
