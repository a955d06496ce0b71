package repository

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, swiperID, swipedID string) (*domain.Swipe, error)
	HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error)
}
