package postgres

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	conn
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{conn{db: db}}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, liked)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.q(ctx).QueryRowContext(ctx, query, swipe.SwiperID, swipe.SwipedID, swipe.Liked).
		Scan(&swipe.ID, &swipe.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrSwipeAlreadyExists
	}
	return err
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE swiper_id = $1 AND swiped_id = $2`
	if err := r.q(ctx).GetContext(ctx, &swipe, query, swiperID, swipedID); err != nil {
		return nil, notFound(err, domain.ErrSwipeNotFound)
	}
	return &swipe, nil
}

func (r *swipeRepository) HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error) {
	var liked bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes WHERE swiper_id = $1 AND swiped_id = $2 AND liked = true
		)
	`
	err := r.q(ctx).QueryRowContext(ctx, query, swiperID, swipedID).Scan(&liked)
	return liked, err
}
