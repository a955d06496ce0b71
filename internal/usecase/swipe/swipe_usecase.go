package swipe

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type SwipeUseCase struct {
	tx               repository.TxManager
	swipeRepo        repository.SwipeRepository
	matchRepo        repository.MatchRepository
	profileRepo      repository.ProfileRepository
	blockRepo        repository.BlockRepository
	maxActiveMatches int
	log              *slog.Logger
}

func NewSwipeUseCase(
	tx repository.TxManager,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	maxActiveMatches int,
	log *slog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		tx:               tx,
		swipeRepo:        swipeRepo,
		matchRepo:        matchRepo,
		profileRepo:      profileRepo,
		blockRepo:        blockRepo,
		maxActiveMatches: maxActiveMatches,
		log:              log,
	}
}

// SwipeResult represents swipe result
type SwipeResult struct {
	IsMatch bool          `json:"is_match"`
	Swipe   *domain.Swipe `json:"swipe"`
	Match   *domain.Match `json:"match,omitempty"`
}

// SwipeRight records a like and forms a match when the other user already
// liked the swiper.
func (uc *SwipeUseCase) SwipeRight(ctx context.Context, swiperID, swipedID string) (*SwipeResult, error) {
	return uc.swipe(ctx, swiperID, swipedID, true)
}

// SwipeLeft records a pass. It never forms a match.
func (uc *SwipeUseCase) SwipeLeft(ctx context.Context, swiperID, swipedID string) (*SwipeResult, error) {
	return uc.swipe(ctx, swiperID, swipedID, false)
}

func (uc *SwipeUseCase) swipe(ctx context.Context, swiperID, swipedID string, liked bool) (*SwipeResult, error) {
	if swiperID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if swiperID == swipedID {
		return nil, domain.ErrCannotSwipeSelf
	}

	result := &SwipeResult{}
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// a block on the same pair takes this lock too, so the check below
		// cannot go stale before the match is inserted
		if err := uc.matchRepo.LockPair(ctx, swiperID, swipedID); err != nil {
			return err
		}

		target, err := uc.profileRepo.GetByID(ctx, swipedID)
		if err != nil {
			return err
		}
		if !target.IsDiscoverable() {
			return domain.ErrProfileNotFound
		}
		blocked, err := uc.blockRepo.IsBlocked(ctx, swiperID, swipedID)
		if err != nil {
			return err
		}
		if blocked {
			return domain.ErrProfileNotFound
		}

		if liked {
			// likes by one swiper on different targets hold different pair
			// locks; the user lock keeps their cap check serialized
			if err := uc.matchRepo.LockUser(ctx, swiperID); err != nil {
				return err
			}
			active, err := uc.matchRepo.CountActive(ctx, swiperID)
			if err != nil {
				return err
			}
			if active >= uc.maxActiveMatches {
				return domain.ErrMatchLimitReached
			}
		}

		swipe := &domain.Swipe{SwiperID: swiperID, SwipedID: swipedID, Liked: liked}
		if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
			return err
		}
		result.Swipe = swipe

		if !liked {
			return nil
		}

		mutual, err := uc.swipeRepo.HasLiked(ctx, swipedID, swiperID)
		if err != nil || !mutual {
			return err
		}

		match := domain.NewMatch(swiperID, swipedID)
		created, err := uc.matchRepo.CreateIfAbsent(ctx, match)
		if err != nil {
			return err
		}
		if !created {
			// a match row for the pair already exists, counters were
			// adjusted when it was formed
			existing, err := uc.matchRepo.GetByUsers(ctx, swiperID, swipedID)
			if err != nil {
				return err
			}
			result.Match = existing
			return nil
		}

		// canonical order keeps row locks on profiles acquired in one order
		for _, id := range []string{match.User1ID, match.User2ID} {
			if err := uc.profileRepo.AddMatchCount(ctx, id, 1); err != nil {
				return err
			}
		}

		result.IsMatch = true
		result.Match = match
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrMatchLimitReached) {
			uc.log.Info("swipe rejected at match cap", "user_id", swiperID)
		}
		return nil, domain.Dependency("failed to record swipe", err)
	}

	if result.IsMatch {
		uc.log.Info("match formed", "match_id", result.Match.ID, "user1_id", result.Match.User1ID, "user2_id", result.Match.User2ID)
	}
	return result, nil
}
