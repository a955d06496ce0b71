package feed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type FeedUseCase struct {
	profileRepo      repository.ProfileRepository
	dealBreakersRepo repository.DealBreakersRepository
	pageSize         int
	log              *slog.Logger
	now              func() time.Time
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	dealBreakersRepo repository.DealBreakersRepository,
	pageSize int,
	log *slog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo:      profileRepo,
		dealBreakersRepo: dealBreakersRepo,
		pageSize:         pageSize,
		log:              log,
		now:              time.Now,
	}
}

// Candidate is a discoverable profile as seen by the viewer.
type Candidate struct {
	*domain.Profile
	Age           int      `json:"age"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	Score         float64  `json:"score"`
}

// Discover returns at most limit eligible candidates for the viewer, best
// first. Calling it again with a larger offset returns the next page. It
// does not write anything.
func (uc *FeedUseCase) Discover(ctx context.Context, viewerID string, limit, offset int) ([]*Candidate, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if limit <= 0 || limit > uc.pageSize {
		limit = uc.pageSize
	}
	offset = max(offset, 0)

	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, domain.Dependency("failed to load viewer profile", err)
	}

	dealBreakers, err := uc.dealBreakersRepo.GetByUserID(ctx, viewerID)
	if errors.Is(err, domain.ErrDealBreakersNotFound) {
		dealBreakers = nil
	} else if err != nil {
		return nil, domain.Dependency("failed to load deal breakers", err)
	}

	query := &domain.DiscoverQuery{Viewer: viewer, DealBreakers: dealBreakers, Now: uc.now()}

	profiles, err := uc.profileRepo.ListDiscoverable(ctx, query, limit, offset)
	if err != nil {
		return nil, domain.Dependency("failed to list profiles", err)
	}

	candidates := make([]*Candidate, 0, len(profiles))
	for _, p := range profiles {
		// the store applied the same filters, the check keeps the guarantee
		// independent of it
		if p.ID == viewerID || !p.IsDiscoverable() {
			continue
		}
		distance, ok := query.Evaluate(p)
		if !ok {
			uc.log.Warn("store returned an ineligible profile", "viewer_id", viewerID, "profile_id", p.ID)
			continue
		}
		candidates = append(candidates, &Candidate{
			Profile:       p,
			Age:           p.Age(query.Now),
			DistanceMiles: distance,
			Score:         query.Score(distance, p.LastActive),
		})
	}
	return candidates, nil
}
