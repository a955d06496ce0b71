package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type profileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) repository.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.t.profiles[profile.ID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	now := r.s.now()
	profile.LastActive = now
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.PhotoURLs == nil {
		profile.PhotoURLs = []string{}
	}
	r.s.t.profiles[profile.ID] = cloneProfile(profile)
	return nil
}

func (r *profileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.t.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.mutate(ctx, profile.ID, func(p *domain.Profile) {
		p.FirstName = profile.FirstName
		p.BirthDate = profile.BirthDate
		p.Gender = profile.Gender
		p.LookingFor = slices.Clone(profile.LookingFor)
		p.HeightCm = profile.HeightCm
		p.Ethnicity = profile.Ethnicity
		p.Religion = profile.Religion
		p.Offspring = profile.Offspring
		p.Smoker = profile.Smoker
		p.Alcohol = profile.Alcohol
		p.Drugs = profile.Drugs
		p.Diet = profile.Diet
		p.Occupation = profile.Occupation
		p.Income = profile.Income
		p.Bio = profile.Bio
		p.ThingsToKnow = profile.ThingsToKnow
		profile.UpdatedAt = p.UpdatedAt
	})
}

func (r *profileRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64, city, state *string) error {
	return r.mutate(ctx, id, func(p *domain.Profile) {
		p.LocationLat = &lat
		p.LocationLng = &lng
		p.LocationCity = city
		p.LocationState = state
	})
}

func (r *profileRepository) SetPaused(ctx context.Context, id string, paused bool) error {
	return r.mutate(ctx, id, func(p *domain.Profile) {
		p.IsPaused = paused
	})
}

func (r *profileRepository) SoftDelete(ctx context.Context, id string) error {
	return r.mutate(ctx, id, func(p *domain.Profile) {
		p.IsDeleted = true
		p.IsActive = false
	})
}

func (r *profileRepository) UpdateMainPhoto(ctx context.Context, id string, url *string, expiresAt *time.Time) error {
	return r.mutate(ctx, id, func(p *domain.Profile) {
		p.MainPhotoURL = url
		p.MainPhotoExpiresAt = expiresAt
	})
}

func (r *profileRepository) UpdatePhotoURLs(ctx context.Context, id string, urls []string) error {
	return r.mutate(ctx, id, func(p *domain.Profile) {
		p.PhotoURLs = slices.Clone(urls)
		if p.PhotoURLs == nil {
			p.PhotoURLs = []string{}
		}
	})
}

func (r *profileRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	defer r.s.lockWrite(ctx)()

	p, ok := r.s.t.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.LastActive = at
	return nil
}

func (r *profileRepository) AddMatchCount(ctx context.Context, id string, delta int) error {
	defer r.s.lockWrite(ctx)()

	p, ok := r.s.t.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.MatchCount = max(p.MatchCount+delta, 0)
	return nil
}

func (r *profileRepository) ListDiscoverable(_ context.Context, query *domain.DiscoverQuery, limit, offset int) ([]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type ranked struct {
		p     *domain.Profile
		score float64
	}

	viewerID := query.Viewer.ID
	var candidates []ranked
	for id, p := range r.s.t.profiles {
		if id == viewerID || !p.IsDiscoverable() {
			continue
		}
		if _, swiped := r.s.t.swipes[pairKey{viewerID, id}]; swiped {
			continue
		}
		if r.s.blockedLocked(viewerID, id) {
			continue
		}
		distance, ok := query.Evaluate(p)
		if !ok {
			continue
		}
		candidates = append(candidates, ranked{p: p, score: query.Score(distance, p.LastActive)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].p.ID < candidates[j].p.ID
	})

	if offset >= len(candidates) {
		return []*domain.Profile{}, nil
	}
	end := min(offset+limit, len(candidates))

	result := make([]*domain.Profile, 0, end-offset)
	for _, c := range candidates[offset:end] {
		result = append(result, cloneProfile(c.p))
	}
	return result, nil
}

func (r *profileRepository) mutate(ctx context.Context, id string, fn func(p *domain.Profile)) error {
	defer r.s.lockWrite(ctx)()

	p, ok := r.s.t.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.UpdatedAt = r.s.now()
	fn(p)
	return nil
}

type dealBreakersRepository struct {
	s *Store
}

func NewDealBreakersRepository(s *Store) repository.DealBreakersRepository {
	return &dealBreakersRepository{s: s}
}

func (r *dealBreakersRepository) GetByUserID(_ context.Context, userID string) (*domain.DealBreakers, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.t.dealBreakers[userID]
	if !ok {
		return nil, domain.ErrDealBreakersNotFound
	}
	return cloneDealBreakers(d), nil
}

func (r *dealBreakersRepository) Upsert(ctx context.Context, d *domain.DealBreakers) error {
	defer r.s.lockWrite(ctx)()

	if existing, ok := r.s.t.dealBreakers[d.UserID]; ok {
		d.ID = existing.ID
	} else {
		d.ID = newID()
	}
	d.UpdatedAt = r.s.now()
	r.s.t.dealBreakers[d.UserID] = cloneDealBreakers(d)
	return nil
}
