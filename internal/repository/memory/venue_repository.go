package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type venueRepository struct {
	s *Store
}

func NewVenueRepository(s *Store) repository.VenueRepository {
	return &venueRepository{s: s}
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	defer r.s.lockWrite(ctx)()

	if venue.ID == "" {
		venue.ID = newID()
	}
	venue.CreatedAt = r.s.now()
	r.s.t.venues[venue.ID] = cloneVenue(venue)
	return nil
}

func (r *venueRepository) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.t.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	return cloneVenue(v), nil
}

func (r *venueRepository) GetActive(_ context.Context, category string) ([]*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	venues := []*domain.Venue{}
	for _, v := range r.s.t.venues {
		if !v.IsActive || (category != "" && v.Category != category) {
			continue
		}
		venues = append(venues, cloneVenue(v))
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues, nil
}

func (r *venueRepository) IncrementCounter(ctx context.Context, counter domain.VenueCounter, ids ...string) error {
	defer r.s.lockWrite(ctx)()

	for _, id := range ids {
		v, ok := r.s.t.venues[id]
		if !ok {
			continue
		}
		switch counter {
		case domain.VenueImpressions:
			v.ImpressionCount++
		case domain.VenueClicks:
			v.ClickCount++
		case domain.VenueDates:
			v.DateCount++
		default:
			return domain.ErrInvalidInput
		}
	}
	return nil
}

type dateSuggestionRepository struct {
	s *Store
}

func NewDateSuggestionRepository(s *Store) repository.DateSuggestionRepository {
	return &dateSuggestionRepository{s: s}
}

func (r *dateSuggestionRepository) Create(ctx context.Context, suggestion *domain.DateSuggestion) error {
	defer r.s.lockWrite(ctx)()

	suggestion.ID = newID()
	suggestion.CreatedAt = r.s.now()
	if suggestion.Status == "" {
		suggestion.Status = domain.SuggestionPending
	}
	c := *suggestion
	c.Venue = nil
	r.s.t.suggestions[suggestion.ID] = &c
	return nil
}

func (r *dateSuggestionRepository) GetByID(_ context.Context, id string) (*domain.DateSuggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ds, ok := r.s.t.suggestions[id]
	if !ok {
		return nil, domain.ErrDateSuggestionNotFound
	}
	c := *ds
	return &c, nil
}

func (r *dateSuggestionRepository) GetLatestByMatch(_ context.Context, matchID string) (*domain.DateSuggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var latest *domain.DateSuggestion
	for _, ds := range r.s.t.suggestions {
		if ds.MatchID != matchID {
			continue
		}
		if latest == nil || ds.CreatedAt.After(latest.CreatedAt) ||
			(ds.CreatedAt.Equal(latest.CreatedAt) && ds.ID > latest.ID) {
			latest = ds
		}
	}
	if latest == nil {
		return nil, domain.ErrDateSuggestionNotFound
	}
	c := *latest
	return &c, nil
}

func (r *dateSuggestionRepository) HasPending(_ context.Context, matchID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ds := range r.s.t.suggestions {
		if ds.MatchID == matchID && ds.Status == domain.SuggestionPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *dateSuggestionRepository) Respond(ctx context.Context, id string, status domain.SuggestionStatus, at time.Time) (*domain.DateSuggestion, error) {
	defer r.s.lockWrite(ctx)()

	ds, ok := r.s.t.suggestions[id]
	if !ok {
		return nil, domain.ErrDateSuggestionNotFound
	}
	if ds.Status != domain.SuggestionPending {
		return nil, domain.ErrSuggestionResolved
	}
	ds.Status = status
	ds.RespondedAt = &at

	c := *ds
	return &c, nil
}
