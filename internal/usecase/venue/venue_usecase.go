package venue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/gdugdh24/datepoint-backend/pkg/geo"
)

type VenueUseCase struct {
	tx             repository.TxManager
	venueRepo      repository.VenueRepository
	suggestionRepo repository.DateSuggestionRepository
	matchRepo      repository.MatchRepository
	profileRepo    repository.ProfileRepository
	impressions    *ImpressionRecorder
	maxSuggestions int
	log            *slog.Logger
	now            func() time.Time
}

func NewVenueUseCase(
	tx repository.TxManager,
	venueRepo repository.VenueRepository,
	suggestionRepo repository.DateSuggestionRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	impressions *ImpressionRecorder,
	maxSuggestions int,
	log *slog.Logger,
) *VenueUseCase {
	return &VenueUseCase{
		tx:             tx,
		venueRepo:      venueRepo,
		suggestionRepo: suggestionRepo,
		matchRepo:      matchRepo,
		profileRepo:    profileRepo,
		impressions:    impressions,
		maxSuggestions: maxSuggestions,
		log:            log,
		now:            time.Now,
	}
}

// RecommendVenues ranks active venues around the midpoint of the two
// participants of a match.
func (uc *VenueUseCase) RecommendVenues(ctx context.Context, userID, matchID, category string) ([]*RankedVenue, error) {
	if category != "" && !domain.IsVenueCategory(category) {
		return nil, domain.ErrInvalidCategory
	}
	match, err := uc.participantMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	midpoint, err := uc.midpoint(ctx, match)
	if err != nil {
		return nil, err
	}

	venues, err := uc.venueRepo.GetActive(ctx, category)
	if err != nil {
		return nil, domain.Dependency("failed to load venues", err)
	}

	ranked := Rank(venues, midpoint, uc.maxSuggestions)

	ids := make([]string, 0, len(ranked))
	for _, v := range ranked {
		ids = append(ids, v.ID)
	}
	uc.impressions.Record(ctx, ids...)

	return ranked, nil
}

func (uc *VenueUseCase) midpoint(ctx context.Context, match *domain.Match) (geo.Point, error) {
	p1, err := uc.profileRepo.GetByID(ctx, match.User1ID)
	if err != nil {
		return geo.Point{}, domain.Dependency("failed to load profile", err)
	}
	p2, err := uc.profileRepo.GetByID(ctx, match.User2ID)
	if err != nil {
		return geo.Point{}, domain.Dependency("failed to load profile", err)
	}
	if !p1.HasLocation() || !p2.HasLocation() {
		return geo.Point{}, domain.ErrLocationUnavailable
	}
	return geo.Midpoint(*p1.LocationLat, *p1.LocationLng, *p2.LocationLat, *p2.LocationLng), nil
}

// SelectVenue records that the user opened a recommended venue.
func (uc *VenueUseCase) SelectVenue(ctx context.Context, userID, venueID string) (*domain.Venue, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	venue, err := uc.activeVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if err := uc.venueRepo.IncrementCounter(ctx, domain.VenueClicks, venue.ID); err != nil {
		return nil, domain.Dependency("failed to record venue click", err)
	}
	return venue, nil
}

// SubmitDateSuggestion proposes a venue to the other participant. Only one
// suggestion per match can be pending at a time.
func (uc *VenueUseCase) SubmitDateSuggestion(ctx context.Context, userID, matchID, venueID string) (*domain.DateSuggestion, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	venue, err := uc.activeVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	suggestion := &domain.DateSuggestion{
		MatchID:       matchID,
		SuggestedByID: userID,
		VenueID:       venue.ID,
		Status:        domain.SuggestionPending,
	}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		match, err := uc.matchRepo.GetByIDForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if !match.HasUser(userID) {
			return domain.ErrMatchNotFound
		}
		if !match.IsActive() {
			return domain.ErrMatchNotActive
		}

		pending, err := uc.suggestionRepo.HasPending(ctx, matchID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrSuggestionPending
		}

		if err := uc.suggestionRepo.Create(ctx, suggestion); err != nil {
			return err
		}
		return uc.matchRepo.MarkDateSuggested(ctx, matchID, uc.now())
	})
	if err != nil {
		return nil, domain.Dependency("failed to submit date suggestion", err)
	}

	suggestion.Venue = venue
	uc.log.Info("date suggested", "match_id", matchID, "venue_id", venue.ID)
	return suggestion, nil
}

// RespondToDateSuggestion accepts or declines a pending suggestion made by
// the other participant.
func (uc *VenueUseCase) RespondToDateSuggestion(ctx context.Context, userID, suggestionID string, accept bool) (*domain.DateSuggestion, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	status := domain.SuggestionDeclined
	if accept {
		status = domain.SuggestionAccepted
	}

	var answered *domain.DateSuggestion
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		suggestion, err := uc.suggestionRepo.GetByID(ctx, suggestionID)
		if err != nil {
			return err
		}
		match, err := uc.matchRepo.GetByIDForUpdate(ctx, suggestion.MatchID)
		if err != nil {
			return err
		}
		if !match.HasUser(userID) {
			return domain.ErrDateSuggestionNotFound
		}
		if suggestion.SuggestedByID == userID {
			return domain.ErrOwnSuggestion
		}

		answered, err = uc.suggestionRepo.Respond(ctx, suggestion.ID, status, uc.now())
		if err != nil {
			return err
		}
		if !accept {
			return nil
		}

		if err := uc.matchRepo.SetVenueSelected(ctx, match.ID, suggestion.VenueID); err != nil {
			return err
		}
		return uc.venueRepo.IncrementCounter(ctx, domain.VenueDates, suggestion.VenueID)
	})
	if err != nil {
		return nil, domain.Dependency("failed to respond to date suggestion", err)
	}

	uc.log.Info("date suggestion answered", "suggestion_id", suggestionID, "status", status)
	return answered, nil
}

// LatestDateSuggestion returns the most recent suggestion of a match with
// its venue attached.
func (uc *VenueUseCase) LatestDateSuggestion(ctx context.Context, userID, matchID string) (*domain.DateSuggestion, error) {
	if _, err := uc.participantMatch(ctx, userID, matchID); err != nil {
		return nil, err
	}

	suggestion, err := uc.suggestionRepo.GetLatestByMatch(ctx, matchID)
	if err != nil {
		return nil, domain.Dependency("failed to load date suggestion", err)
	}

	venue, err := uc.venueRepo.GetByID(ctx, suggestion.VenueID)
	switch {
	case err == nil:
		suggestion.Venue = venue
	case errors.Is(err, domain.ErrVenueNotFound):
	default:
		return nil, domain.Dependency("failed to load venue", err)
	}
	return suggestion, nil
}

func (uc *VenueUseCase) participantMatch(ctx context.Context, userID, matchID string) (*domain.Match, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, domain.Dependency("failed to load match", err)
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

func (uc *VenueUseCase) activeVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, domain.Dependency("failed to load venue", err)
	}
	if !venue.IsActive {
		return nil, domain.ErrVenueInactive
	}
	return venue, nil
}
