package profile

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type ProfileUseCase struct {
	tx               repository.TxManager
	profileRepo      repository.ProfileRepository
	dealBreakersRepo repository.DealBreakersRepository
	storage          storage.Storage
	photoTTL         time.Duration
	log              *slog.Logger
	now              func() time.Time
}

func NewProfileUseCase(
	tx repository.TxManager,
	profileRepo repository.ProfileRepository,
	dealBreakersRepo repository.DealBreakersRepository,
	photos storage.Storage,
	photoExpirationDays int,
	log *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		tx:               tx,
		profileRepo:      profileRepo,
		dealBreakersRepo: dealBreakersRepo,
		storage:          photos,
		photoTTL:         time.Duration(photoExpirationDays) * 24 * time.Hour,
		log:              log,
		now:              time.Now,
	}
}

// ProfileRequest represents the editable part of a profile
type ProfileRequest struct {
	FirstName    string    `json:"first_name" validate:"required,max=50"`
	BirthDate    time.Time `json:"birth_date" validate:"required"`
	Gender       string    `json:"gender" validate:"required,option=gender"`
	LookingFor   []string  `json:"looking_for" validate:"omitempty,dive,option=gender"`
	HeightCm     int       `json:"height_cm" validate:"omitempty,min=120,max=230"`
	Ethnicity    string    `json:"ethnicity" validate:"omitempty,option=ethnicity"`
	Religion     string    `json:"religion" validate:"omitempty,option=religion"`
	Offspring    string    `json:"offspring" validate:"omitempty,option=offspring"`
	Smoker       string    `json:"smoker" validate:"omitempty,option=frequency"`
	Alcohol      string    `json:"alcohol" validate:"omitempty,option=frequency"`
	Drugs        string    `json:"drugs" validate:"omitempty,option=frequency"`
	Diet         string    `json:"diet" validate:"omitempty,option=diet"`
	Occupation   *string   `json:"occupation" validate:"omitempty,max=100"`
	Income       *string   `json:"income" validate:"omitempty,option=income"`
	Bio          *string   `json:"bio" validate:"omitempty,max=500"`
	ThingsToKnow *string   `json:"things_to_know" validate:"omitempty,max=500"`
}

// LocationRequest represents a location update
type LocationRequest struct {
	Lat   *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng   *float64 `json:"lng" validate:"required,min=-180,max=180"`
	City  *string  `json:"city" validate:"omitempty,max=100"`
	State *string  `json:"state" validate:"omitempty,max=100"`
}

// DealBreakersRequest represents the user's candidate requirements
type DealBreakersRequest struct {
	MinAge                *int     `json:"min_age" validate:"omitempty,min=18,max=99"`
	MaxAge                *int     `json:"max_age" validate:"omitempty,min=18,max=99"`
	MinHeight             *int     `json:"min_height" validate:"omitempty,min=120,max=230"`
	MaxHeight             *int     `json:"max_height" validate:"omitempty,min=120,max=230"`
	MaxDistance           *int     `json:"max_distance" validate:"omitempty,gt=0,max=500"`
	AcceptableEthnicities []string `json:"acceptable_ethnicities" validate:"omitempty,dive,option=ethnicity"`
	AcceptableReligions   []string `json:"acceptable_religions" validate:"omitempty,dive,option=religion"`
	AcceptableOffspring   []string `json:"acceptable_offspring" validate:"omitempty,dive,option=offspring"`
	AcceptableSmoker      []string `json:"acceptable_smoker" validate:"omitempty,dive,option=frequency"`
	AcceptableAlcohol     []string `json:"acceptable_alcohol" validate:"omitempty,dive,option=frequency"`
	AcceptableDrugs       []string `json:"acceptable_drugs" validate:"omitempty,dive,option=frequency"`
	AcceptableDiets       []string `json:"acceptable_diets" validate:"omitempty,dive,option=diet"`
	AcceptableIncome      []string `json:"acceptable_income" validate:"omitempty,dive,option=income"`
}

func (uc *ProfileUseCase) validateProfile(req *ProfileRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	if err := validateStruct(req); err != nil {
		return err
	}
	applicant := domain.Profile{BirthDate: req.BirthDate}
	if applicant.Age(uc.now()) < domain.MinAge {
		return domain.Validation("you must be at least 18 years old")
	}
	return nil
}

func applyProfile(p *domain.Profile, req *ProfileRequest) {
	p.FirstName = req.FirstName
	p.BirthDate = req.BirthDate
	p.Gender = req.Gender
	p.LookingFor = slices.Clone(req.LookingFor)
	p.HeightCm = req.HeightCm
	p.Ethnicity = req.Ethnicity
	p.Religion = req.Religion
	p.Offspring = req.Offspring
	p.Smoker = req.Smoker
	p.Alcohol = req.Alcohol
	p.Drugs = req.Drugs
	p.Diet = req.Diet
	p.Occupation = req.Occupation
	p.Income = req.Income
	p.Bio = req.Bio
	p.ThingsToKnow = req.ThingsToKnow
}

// CreateProfile creates the profile at the end of onboarding together with
// default deal breakers.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID, email string, req *ProfileRequest) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := uc.validateProfile(req); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:        userID,
		Email:     email,
		IsActive:  true,
		PhotoURLs: []string{},
	}
	applyProfile(profile, req)

	maxDistance := domain.DefaultMaxDistanceMiles
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.profileRepo.Create(ctx, profile); err != nil {
			return err
		}
		return uc.dealBreakersRepo.Upsert(ctx, &domain.DealBreakers{
			UserID:      userID,
			MaxDistance: &maxDistance,
		})
	})
	if err != nil {
		return nil, domain.Dependency("failed to create profile", err)
	}

	uc.log.Info("profile created", "user_id", userID)
	return profile, nil
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Dependency("failed to load profile", err)
	}
	return profile, nil
}

// UpdateProfile replaces the editable profile fields
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *ProfileRequest) (*domain.Profile, error) {
	if err := uc.validateProfile(req); err != nil {
		return nil, err
	}
	profile, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfile(profile, req)
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, domain.Dependency("failed to update profile", err)
	}
	profile.LastActive = uc.MarkActive(ctx, userID)
	return profile, nil
}

// MarkActive stamps last_active with the current time and returns it. A user
// who has not finished onboarding has no profile and is skipped.
func (uc *ProfileUseCase) MarkActive(ctx context.Context, userID string) time.Time {
	now := uc.now()
	err := uc.profileRepo.TouchLastActive(ctx, userID, now)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		uc.log.Warn("failed to update last active", "user_id", userID, "error", err)
	}
	return now
}

func (uc *ProfileUseCase) UpdateLocation(ctx context.Context, userID string, req *LocationRequest) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.UpdateLocation(ctx, userID, *req.Lat, *req.Lng, req.City, req.State); err != nil {
		return nil, domain.Dependency("failed to update location", err)
	}
	return uc.GetMyProfile(ctx, userID)
}

// SetPaused hides or shows the profile in discovery. Existing matches stay.
func (uc *ProfileUseCase) SetPaused(ctx context.Context, userID string, paused bool) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := uc.profileRepo.SetPaused(ctx, userID, paused); err != nil {
		return nil, domain.Dependency("failed to update profile", err)
	}
	return uc.GetMyProfile(ctx, userID)
}

// DeleteProfile soft deletes the profile.
func (uc *ProfileUseCase) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if err := uc.profileRepo.SoftDelete(ctx, userID); err != nil {
		return domain.Dependency("failed to delete profile", err)
	}
	uc.log.Info("profile deleted", "user_id", userID)
	return nil
}

// GetDealBreakers returns the stored deal breakers, or the defaults when the
// user never saved any.
func (uc *ProfileUseCase) GetDealBreakers(ctx context.Context, userID string) (*domain.DealBreakers, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	d, err := uc.dealBreakersRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrDealBreakersNotFound) {
		maxDistance := domain.DefaultMaxDistanceMiles
		return &domain.DealBreakers{UserID: userID, MaxDistance: &maxDistance}, nil
	}
	if err != nil {
		return nil, domain.Dependency("failed to load deal breakers", err)
	}
	return d, nil
}

func (uc *ProfileUseCase) UpdateDealBreakers(ctx context.Context, userID string, req *DealBreakersRequest) (*domain.DealBreakers, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := checkRange("age", req.MinAge, req.MaxAge); err != nil {
		return nil, err
	}
	if err := checkRange("height", req.MinHeight, req.MaxHeight); err != nil {
		return nil, err
	}
	if _, err := uc.profileRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.Dependency("failed to load profile", err)
	}

	d := &domain.DealBreakers{
		UserID:                userID,
		MinAge:                req.MinAge,
		MaxAge:                req.MaxAge,
		MinHeight:             req.MinHeight,
		MaxHeight:             req.MaxHeight,
		MaxDistance:           req.MaxDistance,
		AcceptableEthnicities: req.AcceptableEthnicities,
		AcceptableReligions:   req.AcceptableReligions,
		AcceptableOffspring:   req.AcceptableOffspring,
		AcceptableSmoker:      req.AcceptableSmoker,
		AcceptableAlcohol:     req.AcceptableAlcohol,
		AcceptableDrugs:       req.AcceptableDrugs,
		AcceptableDiets:       req.AcceptableDiets,
		AcceptableIncome:      req.AcceptableIncome,
	}
	if err := uc.dealBreakersRepo.Upsert(ctx, d); err != nil {
		return nil, domain.Dependency("failed to save deal breakers", err)
	}
	return d, nil
}
