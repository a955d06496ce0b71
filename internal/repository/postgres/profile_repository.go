package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `
	id, email, first_name, birth_date, gender, looking_for, height_cm,
	ethnicity, religion, offspring, smoker, alcohol, drugs, diet,
	occupation, income, bio, things_to_know,
	location_lat, location_lng, location_city, location_state,
	main_photo_url, main_photo_expires_at, photo_urls,
	is_active, is_paused, is_deleted, match_count, last_active,
	created_at, updated_at`

// profileRow mirrors domain.Profile with driver-aware array columns.
type profileRow struct {
	ID                 string         `db:"id"`
	Email              string         `db:"email"`
	FirstName          string         `db:"first_name"`
	BirthDate          time.Time      `db:"birth_date"`
	Gender             string         `db:"gender"`
	LookingFor         pq.StringArray `db:"looking_for"`
	HeightCm           int            `db:"height_cm"`
	Ethnicity          string         `db:"ethnicity"`
	Religion           string         `db:"religion"`
	Offspring          string         `db:"offspring"`
	Smoker             string         `db:"smoker"`
	Alcohol            string         `db:"alcohol"`
	Drugs              string         `db:"drugs"`
	Diet               string         `db:"diet"`
	Occupation         *string        `db:"occupation"`
	Income             *string        `db:"income"`
	Bio                *string        `db:"bio"`
	ThingsToKnow       *string        `db:"things_to_know"`
	LocationLat        *float64       `db:"location_lat"`
	LocationLng        *float64       `db:"location_lng"`
	LocationCity       *string        `db:"location_city"`
	LocationState      *string        `db:"location_state"`
	MainPhotoURL       *string        `db:"main_photo_url"`
	MainPhotoExpiresAt *time.Time     `db:"main_photo_expires_at"`
	PhotoURLs          pq.StringArray `db:"photo_urls"`
	IsActive           bool           `db:"is_active"`
	IsPaused           bool           `db:"is_paused"`
	IsDeleted          bool           `db:"is_deleted"`
	MatchCount         int            `db:"match_count"`
	LastActive         time.Time      `db:"last_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r *profileRow) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:                 r.ID,
		Email:              r.Email,
		FirstName:          r.FirstName,
		BirthDate:          r.BirthDate,
		Gender:             r.Gender,
		LookingFor:         []string(r.LookingFor),
		HeightCm:           r.HeightCm,
		Ethnicity:          r.Ethnicity,
		Religion:           r.Religion,
		Offspring:          r.Offspring,
		Smoker:             r.Smoker,
		Alcohol:            r.Alcohol,
		Drugs:              r.Drugs,
		Diet:               r.Diet,
		Occupation:         r.Occupation,
		Income:             r.Income,
		Bio:                r.Bio,
		ThingsToKnow:       r.ThingsToKnow,
		LocationLat:        r.LocationLat,
		LocationLng:        r.LocationLng,
		LocationCity:       r.LocationCity,
		LocationState:      r.LocationState,
		MainPhotoURL:       r.MainPhotoURL,
		MainPhotoExpiresAt: r.MainPhotoExpiresAt,
		PhotoURLs:          []string(r.PhotoURLs),
		IsActive:           r.IsActive,
		IsPaused:           r.IsPaused,
		IsDeleted:          r.IsDeleted,
		MatchCount:         r.MatchCount,
		LastActive:         r.LastActive,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type profileRepository struct {
	conn
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{conn{db: db}}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, first_name, birth_date, gender, looking_for, height_cm,
			ethnicity, religion, offspring, smoker, alcohol, drugs, diet,
			occupation, income, bio, things_to_know,
			location_lat, location_lng, location_city, location_state,
			photo_urls, is_active, is_paused, is_deleted, match_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING last_active, created_at, updated_at
	`
	err := r.q(ctx).QueryRowContext(
		ctx, query,
		profile.ID, profile.Email, profile.FirstName, profile.BirthDate, profile.Gender,
		pq.Array(profile.LookingFor), profile.HeightCm,
		profile.Ethnicity, profile.Religion, profile.Offspring, profile.Smoker,
		profile.Alcohol, profile.Drugs, profile.Diet,
		profile.Occupation, profile.Income, profile.Bio, profile.ThingsToKnow,
		profile.LocationLat, profile.LocationLng, profile.LocationCity, profile.LocationState,
		pq.Array(nonNil(profile.PhotoURLs)), profile.IsActive, profile.IsPaused, profile.IsDeleted, profile.MatchCount,
	).Scan(&profile.LastActive, &profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileAlreadyExists
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if err := r.q(ctx).GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, domain.ErrProfileNotFound)
	}
	return row.toDomain(), nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, birth_date = $2, gender = $3, looking_for = $4, height_cm = $5,
		    ethnicity = $6, religion = $7, offspring = $8, smoker = $9, alcohol = $10,
		    drugs = $11, diet = $12, occupation = $13, income = $14, bio = $15,
		    things_to_know = $16, updated_at = CURRENT_TIMESTAMP
		WHERE id = $17
		RETURNING updated_at
	`
	err := r.q(ctx).QueryRowContext(
		ctx, query,
		profile.FirstName, profile.BirthDate, profile.Gender, pq.Array(profile.LookingFor), profile.HeightCm,
		profile.Ethnicity, profile.Religion, profile.Offspring, profile.Smoker, profile.Alcohol,
		profile.Drugs, profile.Diet, profile.Occupation, profile.Income, profile.Bio,
		profile.ThingsToKnow, profile.ID,
	).Scan(&profile.UpdatedAt)
	return notFound(err, domain.ErrProfileNotFound)
}

func (r *profileRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64, city, state *string) error {
	query := `
		UPDATE profiles
		SET location_lat = $1, location_lng = $2, location_city = $3, location_state = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`
	return r.execOne(ctx, query, lat, lng, city, state, id)
}

func (r *profileRepository) SetPaused(ctx context.Context, id string, paused bool) error {
	query := `UPDATE profiles SET is_paused = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return r.execOne(ctx, query, paused, id)
}

func (r *profileRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE profiles
		SET is_deleted = true, is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *profileRepository) UpdateMainPhoto(ctx context.Context, id string, url *string, expiresAt *time.Time) error {
	query := `
		UPDATE profiles
		SET main_photo_url = $1, main_photo_expires_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	return r.execOne(ctx, query, url, expiresAt, id)
}

func (r *profileRepository) UpdatePhotoURLs(ctx context.Context, id string, urls []string) error {
	query := `UPDATE profiles SET photo_urls = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return r.execOne(ctx, query, pq.Array(nonNil(urls)), id)
}

func (r *profileRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE profiles SET last_active = $1 WHERE id = $2`
	return r.execOne(ctx, query, at, id)
}

func (r *profileRepository) AddMatchCount(ctx context.Context, id string, delta int) error {
	query := `UPDATE profiles SET match_count = GREATEST(match_count + $1, 0) WHERE id = $2`
	return r.execOne(ctx, query, delta, id)
}

func (r *profileRepository) ListDiscoverable(ctx context.Context, query *domain.DiscoverQuery, limit, offset int) ([]*domain.Profile, error) {
	sqlQuery, args := discoverQuery(query, limit, offset)

	var rows []profileRow
	if err := r.q(ctx).SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toDomain())
	}
	return profiles, nil
}

func (r *profileRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	rows, err := rowsAffected(r.q(ctx).ExecContext(ctx, query, args...))
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
