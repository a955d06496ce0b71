package domain

import "time"

const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonBinary = "non-binary"
	GenderOther     = "other"
)

// MaxGalleryPhotos is the number of additional photo slots next to the main photo.
const MaxGalleryPhotos = 9

type Profile struct {
	ID                 string     `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	FirstName          string     `json:"first_name" db:"first_name"`
	BirthDate          time.Time  `json:"birth_date" db:"birth_date"`
	Gender             string     `json:"gender" db:"gender"`
	LookingFor         []string   `json:"looking_for" db:"looking_for"`
	HeightCm           int        `json:"height_cm" db:"height_cm"`
	Ethnicity          string     `json:"ethnicity" db:"ethnicity"`
	Religion           string     `json:"religion" db:"religion"`
	Offspring          string     `json:"offspring" db:"offspring"`
	Smoker             string     `json:"smoker" db:"smoker"`
	Alcohol            string     `json:"alcohol" db:"alcohol"`
	Drugs              string     `json:"drugs" db:"drugs"`
	Diet               string     `json:"diet" db:"diet"`
	Occupation         *string    `json:"occupation" db:"occupation"`
	Income             *string    `json:"income" db:"income"`
	Bio                *string    `json:"bio" db:"bio"`
	ThingsToKnow       *string    `json:"things_to_know" db:"things_to_know"`
	LocationLat        *float64   `json:"location_lat" db:"location_lat"`
	LocationLng        *float64   `json:"location_lng" db:"location_lng"`
	LocationCity       *string    `json:"location_city" db:"location_city"`
	LocationState      *string    `json:"location_state" db:"location_state"`
	MainPhotoURL       *string    `json:"main_photo_url" db:"main_photo_url"`
	MainPhotoExpiresAt *time.Time `json:"main_photo_expires_at" db:"main_photo_expires_at"`
	PhotoURLs          []string   `json:"photo_urls" db:"photo_urls"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	IsPaused           bool       `json:"is_paused" db:"is_paused"`
	IsDeleted          bool       `json:"is_deleted" db:"is_deleted"`
	MatchCount         int        `json:"match_count" db:"match_count"`
	LastActive         time.Time  `json:"last_active" db:"last_active"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// Age returns the age in whole years on the calendar day of now.
func (p *Profile) Age(now time.Time) int {
	y1, m1, d1 := p.BirthDate.Date()
	y2, m2, d2 := now.Date()
	age := y2 - y1
	if m2 < m1 || (m2 == m1 && d2 < d1) {
		age--
	}
	return age
}

// IsDiscoverable reports whether the profile may be shown to other users.
func (p *Profile) IsDiscoverable() bool {
	return p.IsActive && !p.IsPaused && !p.IsDeleted && p.MainPhotoURL != nil && *p.MainPhotoURL != ""
}

// HasLocation reports whether both coordinates are set.
func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLng != nil
}

// Seeks reports whether p is looking for someone of the given gender.
// An empty list or "other" means everyone.
func (p *Profile) Seeks(gender string) bool {
	if len(p.LookingFor) == 0 {
		return true
	}
	for _, g := range p.LookingFor {
		if g == GenderOther || g == gender {
			return true
		}
	}
	return false
}
