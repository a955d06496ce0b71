package domain

import (
	"slices"
	"time"
)

var VenueCategories = []string{
	"indian", "thai", "french", "korean", "japanese", "italian",
	"mexican", "american", "chinese", "mediterranean", "vietnamese",
	"bar", "coffee", "activity", "outdoor", "entertainment",
}

func IsVenueCategory(category string) bool {
	return slices.Contains(VenueCategories, category)
}

type Venue struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Description        *string   `json:"description" db:"description"`
	Category           string    `json:"category" db:"category"`
	Address            string    `json:"address" db:"address"`
	City               string    `json:"city" db:"city"`
	State              string    `json:"state" db:"state"`
	ZipCode            string    `json:"zip_code" db:"zip_code"`
	Lat                float64   `json:"lat" db:"lat"`
	Lng                float64   `json:"lng" db:"lng"`
	PartnershipSlot    int       `json:"partnership_slot" db:"partnership_slot"`
	PaymentTier        string    `json:"payment_tier" db:"payment_tier"`
	ServiceRadiusMiles float64   `json:"service_radius_miles" db:"service_radius_miles"`
	PhotoURLs          []string  `json:"photo_urls" db:"photo_urls"`
	MenuURL            *string   `json:"menu_url" db:"menu_url"`
	WebsiteURL         *string   `json:"website_url" db:"website_url"`
	Phone              *string   `json:"phone" db:"phone"`
	ImpressionCount    int       `json:"impression_count" db:"impression_count"`
	ClickCount         int       `json:"click_count" db:"click_count"`
	DateCount          int       `json:"date_count" db:"date_count"`
	IsActive           bool      `json:"is_active" db:"is_active"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// VenueCounter names the venue counters that can be incremented.
type VenueCounter string

const (
	VenueImpressions VenueCounter = "impression_count"
	VenueClicks      VenueCounter = "click_count"
	VenueDates       VenueCounter = "date_count"
)
