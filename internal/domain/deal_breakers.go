package domain

import (
	"slices"
	"time"
)

// DefaultMaxDistanceMiles is applied to the DealBreakers created with a new profile.
const DefaultMaxDistanceMiles = 25

// DealBreakers holds what a user requires from a candidate. A nil or empty
// allow-list means the attribute is not constrained.
type DealBreakers struct {
	ID                    string    `json:"id" db:"id"`
	UserID                string    `json:"user_id" db:"user_id"`
	MinAge                *int      `json:"min_age" db:"min_age"`
	MaxAge                *int      `json:"max_age" db:"max_age"`
	MinHeight             *int      `json:"min_height" db:"min_height"`
	MaxHeight             *int      `json:"max_height" db:"max_height"`
	MaxDistance           *int      `json:"max_distance" db:"max_distance"`
	AcceptableEthnicities []string  `json:"acceptable_ethnicities" db:"acceptable_ethnicities"`
	AcceptableReligions   []string  `json:"acceptable_religions" db:"acceptable_religions"`
	AcceptableOffspring   []string  `json:"acceptable_offspring" db:"acceptable_offspring"`
	AcceptableSmoker      []string  `json:"acceptable_smoker" db:"acceptable_smoker"`
	AcceptableAlcohol     []string  `json:"acceptable_alcohol" db:"acceptable_alcohol"`
	AcceptableDrugs       []string  `json:"acceptable_drugs" db:"acceptable_drugs"`
	AcceptableDiets       []string  `json:"acceptable_diets" db:"acceptable_diets"`
	AcceptableIncome      []string  `json:"acceptable_income" db:"acceptable_income"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// Accepts applies the age, height and allow-list constraints to a candidate.
// Distance is checked separately because it needs the viewer's coordinates.
func (d *DealBreakers) Accepts(candidate *Profile, now time.Time) bool {
	if d == nil {
		return true
	}

	age := candidate.Age(now)
	if d.MinAge != nil && age < *d.MinAge {
		return false
	}
	if d.MaxAge != nil && age > *d.MaxAge {
		return false
	}
	if d.MinHeight != nil && candidate.HeightCm < *d.MinHeight {
		return false
	}
	if d.MaxHeight != nil && candidate.HeightCm > *d.MaxHeight {
		return false
	}

	income := ""
	if candidate.Income != nil {
		income = *candidate.Income
	}

	return allowed(d.AcceptableEthnicities, candidate.Ethnicity) &&
		allowed(d.AcceptableReligions, candidate.Religion) &&
		allowed(d.AcceptableOffspring, candidate.Offspring) &&
		allowed(d.AcceptableSmoker, candidate.Smoker) &&
		allowed(d.AcceptableAlcohol, candidate.Alcohol) &&
		allowed(d.AcceptableDrugs, candidate.Drugs) &&
		allowed(d.AcceptableDiets, candidate.Diet) &&
		allowed(d.AcceptableIncome, income)
}

func allowed(list []string, value string) bool {
	if len(list) == 0 {
		return true
	}
	return slices.Contains(list, value)
}
