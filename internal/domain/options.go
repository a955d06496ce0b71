package domain

import "slices"

// Allowed values for the categorical profile attributes.
var (
	Genders     = []string{GenderMale, GenderFemale, GenderNonBinary, GenderOther}
	Ethnicities = []string{"asian", "black", "hispanic", "white", "middle_eastern", "native_american", "pacific_islander", "mixed", "other"}
	Religions   = []string{"agnostic", "atheist", "buddhist", "catholic", "christian", "hindu", "jewish", "muslim", "spiritual", "other", "prefer_not_to_say"}
	Offspring   = []string{"has_kids_wants_more", "has_kids_doesnt_want_more", "no_kids_wants_kids", "no_kids_doesnt_want_kids", "not_sure"}
	Frequencies = []string{"never", "rarely", "sometimes", "often", "daily"}
	Diets       = []string{"omnivore", "vegetarian", "vegan", "pescatarian", "keto", "halal", "kosher", "other"}
	Incomes     = []string{"under_25k", "25k_50k", "50k_75k", "75k_100k", "100k_150k", "150k_200k", "over_200k", "prefer_not_to_say"}
)

const (
	MinAge      = 18
	MaxAge      = 99
	MinHeightCm = 120
	MaxHeightCm = 230
	// MaxDistanceMiles is the "anywhere" distance option.
	MaxDistanceMiles = 500
)

// IsOneOf reports whether every value is in options.
func IsOneOf(options []string, values ...string) bool {
	for _, v := range values {
		if !slices.Contains(options, v) {
			return false
		}
	}
	return true
}
