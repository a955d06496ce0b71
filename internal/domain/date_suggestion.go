package domain

import "time"

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionDeclined SuggestionStatus = "declined"
)

type DateSuggestion struct {
	ID            string           `json:"id" db:"id"`
	MatchID       string           `json:"match_id" db:"match_id"`
	SuggestedByID string           `json:"suggested_by_id" db:"suggested_by_id"`
	VenueID       string           `json:"venue_id" db:"venue_id"`
	Status        SuggestionStatus `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	RespondedAt   *time.Time       `json:"responded_at" db:"responded_at"`
	Venue         *Venue           `json:"venue,omitempty" db:"-"`
}
