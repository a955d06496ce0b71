package domain

import "time"

type MatchStatus string

const (
	MatchStatusActive    MatchStatus = "active"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusBlocked   MatchStatus = "blocked"
)

// Match is stored with User1ID < User2ID.
type Match struct {
	ID                   string      `json:"id" db:"id"`
	User1ID              string      `json:"user1_id" db:"user1_id"`
	User2ID              string      `json:"user2_id" db:"user2_id"`
	Status               MatchStatus `json:"status" db:"status"`
	TotalMessages        int         `json:"total_messages" db:"total_messages"`
	User1MessageCount    int         `json:"user1_message_count" db:"user1_message_count"`
	User2MessageCount    int         `json:"user2_message_count" db:"user2_message_count"`
	LastMessageAt        *time.Time  `json:"last_message_at" db:"last_message_at"`
	LastMessagePreview   *string     `json:"last_message_preview" db:"last_message_preview"`
	DateSuggested        bool        `json:"date_suggested" db:"date_suggested"`
	DateSuggestionSentAt *time.Time  `json:"date_suggestion_sent_at" db:"date_suggestion_sent_at"`
	VenueSelected        *string     `json:"venue_selected" db:"venue_selected"`
	CreatedAt            time.Time   `json:"created_at" db:"created_at"`
}

// NewMatch returns a fresh active match for the canonical pair of a and b.
func NewMatch(a, b string) *Match {
	u1, u2 := CanonicalPair(a, b)
	return &Match{
		User1ID: u1,
		User2ID: u2,
		Status:  MatchStatusActive,
	}
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID string) (string, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return "", false
}

// MessageCountOf returns how many messages userID has sent in this match.
func (m *Match) MessageCountOf(userID string) int {
	switch userID {
	case m.User1ID:
		return m.User1MessageCount
	case m.User2ID:
		return m.User2MessageCount
	}
	return 0
}

func (m *Match) IsActive() bool {
	return m.Status == MatchStatusActive
}
