package domain

import "time"

const (
	MaxMessageLength = 2000
	PreviewLength    = 50
)

type Message struct {
	ID        string     `json:"id" db:"id"`
	MatchID   string     `json:"match_id" db:"match_id"`
	SenderID  string     `json:"sender_id" db:"sender_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ReadAt    *time.Time `json:"read_at" db:"read_at"`
}

// Preview is the truncated content shown in conversation lists.
func (m *Message) Preview() string {
	r := []rune(m.Content)
	if len(r) <= PreviewLength {
		return m.Content
	}
	return string(r[:PreviewLength])
}

// MessageLimit is the per (match, user) daily counter. LastMessageDate is a
// calendar date formatted as 2006-01-02.
type MessageLimit struct {
	MatchID         string `json:"match_id" db:"match_id"`
	UserID          string `json:"user_id" db:"user_id"`
	MessagesToday   int    `json:"messages_today" db:"messages_today"`
	LastMessageDate string `json:"last_message_date" db:"last_message_date"`
	CanSend         bool   `json:"can_send" db:"-"`
}

// DateLayout formats the calendar day stored in MessageLimit.
const DateLayout = "2006-01-02"
