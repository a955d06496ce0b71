package message

import "github.com/gdugdh24/datepoint-backend/internal/domain"

// Rules are the messaging thresholds.
type Rules struct {
	// InitialMessageLimit caps daily sends until the other party replies.
	InitialMessageLimit int
	// DateSuggestionThreshold is the total message count that unlocks the
	// date prompt; each participant must have sent half of it.
	DateSuggestionThreshold int
}

// IsEstablished reports whether the other participant has sent a message.
func IsEstablished(match *domain.Match, senderID string) bool {
	other, ok := match.GetOtherUserID(senderID)
	if !ok {
		return false
	}
	return match.MessageCountOf(other) > 0
}

// SentToday is the sender's count for the calendar day today. A counter
// stamped with another day counts as zero.
func SentToday(limit *domain.MessageLimit, today string) int {
	if limit == nil || limit.LastMessageDate != today {
		return 0
	}
	return limit.MessagesToday
}

// CanSend applies the daily cap to conversations that are not established.
func (r Rules) CanSend(match *domain.Match, limit *domain.MessageLimit, senderID, today string) bool {
	if IsEstablished(match, senderID) {
		return true
	}
	return SentToday(limit, today) < r.InitialMessageLimit
}

// ShouldShowDateSuggestion is a one-shot trigger: once a date has been
// suggested for the match it never fires again.
func (r Rules) ShouldShowDateSuggestion(match *domain.Match) bool {
	if match.DateSuggested {
		return false
	}
	half := r.DateSuggestionThreshold / 2
	return match.TotalMessages >= r.DateSuggestionThreshold &&
		match.User1MessageCount >= half &&
		match.User2MessageCount >= half
}
