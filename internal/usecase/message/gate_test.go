package message

import (
	"testing"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

var rules = Rules{InitialMessageLimit: 3, DateSuggestionThreshold: 10}

func TestCanSend(t *testing.T) {
	const today = "2024-06-15"
	m := &domain.Match{User1ID: "a", User2ID: "b"}

	tests := []struct {
		name   string
		limit  *domain.MessageLimit
		bCount int
		want   bool
	}{
		{"no counter yet", nil, 0, true},
		{"under cap", &domain.MessageLimit{MessagesToday: 2, LastMessageDate: today}, 0, true},
		{"at cap", &domain.MessageLimit{MessagesToday: 3, LastMessageDate: today}, 0, false},
		{"stale day resets", &domain.MessageLimit{MessagesToday: 3, LastMessageDate: "2024-06-14"}, 0, true},
		{"established ignores cap", &domain.MessageLimit{MessagesToday: 50, LastMessageDate: today}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := *m
			match.User2MessageCount = tt.bCount
			assert.Equal(t, tt.want, rules.CanSend(&match, tt.limit, "a", today))
		})
	}
}

func TestIsEstablished_OwnMessagesDoNotCount(t *testing.T) {
	m := &domain.Match{User1ID: "a", User2ID: "b", User1MessageCount: 5}
	assert.False(t, IsEstablished(m, "a"))
	assert.True(t, IsEstablished(m, "b"))
	assert.False(t, IsEstablished(m, "stranger"))
}

func TestShouldShowDateSuggestion(t *testing.T) {
	tests := []struct {
		name  string
		match domain.Match
		want  bool
	}{
		{"balanced at threshold", domain.Match{TotalMessages: 10, User1MessageCount: 5, User2MessageCount: 5}, true},
		{"one sided", domain.Match{TotalMessages: 10, User1MessageCount: 9, User2MessageCount: 1}, false},
		{"below threshold", domain.Match{TotalMessages: 9, User1MessageCount: 5, User2MessageCount: 4}, false},
		{"already suggested", domain.Match{TotalMessages: 10, User1MessageCount: 5, User2MessageCount: 5, DateSuggested: true}, false},
		{"well past threshold", domain.Match{TotalMessages: 40, User1MessageCount: 20, User2MessageCount: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.ShouldShowDateSuggestion(&tt.match))
		})
	}
}
