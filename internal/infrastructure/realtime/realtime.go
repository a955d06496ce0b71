// Package realtime fans newly sent messages out to the participants
// subscribed to a match.
package realtime

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

// Subscription delivers messages until Close is called or the context used
// to subscribe is done.
type Subscription interface {
	Messages() <-chan *domain.Message
	Close() error
}

type Hub interface {
	Publish(ctx context.Context, message *domain.Message) error
	Subscribe(ctx context.Context, matchID string) (Subscription, error)
}

func channel(matchID string) string {
	return "messages:" + matchID
}
