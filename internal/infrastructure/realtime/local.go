package realtime

import (
	"context"
	"sync"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

// LocalHub is the single process hub used when Redis is disabled.
type LocalHub struct {
	mu   sync.Mutex
	subs map[string]map[*localSubscription]struct{}
}

func NewLocalHub() *LocalHub {
	return &LocalHub{subs: map[string]map[*localSubscription]struct{}{}}
}

// Publish never blocks: a subscriber with a full buffer misses the message
// and falls back to polling.
func (h *LocalHub) Publish(_ context.Context, message *domain.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[message.MatchID] {
		c := *message
		select {
		case sub.out <- &c:
		default:
		}
	}
	return nil
}

func (h *LocalHub) Subscribe(ctx context.Context, matchID string) (Subscription, error) {
	sub := &localSubscription{hub: h, matchID: matchID, out: make(chan *domain.Message, 16)}

	h.mu.Lock()
	if h.subs[matchID] == nil {
		h.subs[matchID] = map[*localSubscription]struct{}{}
	}
	h.subs[matchID][sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	return sub, nil
}

type localSubscription struct {
	hub     *LocalHub
	matchID string
	out     chan *domain.Message
	once    sync.Once
}

func (s *localSubscription) Messages() <-chan *domain.Message {
	return s.out
}

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs[s.matchID], s)
		if len(s.hub.subs[s.matchID]) == 0 {
			delete(s.hub.subs, s.matchID)
		}
		s.hub.mu.Unlock()
		close(s.out)
	})
	return nil
}
