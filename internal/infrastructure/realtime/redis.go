package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisHub publishes messages on the messages:<matchID> channels so every
// API instance can serve the stream.
type RedisHub struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisHub(client *redis.Client, log *slog.Logger) *RedisHub {
	return &RedisHub{client: client, log: log}
}

func (h *RedisHub) Publish(ctx context.Context, message *domain.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return h.client.Publish(ctx, channel(message.MatchID), payload).Err()
}

func (h *RedisHub) Subscribe(ctx context.Context, matchID string) (Subscription, error) {
	pubsub := h.client.Subscribe(ctx, channel(matchID))
	// wait for the subscription to be confirmed before returning
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel(matchID), err)
	}

	sub := &redisSubscription{pubsub: pubsub, out: make(chan *domain.Message, 16)}
	go sub.forward(ctx, h.log)
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	out    chan *domain.Message
}

func (s *redisSubscription) Messages() <-chan *domain.Message {
	return s.out
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}

func (s *redisSubscription) forward(ctx context.Context, log *slog.Logger) {
	defer close(s.out)

	in := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			var message domain.Message
			if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
				log.Warn("dropping malformed realtime payload", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case s.out <- &message:
			case <-ctx.Done():
				return
			}
		}
	}
}
