// Package events implements the change fanout behind live subscriptions.
package events

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/balance-board/backend/internal/application/adapter"
)

// channelPrefix namespaces the pub/sub channels so several deployments can
// share one Redis.
const channelPrefix = "balanceboard:"

// redisNotifier implements adapter.ChangeNotifier on Redis pub/sub. Signals
// cross process boundaries, so every API instance sees commits made by the
// others.
type redisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a new Redis-backed change notifier.
func NewRedisNotifier(client *redis.Client) adapter.ChangeNotifier {
	return &redisNotifier{
		client: client,
	}
}

// Publish signals a change on the topic.
func (n *redisNotifier) Publish(ctx context.Context, topic string) error {
	return n.client.Publish(ctx, channelPrefix+topic, "1").Err()
}

// Subscribe returns a signal channel for the topic. The subscription and the
// channel are torn down when ctx is done.
func (n *redisNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	pubsub := n.client.Subscribe(ctx, channelPrefix+topic)

	// Force the subscription onto the wire before returning, so a publish
	// issued right after Subscribe is not lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	messages := pubsub.Channel()

	go func() {
		defer close(out)
		defer func() {
			if err := pubsub.Close(); err != nil {
				slog.Warn("failed to close pubsub subscription", "topic", topic, "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				// Coalesce: a signal already pending is enough.
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}
