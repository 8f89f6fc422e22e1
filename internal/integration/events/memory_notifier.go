// Package events implements the change fanout behind live subscriptions.
package events

import (
	"context"
	"sync"

	"github.com/balance-board/backend/internal/application/adapter"
)

// memoryNotifier implements adapter.ChangeNotifier in process memory. Used
// when no Redis is configured (single-instance deployments) and by tests.
type memoryNotifier struct {
	mu          sync.Mutex
	subscribers map[string][]chan struct{}
}

// NewMemoryNotifier creates a new in-process change notifier.
func NewMemoryNotifier() adapter.ChangeNotifier {
	return &memoryNotifier{
		subscribers: make(map[string][]chan struct{}),
	}
}

// Publish signals every live subscriber of the topic. Signals coalesce: a
// subscriber with one already pending is not signalled again.
func (n *memoryNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subscribers[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe registers a signal channel for the topic, removed when ctx is done.
func (n *memoryNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subscribers[topic] = append(n.subscribers[topic], ch)
	n.mu.Unlock()

	go func() {
		<-ctx.Done()

		n.mu.Lock()
		subs := n.subscribers[topic]
		for i, sub := range subs {
			if sub == ch {
				n.subscribers[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		n.mu.Unlock()

		close(ch)
	}()

	return ch, nil
}
