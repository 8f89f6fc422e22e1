// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Change topics published after successful commits.
const (
	TopicCategories = "categories"
	TopicLedger     = "ledger"
)

// ChangeNotifier fans out change signals to live subscribers. Signals carry
// no payload; watchers re-query the full result set on each one.
type ChangeNotifier interface {
	// Publish signals that the data behind topic changed.
	Publish(ctx context.Context, topic string) error

	// Subscribe returns a channel that receives a signal per change on the
	// topic. The channel closes when ctx is done. Consecutive signals may be
	// coalesced.
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, error)
}
