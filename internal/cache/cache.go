// Package cache defines the invalidation signal emitted when balances
// change. Delivery is best-effort: readers bound staleness with their own
// freshness window and never depend on the signal for correctness.
package cache

import "context"

// ChannelLeaderboard tags invalidations for the ranked-balance read cache.
const ChannelLeaderboard = "leaderboard"

// Invalidator publishes cache-invalidation signals.
type Invalidator interface {
	// Invalidate signals that cached data under the tag is stale.
	// Implementations must not fail the calling operation.
	Invalidate(ctx context.Context, tag string)
}

// Subscriber delivers invalidation signals to read caches.
type Subscriber interface {
	// Subscribe returns a channel that receives a value whenever the tag is
	// invalidated. The channel closes when ctx is cancelled.
	Subscribe(ctx context.Context, tag string) (<-chan struct{}, error)
}

// Noop ignores all signals. Used when Redis is not configured.
type Noop struct{}

func (Noop) Invalidate(context.Context, string) {}

func (Noop) Subscribe(ctx context.Context, _ string) (<-chan struct{}, error) {
	ch := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}
