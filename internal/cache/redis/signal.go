package redis

import (
	"context"

	"github.com/pointsbazaar/market-engine/internal/logger"
)

// Signal implements cache.Invalidator and cache.Subscriber over Redis
// Pub/Sub. Publishes are fire-and-forget: a Redis outage degrades the read
// cache to its TTL but never fails a wager or claim.
type Signal struct {
	client *Client
}

// NewSignal creates a Signal backed by the given Client.
func NewSignal(c *Client) *Signal {
	return &Signal{client: c}
}

// Invalidate publishes an invalidation for the tag. Errors are logged, not
// returned.
func (s *Signal) Invalidate(ctx context.Context, tag string) {
	if err := s.client.rdb.Publish(ctx, tag, "1").Err(); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish cache invalidation", "tag", tag, "error", err)
	}
}

// Subscribe returns a channel receiving a value per invalidation of the tag.
// The subscription and channel are torn down when ctx is cancelled.
func (s *Signal) Subscribe(ctx context.Context, tag string) (<-chan struct{}, error) {
	pubsub := s.client.rdb.Subscribe(ctx, tag)

	// Verify the subscription is established before handing it out.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				// Coalesce bursts: one pending notification is enough.
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}
