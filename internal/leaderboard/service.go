// Package leaderboard serves the ranked-balance read surface. Rankings are
// cached in-process with a fixed freshness window; balance-changing services
// publish invalidation signals that drop the cache early, but staleness is
// bounded by the TTL alone so a lost signal is harmless.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pointsbazaar/market-engine/internal/cache"
	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// Entry is one ranked row.
type Entry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Balance     int    `json:"balance"`
	StreakCount int    `json:"streak_count"`
}

// Service defines the interface for leaderboard reads
type Service interface {
	// Top returns up to PageSize users ranked by balance descending.
	Top(ctx context.Context) ([]Entry, error)

	// Watch consumes invalidation signals until ctx is cancelled, dropping
	// the cached ranking whenever one arrives.
	Watch(ctx context.Context) error
}

type service struct {
	repo       repository.User
	subscriber cache.Subscriber
	lru        *expirable.LRU[string, []Entry]
}

// NewService creates a new leaderboard service
func NewService(repo repository.User, subscriber cache.Subscriber) Service {
	return &service{
		repo:       repo,
		subscriber: subscriber,
		lru:        expirable.NewLRU[string, []Entry](1, nil, CacheTTL),
	}
}

func (s *service) Top(ctx context.Context) ([]Entry, error) {
	if entries, ok := s.lru.Get(cacheKey); ok {
		return entries, nil
	}

	users, err := s.repo.TopByBalance(ctx, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := rank(users)
	s.lru.Add(cacheKey, entries)
	logger.FromContext(ctx).Debug(LogMsgRefreshed, "entries", len(entries))

	return entries, nil
}

func (s *service) Watch(ctx context.Context) error {
	signals, err := s.subscriber.Subscribe(ctx, cache.ChannelLeaderboard)
	if err != nil {
		return fmt.Errorf("failed to subscribe to invalidations: %w", err)
	}

	log := logger.FromContext(ctx)
	for range signals {
		s.lru.Remove(cacheKey)
		log.Debug(LogMsgCacheDropped)
	}
	return ctx.Err()
}

func rank(users []domain.User) []Entry {
	entries := make([]Entry, len(users))
	for i, u := range users {
		entries[i] = Entry{
			Rank:        i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			Balance:     u.Balance,
			StreakCount: u.StreakCount,
		}
	}
	return entries
}
