package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pointsbazaar/market-engine/internal/cache"
	"github.com/pointsbazaar/market-engine/internal/domain"
)

func rankedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Username: "alice", Balance: 5200, StreakCount: 9},
		{ID: "u2", Username: "bob", Balance: 3100, StreakCount: 2},
		{ID: "u3", Username: "carol", Balance: 900, StreakCount: 0},
	}
}

func TestTop_RanksUsersByBalance(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, cache.Noop{})

	repo.On("TopByBalance", mock.Anything, PageSize).Return(rankedUsers(), nil)

	entries, err := svc.Top(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Rank: 1, UserID: "u1", Username: "alice", Balance: 5200, StreakCount: 9}, entries[0])
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "carol", entries[2].Username)
}

func TestTop_SecondCallServedFromCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, cache.Noop{})

	repo.On("TopByBalance", mock.Anything, PageSize).Return(rankedUsers(), nil).Once()

	_, err := svc.Top(context.Background())
	require.NoError(t, err)
	entries, err := svc.Top(context.Background())
	require.NoError(t, err)

	assert.Len(t, entries, 3)
	repo.AssertNumberOfCalls(t, "TopByBalance", 1)
}

func TestTop_ExpiredEntryRefetches(t *testing.T) {
	repo := new(MockRepository)
	svc := &service{
		repo:       repo,
		subscriber: cache.Noop{},
		lru:        expirable.NewLRU[string, []Entry](1, nil, 10*time.Millisecond),
	}

	repo.On("TopByBalance", mock.Anything, PageSize).Return(rankedUsers(), nil)

	_, err := svc.Top(context.Background())
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = svc.Top(context.Background())
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "TopByBalance", 2)
}

func TestTop_RepositoryErrorNotCached(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, cache.Noop{})

	repo.On("TopByBalance", mock.Anything, PageSize).Return(nil, errors.New("connection refused")).Once()
	repo.On("TopByBalance", mock.Anything, PageSize).Return(rankedUsers(), nil).Once()

	_, err := svc.Top(context.Background())
	require.Error(t, err)

	entries, err := svc.Top(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestWatch_InvalidationDropsCache(t *testing.T) {
	repo := new(MockRepository)
	sub := &fakeSubscriber{ch: make(chan struct{})}
	svc := NewService(repo, sub).(*service)

	repo.On("TopByBalance", mock.Anything, PageSize).Return(rankedUsers(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Watch(ctx)
		close(done)
	}()

	_, err := svc.Top(ctx)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "TopByBalance", 1)

	sub.ch <- struct{}{}
	// The drop happens on the watcher goroutine; poll until it lands.
	require.Eventually(t, func() bool {
		_, cached := svc.lru.Get(cacheKey)
		return !cached
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Top(ctx)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "TopByBalance", 2)

	cancel()
	close(sub.ch)
	<-done
}

func TestNoopSubscriberClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := cache.Noop{}.Subscribe(ctx, cache.ChannelLeaderboard)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("subscription channel did not close on cancel")
	}
}
