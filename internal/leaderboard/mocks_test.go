package leaderboard

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) BeginClaimTx(ctx context.Context) (repository.ClaimTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ClaimTx), args.Error(1)
}

func (m *MockRepository) TopByBalance(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// fakeSubscriber hands out a caller-controlled signal channel.
type fakeSubscriber struct {
	ch chan struct{}
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, _ string) (<-chan struct{}, error) {
	return f.ch, nil
}
