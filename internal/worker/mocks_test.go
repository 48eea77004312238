package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/lifecycle"
)

type mockLifecycleService struct {
	mock.Mock
}

func (m *mockLifecycleService) Close(ctx context.Context, marketID uuid.UUID) error {
	args := m.Called(ctx, marketID)
	return args.Error(0)
}

func (m *mockLifecycleService) Resolve(ctx context.Context, marketID uuid.UUID) (*domain.ResolveResult, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolveResult), args.Error(1)
}

func (m *mockLifecycleService) SweepDue(ctx context.Context) (*lifecycle.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lifecycle.SweepResult), args.Error(1)
}
