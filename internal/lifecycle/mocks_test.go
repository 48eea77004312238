package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/oracle"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMarket(ctx context.Context, id uuid.UUID) (*domain.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockRepository) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}

func (m *MockRepository) CloseMarketIfOpen(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepository) ListExpiredOpen(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) ListResolvable(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) BeginResolveTx(ctx context.Context) (repository.ResolveTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ResolveTx), args.Error(1)
}

// MockResolveTx
type MockResolveTx struct {
	mock.Mock
}

func (m *MockResolveTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockResolveTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockResolveTx) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*domain.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockResolveTx) InsertResolution(ctx context.Context, res *domain.Resolution) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockResolveTx) MarkResolved(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, resolvedAt)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockResolveTx) ListBetsByOutcome(ctx context.Context, outcomeID uuid.UUID) ([]domain.Bet, error) {
	args := m.Called(ctx, outcomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

func (m *MockResolveTx) CreditUser(ctx context.Context, userID string, amount int) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// MockResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, req oracle.Request) (*oracle.Decision, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oracle.Decision), args.Error(1)
}

// MockInvalidator
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, tag string) {
	m.Called(ctx, tag)
}
