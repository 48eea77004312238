package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginWagerTx(ctx context.Context) (repository.WagerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.WagerTx), args.Error(1)
}

func (m *MockRepository) ListUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BetHistoryEntry), args.Error(1)
}

// MockWagerTx
type MockWagerTx struct {
	mock.Mock
}

func (m *MockWagerTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWagerTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWagerTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockWagerTx) GetOutcomeWithMarket(ctx context.Context, outcomeID uuid.UUID) (*domain.Outcome, *domain.Market, error) {
	args := m.Called(ctx, outcomeID)
	var outcome *domain.Outcome
	var market *domain.Market
	if args.Get(0) != nil {
		outcome = args.Get(0).(*domain.Outcome)
	}
	if args.Get(1) != nil {
		market = args.Get(1).(*domain.Market)
	}
	return outcome, market, args.Error(2)
}

func (m *MockWagerTx) DebitUser(ctx context.Context, userID string, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockWagerTx) CreditPool(ctx context.Context, outcomeID uuid.UUID, amount int) (int, error) {
	args := m.Called(ctx, outcomeID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockWagerTx) InsertBet(ctx context.Context, bet *domain.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockWagerTx) ListOutcomes(ctx context.Context, marketID uuid.UUID) ([]domain.Outcome, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Outcome), args.Error(1)
}

// MockInvalidator
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, tag string) {
	m.Called(ctx, tag)
}

// fixedNow pins the service clock for deterministic expiry checks.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
