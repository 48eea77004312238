package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/leaderboard"
	"github.com/pointsbazaar/market-engine/internal/lifecycle"
	"github.com/pointsbazaar/market-engine/internal/market"
)

// withURLParam attaches a chi route parameter to a test request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest builds a request with a raw JSON body.
func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PlaceWager(ctx context.Context, userID string, outcomeID uuid.UUID, amount int) (*domain.BetReceipt, error) {
	args := m.Called(ctx, userID, outcomeID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BetReceipt), args.Error(1)
}

func (m *MockLedgerService) GetUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BetHistoryEntry), args.Error(1)
}

// MockRewardService
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) Claim(ctx context.Context, userID string) (*domain.ClaimResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimResult), args.Error(1)
}

func (m *MockRewardService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// MockMarketReadService
type MockMarketReadService struct {
	mock.Mock
}

func (m *MockMarketReadService) List(ctx context.Context) ([]market.View, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.View), args.Error(1)
}

func (m *MockMarketReadService) Get(ctx context.Context, marketID uuid.UUID, stake int) (*market.Detail, error) {
	args := m.Called(ctx, marketID, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Detail), args.Error(1)
}

// MockLifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Close(ctx context.Context, marketID uuid.UUID) error {
	args := m.Called(ctx, marketID)
	return args.Error(0)
}

func (m *MockLifecycleService) Resolve(ctx context.Context, marketID uuid.UUID) (*domain.ResolveResult, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolveResult), args.Error(1)
}

func (m *MockLifecycleService) SweepDue(ctx context.Context) (*lifecycle.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lifecycle.SweepResult), args.Error(1)
}

// MockLeaderboardService
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Top(ctx context.Context) ([]leaderboard.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leaderboard.Entry), args.Error(1)
}

func (m *MockLeaderboardService) Watch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
