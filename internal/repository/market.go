package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/domain"
)

// Market defines the data access required by the lifecycle service and the
// market read surface
type Market interface {
	// GetMarket loads a market with its outcomes
	GetMarket(ctx context.Context, id uuid.UUID) (*domain.Market, error)

	// ListMarkets returns all markets with outcomes, open markets first,
	// then by closing time
	ListMarkets(ctx context.Context) ([]domain.Market, error)

	// CloseMarketIfOpen atomically moves OPEN -> CLOSED. Returns the number
	// of rows changed (0 when the market was not OPEN).
	CloseMarketIfOpen(ctx context.Context, id uuid.UUID) (int64, error)

	// ListExpiredOpen returns ids of OPEN markets whose closing time has
	// passed
	ListExpiredOpen(ctx context.Context, now time.Time) ([]uuid.UUID, error)

	// ListResolvable returns ids of CLOSED markets that have a news summary
	ListResolvable(ctx context.Context) ([]uuid.UUID, error)

	// BeginResolveTx starts the transaction that settles a market
	BeginResolveTx(ctx context.Context) (ResolveTx, error)
}

// ResolveTx is the atomic unit for resolution: the resolution record, the
// RESOLVED status flip and the settlement payouts either all land or none
// do.
type ResolveTx interface {
	Tx

	// GetMarketForUpdate loads a market with outcomes and row-locks it,
	// serializing concurrent resolve attempts
	GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*domain.Market, error)

	// InsertResolution writes the one-and-only resolution record
	InsertResolution(ctx context.Context, res *domain.Resolution) error

	// MarkResolved atomically moves CLOSED -> RESOLVED with the resolved
	// timestamp. Returns rows changed (0 when the market was not CLOSED).
	MarkResolved(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error)

	// ListBetsByOutcome returns every bet staked on an outcome
	ListBetsByOutcome(ctx context.Context, outcomeID uuid.UUID) ([]domain.Bet, error)

	// CreditUser increases a user's balance by the settlement payout
	CreditUser(ctx context.Context, userID string, amount int) error
}
