package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/domain"
)

// Ledger defines the data access required by the wager service
type Ledger interface {
	// BeginWagerTx starts the serializable transaction a wager executes in
	BeginWagerTx(ctx context.Context) (WagerTx, error)

	// ListUserBets returns a user's bets joined with market context,
	// newest first
	ListUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error)
}

// WagerTx is the atomic unit for placing a wager: balance debit, pool
// credit, and bet insert either all land or none do.
type WagerTx interface {
	Tx

	// GetUserForUpdate loads a user and row-locks their balance for the
	// duration of the transaction
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)

	// GetOutcomeWithMarket loads an outcome together with its owning market,
	// locking the market row against concurrent close or resolve until the
	// transaction ends
	GetOutcomeWithMarket(ctx context.Context, outcomeID uuid.UUID) (*domain.Outcome, *domain.Market, error)

	// DebitUser decreases the user's balance and returns the new balance
	DebitUser(ctx context.Context, userID string, amount int) (int, error)

	// CreditPool increases an outcome's pool total and returns the new total
	CreditPool(ctx context.Context, outcomeID uuid.UUID, amount int) (int, error)

	// InsertBet appends the bet ledger entry
	InsertBet(ctx context.Context, bet *domain.Bet) error

	// ListOutcomes returns all outcomes of a market, creation order
	ListOutcomes(ctx context.Context, marketID uuid.UUID) ([]domain.Outcome, error)
}
