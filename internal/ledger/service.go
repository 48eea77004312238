// Package ledger executes wager placement as a single atomic
// balance-transfer: the user's balance, the outcome pool, and the bet record
// move together or not at all.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/cache"
	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/metrics"
	"github.com/pointsbazaar/market-engine/internal/pricing"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// Service defines the interface for wager operations
type Service interface {
	PlaceWager(ctx context.Context, userID string, outcomeID uuid.UUID, amount int) (*domain.BetReceipt, error)
	GetUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error)
}

type service struct {
	repo        repository.Ledger
	invalidator cache.Invalidator
	now         func() time.Time
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, invalidator cache.Invalidator) Service {
	return &service{
		repo:        repo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// PlaceWager stakes amount points from the user on the outcome. All
// preconditions are checked inside the transaction so two concurrent wagers
// by the same user cannot both pass the balance check; the user row lock
// serializes them.
func (s *service) PlaceWager(ctx context.Context, userID string, outcomeID uuid.UUID, amount int) (*domain.BetReceipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceWagerCalled, "user_id", userID, "outcome_id", outcomeID, "amount", amount)

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	tx, err := s.repo.BeginWagerTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	receipt, err := s.placeWagerInTx(ctx, tx, userID, outcomeID, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransactionFailed, ErrContextFailedToCommit, err)
	}

	metrics.WagersPlaced.Inc()
	metrics.PointsStaked.Add(float64(amount))

	// Balances changed; nudge the leaderboard cache. Best-effort only.
	s.invalidator.Invalidate(ctx, cache.ChannelLeaderboard)

	log.Info(LogMsgWagerPlaced,
		"user_id", userID,
		"bet_id", receipt.BetID,
		"new_balance", receipt.NewBalance,
		"outcome_pool", receipt.OutcomePool)

	return receipt, nil
}

// placeWagerInTx runs every precondition and mutation inside the open
// transaction.
func (s *service) placeWagerInTx(ctx context.Context, tx repository.WagerTx, userID string, outcomeID uuid.UUID, amount int) (*domain.BetReceipt, error) {
	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransactionFailed, ErrContextFailedToLoadUser, err)
	}

	outcome, market, err := tx.GetOutcomeWithMarket(ctx, outcomeID)
	if err != nil {
		if errors.Is(err, domain.ErrOutcomeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	if market.Status != domain.MarketStatusOpen {
		return nil, fmt.Errorf("%w: status %s", domain.ErrMarketNotOpen, market.Status)
	}
	if !s.now().Before(market.ClosesAt) {
		return nil, fmt.Errorf("%w: closed at %s", domain.ErrMarketExpired, market.ClosesAt.Format(time.RFC3339))
	}

	if user.Balance < amount {
		return nil, fmt.Errorf("%w: balance %d, wanted %d", domain.ErrInsufficientBalance, user.Balance, amount)
	}

	newBalance, err := tx.DebitUser(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransactionFailed, ErrContextFailedToDebit, err)
	}

	newPool, err := tx.CreditPool(ctx, outcomeID, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransactionFailed, ErrContextFailedToCredit, err)
	}

	bet := &domain.Bet{
		ID:        uuid.New(),
		UserID:    userID,
		OutcomeID: outcomeID,
		Points:    amount,
		CreatedAt: s.now(),
	}
	if err := tx.InsertBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransactionFailed, ErrContextFailedToInsert, err)
	}

	// Quote the post-wager price from the same pool state the transaction
	// is writing, so the receipt matches what the next reader computes.
	outcomes, err := tx.ListOutcomes(ctx, outcome.MarketID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	price, _ := pricing.PriceFor(outcomes, outcomeID)

	return &domain.BetReceipt{
		BetID:        bet.ID,
		NewBalance:   newBalance,
		OutcomePool:  newPool,
		ImpliedPrice: price,
	}, nil
}

// GetUserBets returns a user's wager history, newest first.
func (s *service) GetUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	bets, err := s.repo.ListUserBets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bets: %w", err)
	}
	return bets, nil
}
