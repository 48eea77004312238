// Package lifecycle drives a market through OPEN -> CLOSED -> RESOLVED and
// settles winning bets when it resolves. The progression is monotone: no
// transition ever runs backwards.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pointsbazaar/market-engine/internal/cache"
	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/metrics"
	"github.com/pointsbazaar/market-engine/internal/oracle"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// Service defines the interface for market lifecycle operations
type Service interface {
	Close(ctx context.Context, marketID uuid.UUID) error
	Resolve(ctx context.Context, marketID uuid.UUID) (*domain.ResolveResult, error)
	SweepDue(ctx context.Context) (*SweepResult, error)
}

// SweepResult reports what one lifecycle sweep accomplished.
type SweepResult struct {
	Closed   int `json:"closed"`
	Resolved int `json:"resolved"`
	Failed   int `json:"failed"`
}

type service struct {
	repo          repository.Market
	resolver      oracle.Resolver
	invalidator   cache.Invalidator
	oracleTimeout time.Duration
	now           func() time.Time
}

// NewService creates a new lifecycle service. The oracle resolver is
// injected so tests can substitute a double.
func NewService(repo repository.Market, resolver oracle.Resolver, invalidator cache.Invalidator, oracleTimeout time.Duration) Service {
	return &service{
		repo:          repo,
		resolver:      resolver,
		invalidator:   invalidator,
		oracleTimeout: oracleTimeout,
		now:           time.Now,
	}
}

// Close moves an OPEN market to CLOSED. Pools and bets are untouched.
func (s *service) Close(ctx context.Context, marketID uuid.UUID) error {
	log := logger.FromContext(ctx)

	rows, err := s.repo.CloseMarketIfOpen(ctx, marketID)
	if err != nil {
		return fmt.Errorf("failed to close market: %w", err)
	}
	if rows == 0 {
		market, err := s.repo.GetMarket(ctx, marketID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: cannot close market in status %s", domain.ErrInvalidTransition, market.Status)
	}

	metrics.MarketsClosed.Inc()
	log.Info(LogMsgMarketClosed, "market_id", marketID)
	return nil
}

// Resolve settles a CLOSED market: it asks the oracle for the realised
// outcome, then in one transaction records the resolution, flips the market
// to RESOLVED, and pays out winning bets. Any oracle failure aborts before
// the transaction starts, leaving the market CLOSED and the operation safe
// to retry.
func (s *service) Resolve(ctx context.Context, marketID uuid.UUID) (*domain.ResolveResult, error) {
	log := logger.FromContext(ctx)

	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}
	if market.Status != domain.MarketStatusClosed {
		return nil, fmt.Errorf("%w: cannot resolve market in status %s", domain.ErrInvalidTransition, market.Status)
	}
	if market.NewsSummary == nil || *market.NewsSummary == "" {
		return nil, domain.ErrMissingNews
	}

	req := oracle.Request{
		MarketTitle: market.Title,
		NewsSummary: *market.NewsSummary,
		Outcomes:    outcomeRefs(market.Outcomes),
	}
	if err := oracle.ValidateRequest(req); err != nil {
		return nil, err
	}

	octx := ctx
	if s.oracleTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, s.oracleTimeout)
		defer cancel()
	}

	decision, err := s.resolver.Resolve(octx, req)
	if err != nil {
		return nil, err
	}

	result, err := s.settle(ctx, market, decision)
	if err != nil {
		return nil, err
	}

	metrics.MarketsResolved.Inc()
	metrics.PointsPaidOut.Add(float64(result.PointsPaid))

	// Settlement credited balances; the leaderboard is stale.
	s.invalidator.Invalidate(ctx, cache.ChannelLeaderboard)

	log.Info(LogMsgMarketResolved,
		"market_id", marketID,
		"winner", result.Resolution.WinnerID,
		"confidence", result.Resolution.Confidence,
		"bets_settled", result.BetsSettled,
		"points_paid", result.PointsPaid)

	return result, nil
}

// settle runs the atomic resolution transaction.
func (s *service) settle(ctx context.Context, market *domain.Market, decision *oracle.Decision) (*domain.ResolveResult, error) {
	tx, err := s.repo.BeginResolveTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin resolve transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Re-read under lock: a concurrent resolve may have won the race since
	// the unlocked status check.
	locked, err := tx.GetMarketForUpdate(ctx, market.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	if locked.Status != domain.MarketStatusClosed {
		return nil, fmt.Errorf("%w: cannot resolve market in status %s", domain.ErrInvalidTransition, locked.Status)
	}

	// The winner must be one of this market's outcomes. The oracle adapter
	// already checked its own request set; this check is against the locked
	// rows settlement will run on.
	var winner *domain.Outcome
	totalPool := 0
	for i := range locked.Outcomes {
		totalPool += locked.Outcomes[i].TotalPoints
		if locked.Outcomes[i].ID == decision.WinnerID {
			winner = &locked.Outcomes[i]
		}
	}
	if winner == nil {
		return nil, &oracle.Error{
			Kind: oracle.KindUnknownWinner,
			Err:  fmt.Errorf("winner %s is not an outcome of market %s", decision.WinnerID, market.ID),
		}
	}

	now := s.now()
	resolution := &domain.Resolution{
		ID:         uuid.New(),
		MarketID:   market.ID,
		WinnerID:   decision.WinnerID,
		Confidence: decision.Confidence,
		Reasoning:  decision.Reasoning,
		CreatedAt:  now,
	}
	if err := tx.InsertResolution(ctx, resolution); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	rows, err := tx.MarkResolved(ctx, market.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: market left CLOSED state during resolve", domain.ErrInvalidTransition)
	}

	settled, paid, err := s.payOutWinners(ctx, tx, winner, totalPool)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	return &domain.ResolveResult{
		Resolution:  *resolution,
		WinnerLabel: winner.Label,
		BetsSettled: settled,
		PointsPaid:  paid,
	}, nil
}

// payOutWinners distributes the whole pool to winning bets proportionally
// to stake: payout = floor(stake * totalPool / winningPool). Each winner
// gets their stake back plus their share of the losing pool; flooring can
// leave a residue of at most one point per winning bet, which stays in the
// house. An unbacked winning outcome absorbs everything.
func (s *service) payOutWinners(ctx context.Context, tx repository.ResolveTx, winner *domain.Outcome, totalPool int) (int, int, error) {
	if winner.TotalPoints == 0 || totalPool == 0 {
		return 0, 0, nil
	}

	bets, err := tx.ListBetsByOutcome(ctx, winner.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	paid := 0
	for _, bet := range bets {
		payout := settlementPayout(bet.Points, totalPool, winner.TotalPoints)
		if payout == 0 {
			continue
		}
		if err := tx.CreditUser(ctx, bet.UserID, payout); err != nil {
			return 0, 0, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
		}
		paid += payout
	}

	return len(bets), paid, nil
}

// settlementPayout computes one winning bet's payout with floor division so
// the sum over all winners never exceeds the pool.
func settlementPayout(stake, totalPool, winningPool int) int {
	return stake * totalPool / winningPool
}

// SweepDue closes every OPEN market past its closing time, then resolves
// every CLOSED market that has a news summary. Individual market failures
// are logged and counted, never abort the sweep.
func (s *service) SweepDue(ctx context.Context) (*SweepResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSweepStarted)

	result := &SweepResult{}

	dueIDs, err := s.repo.ListExpiredOpen(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired markets: %w", err)
	}
	for _, id := range dueIDs {
		if err := s.Close(ctx, id); err != nil {
			// A concurrent close is fine; anything else counts as a failure.
			if !errors.Is(err, domain.ErrInvalidTransition) {
				log.Error("Sweep failed to close market", "market_id", id, "error", err)
				result.Failed++
				continue
			}
		}
		result.Closed++
	}

	resolvableIDs, err := s.repo.ListResolvable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolvable markets: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(SweepConcurrency)
	for _, id := range resolvableIDs {
		id := id
		g.Go(func() error {
			_, err := s.Resolve(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Retriable next sweep; the market stays CLOSED.
				log.Error("Sweep failed to resolve market", "market_id", id, "error", err)
				result.Failed++
				return nil
			}
			result.Resolved++
			return nil
		})
	}
	_ = g.Wait()

	log.Info(LogMsgSweepFinished,
		"closed", result.Closed,
		"resolved", result.Resolved,
		"failed", result.Failed)

	return result, nil
}

func outcomeRefs(outcomes []domain.Outcome) []oracle.OutcomeRef {
	refs := make([]oracle.OutcomeRef, len(outcomes))
	for i, o := range outcomes {
		refs[i] = oracle.OutcomeRef{ID: o.ID, Label: o.Label}
	}
	return refs
}
