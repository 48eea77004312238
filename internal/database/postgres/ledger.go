package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// LedgerRepository implements the wager-path repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListUserBets returns a user's bets joined with market context, newest first
func (r *LedgerRepository) ListUserBets(ctx context.Context, userID string) ([]domain.BetHistoryEntry, error) {
	query := `
		SELECT b.bet_id, b.user_id, b.outcome_id, b.points, b.created_at,
		       m.market_id, m.title, m.status,
		       o.label,
		       res.winner_outcome_id
		FROM bets b
		JOIN outcomes o ON o.outcome_id = b.outcome_id
		JOIN markets m ON m.market_id = o.market_id
		LEFT JOIN resolutions res ON res.market_id = m.market_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBets, err)
	}
	defer rows.Close()

	entries := []domain.BetHistoryEntry{}
	for rows.Next() {
		var e domain.BetHistoryEntry
		var winnerID pgtype.UUID
		err := rows.Scan(
			&e.Bet.ID, &e.Bet.UserID, &e.Bet.OutcomeID, &e.Bet.Points, &e.Bet.CreatedAt,
			&e.MarketID, &e.MarketTitle, &e.MarketStatus,
			&e.OutcomeLabel,
			&winnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBets, err)
		}
		if winnerID.Valid {
			won := uuid.UUID(winnerID.Bytes) == e.Bet.OutcomeID
			e.Won = &won
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WagerTx implements repository.WagerTx
type WagerTx struct {
	tx pgx.Tx
}

// BeginWagerTx starts the transaction a wager executes in
func (r *LedgerRepository) BeginWagerTx(ctx context.Context) (repository.WagerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &WagerTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *WagerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *WagerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserForUpdate loads a user and row-locks their balance for the duration
// of the transaction
func (t *WagerTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`
	return scanUser(t.tx.QueryRow(ctx, query, userID))
}

// GetOutcomeWithMarket loads an outcome together with its owning market.
// The market row is share-locked for the rest of the transaction so the
// status read stays valid until commit: a close or resolve takes FOR UPDATE
// on the same row and must wait for in-flight wagers to finish.
func (t *WagerTx) GetOutcomeWithMarket(ctx context.Context, outcomeID uuid.UUID) (*domain.Outcome, *domain.Market, error) {
	query := `
		SELECT o.outcome_id, o.market_id, o.label, o.total_points,
		       m.market_id, m.title, m.description, m.status, m.closes_at,
		       m.news_summary, m.resolved_at, m.created_at
		FROM outcomes o
		JOIN markets m ON m.market_id = o.market_id
		WHERE o.outcome_id = $1
		FOR SHARE OF m
	`
	var o domain.Outcome
	var m domain.Market
	var news pgtype.Text
	var resolvedAt pgtype.Timestamptz
	err := t.tx.QueryRow(ctx, query, outcomeID).Scan(
		&o.ID, &o.MarketID, &o.Label, &o.TotalPoints,
		&m.ID, &m.Title, &m.Description, &m.Status, &m.ClosesAt,
		&news, &resolvedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrOutcomeNotFound
		}
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryOutcomes, err)
	}
	m.NewsSummary = textToPtr(news)
	m.ResolvedAt = ptrTime(resolvedAt)
	return &o, &m, nil
}

// DebitUser decreases the user's balance and returns the new balance.
// The caller holds the row lock and has already checked sufficiency; the
// CHECK constraint on balance is the backstop.
func (t *WagerTx) DebitUser(ctx context.Context, userID string, amount int) (int, error) {
	query := `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`
	var balance int
	if err := t.tx.QueryRow(ctx, query, userID, amount).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebitUser, err)
	}
	return balance, nil
}

// CreditPool increases an outcome's pool total and returns the new total
func (t *WagerTx) CreditPool(ctx context.Context, outcomeID uuid.UUID, amount int) (int, error) {
	query := `
		UPDATE outcomes
		SET total_points = total_points + $2
		WHERE outcome_id = $1
		RETURNING total_points
	`
	var total int
	if err := t.tx.QueryRow(ctx, query, outcomeID, amount).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrOutcomeNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCreditOutcomePool, err)
	}
	return total, nil
}

// InsertBet appends the bet ledger entry
func (t *WagerTx) InsertBet(ctx context.Context, bet *domain.Bet) error {
	query := `
		INSERT INTO bets (bet_id, user_id, outcome_id, points, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := t.tx.Exec(ctx, query, bet.ID, bet.UserID, bet.OutcomeID, bet.Points, bet.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBet, err)
	}
	return nil
}

// ListOutcomes returns all outcomes of a market, creation order
func (t *WagerTx) ListOutcomes(ctx context.Context, marketID uuid.UUID) ([]domain.Outcome, error) {
	return listOutcomes(ctx, t.tx, marketID)
}

// queryer covers both the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listOutcomes(ctx context.Context, q queryer, marketID uuid.UUID) ([]domain.Outcome, error) {
	query := `
		SELECT outcome_id, market_id, label, total_points
		FROM outcomes
		WHERE market_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := q.Query(ctx, query, marketID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryOutcomes, err)
	}
	defer rows.Close()

	outcomes := []domain.Outcome{}
	for rows.Next() {
		var o domain.Outcome
		if err := rows.Scan(&o.ID, &o.MarketID, &o.Label, &o.TotalPoints); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryOutcomes, err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
