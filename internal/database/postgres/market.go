package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// MarketRepository implements the market repository for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

const marketColumns = `market_id, title, description, status, closes_at, news_summary, resolved_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMarket(row rowScanner) (*domain.Market, error) {
	var m domain.Market
	var news pgtype.Text
	var resolvedAt pgtype.Timestamptz
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Status, &m.ClosesAt, &news, &resolvedAt, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMarketNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMarket, err)
	}
	m.NewsSummary = textToPtr(news)
	m.ResolvedAt = ptrTime(resolvedAt)
	return &m, nil
}

// GetMarket loads a market with its outcomes
func (r *MarketRepository) GetMarket(ctx context.Context, id uuid.UUID) (*domain.Market, error) {
	query := `SELECT ` + marketColumns + ` FROM markets WHERE market_id = $1`
	m, err := scanMarket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	m.Outcomes, err = listOutcomes(ctx, r.db, m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMarkets returns all markets with outcomes, open markets first, then by
// closing time
func (r *MarketRepository) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	query := `
		SELECT ` + marketColumns + `
		FROM markets
		ORDER BY (status = 'OPEN') DESC, closes_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryMarkets, err)
	}
	defer rows.Close()

	markets := []domain.Market{}
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, err
		}
		markets = append(markets, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryMarkets, err)
	}

	for i := range markets {
		markets[i].Outcomes, err = listOutcomes(ctx, r.db, markets[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return markets, nil
}

// CloseMarketIfOpen atomically moves OPEN -> CLOSED. Returns rows changed.
func (r *MarketRepository) CloseMarketIfOpen(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE markets SET status = 'CLOSED' WHERE market_id = $1 AND status = 'OPEN'`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCloseMarket, err)
	}
	return tag.RowsAffected(), nil
}

// ListExpiredOpen returns ids of OPEN markets whose closing time has passed
func (r *MarketRepository) ListExpiredOpen(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `SELECT market_id FROM markets WHERE status = 'OPEN' AND closes_at <= $1`
	return listIDs(ctx, r.db, query, ErrMsgFailedToQueryExpired, now)
}

// ListResolvable returns ids of CLOSED markets that have a news summary
func (r *MarketRepository) ListResolvable(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT market_id FROM markets
		WHERE status = 'CLOSED' AND news_summary IS NOT NULL AND news_summary <> ''
	`
	return listIDs(ctx, r.db, query, ErrMsgFailedToQueryResolvable)
}

func listIDs(ctx context.Context, q queryer, query, errMsg string, args ...any) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", errMsg, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResolveTx implements repository.ResolveTx
type ResolveTx struct {
	tx pgx.Tx
}

// BeginResolveTx starts the transaction that settles a market
func (r *MarketRepository) BeginResolveTx(ctx context.Context) (repository.ResolveTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ResolveTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *ResolveTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *ResolveTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetMarketForUpdate loads a market with outcomes and row-locks it,
// serializing concurrent resolve attempts
func (t *ResolveTx) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*domain.Market, error) {
	query := `SELECT ` + marketColumns + ` FROM markets WHERE market_id = $1 FOR UPDATE`
	m, err := scanMarket(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	m.Outcomes, err = listOutcomes(ctx, t.tx, m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// InsertResolution writes the one-and-only resolution record. The UNIQUE
// constraint on market_id rejects a second resolution outright.
func (t *ResolveTx) InsertResolution(ctx context.Context, res *domain.Resolution) error {
	query := `
		INSERT INTO resolutions (resolution_id, market_id, winner_outcome_id, confidence, reasoning, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := t.tx.Exec(ctx, query, res.ID, res.MarketID, res.WinnerID, res.Confidence, res.Reasoning, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertResolution, err)
	}
	return nil
}

// MarkResolved atomically moves CLOSED -> RESOLVED. Returns rows changed.
func (t *ResolveTx) MarkResolved(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error) {
	query := `
		UPDATE markets
		SET status = 'RESOLVED', resolved_at = $2
		WHERE market_id = $1 AND status = 'CLOSED'
	`
	tag, err := t.tx.Exec(ctx, query, id, resolvedAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMarkResolved, err)
	}
	return tag.RowsAffected(), nil
}

// ListBetsByOutcome returns every bet staked on an outcome
func (t *ResolveTx) ListBetsByOutcome(ctx context.Context, outcomeID uuid.UUID) ([]domain.Bet, error) {
	query := `
		SELECT bet_id, user_id, outcome_id, points, created_at
		FROM bets
		WHERE outcome_id = $1
		ORDER BY created_at ASC
	`
	rows, err := t.tx.Query(ctx, query, outcomeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBets, err)
	}
	defer rows.Close()

	bets := []domain.Bet{}
	for rows.Next() {
		var b domain.Bet
		if err := rows.Scan(&b.ID, &b.UserID, &b.OutcomeID, &b.Points, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBets, err)
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// CreditUser increases a user's balance by the settlement payout
func (t *ResolveTx) CreditUser(ctx context.Context, userID string, amount int) error {
	query := `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := t.tx.Exec(ctx, query, userID, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreditUser, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
