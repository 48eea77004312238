package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, balance, streak_count, last_daily_claim`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var lastClaim pgtype.Timestamptz
	if err := row.Scan(&u.ID, &u.Username, &u.Balance, &u.StreakCount, &lastClaim); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	u.LastDailyClaim = ptrTime(lastClaim)
	return &u, nil
}

// GetUser loads a user by id
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

// TopByBalance returns up to limit users ranked by balance descending.
// Ties break on username so the ranking is stable across refreshes.
func (r *UserRepository) TopByBalance(ctx context.Context, limit int) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY balance DESC, username ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTopUsers, err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		var u domain.User
		var lastClaim pgtype.Timestamptz
		if err := rows.Scan(&u.ID, &u.Username, &u.Balance, &u.StreakCount, &lastClaim); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTopUsers, err)
		}
		u.LastDailyClaim = ptrTime(lastClaim)
		users = append(users, u)
	}
	return users, rows.Err()
}

// ClaimTx implements repository.ClaimTx
type ClaimTx struct {
	tx pgx.Tx
}

// BeginClaimTx starts the transaction a daily claim executes in
func (r *UserRepository) BeginClaimTx(ctx context.Context) (repository.ClaimTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ClaimTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *ClaimTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *ClaimTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserForUpdate loads a user and row-locks their balance/streak row
func (t *ClaimTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`
	return scanUser(t.tx.QueryRow(ctx, query, userID))
}

// ApplyClaim credits the reward and records the new streak state in one
// statement, returning the new balance
func (t *ClaimTx) ApplyClaim(ctx context.Context, userID string, points, streak int, claimedAt time.Time) (int, error) {
	query := `
		UPDATE users
		SET balance = balance + $2,
		    streak_count = $3,
		    last_daily_claim = $4,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`
	var balance int
	if err := t.tx.QueryRow(ctx, query, userID, points, streak, claimedAt).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToApplyClaim, err)
	}
	return balance, nil
}
