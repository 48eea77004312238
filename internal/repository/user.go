package repository

import (
	"context"
	"time"

	"github.com/pointsbazaar/market-engine/internal/domain"
)

// User defines the data access required by the reward and leaderboard
// services
type User interface {
	// GetUser loads a user by id
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// BeginClaimTx starts the serializable transaction a daily claim
	// executes in
	BeginClaimTx(ctx context.Context) (ClaimTx, error)

	// TopByBalance returns up to limit users ranked by balance descending
	TopByBalance(ctx context.Context, limit int) ([]domain.User, error)
}

// ClaimTx is the atomic unit for a daily reward claim: balance, streak and
// last-claim timestamp move together.
type ClaimTx interface {
	Tx

	// GetUserForUpdate loads a user and row-locks their balance/streak row
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)

	// ApplyClaim credits the reward and records the new streak state,
	// returning the new balance
	ApplyClaim(ctx context.Context, userID string, points, streak int, claimedAt time.Time) (int, error)
}
