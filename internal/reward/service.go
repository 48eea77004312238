// Package reward implements the daily reward claim and its streak state
// machine, keyed on UTC calendar days.
package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pointsbazaar/market-engine/internal/cache"
	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/metrics"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// Service defines the interface for daily reward operations
type Service interface {
	Claim(ctx context.Context, userID string) (*domain.ClaimResult, error)
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
}

// AlreadyClaimedError is returned when the user has claimed today already.
// It carries the next eligible time so callers can render "come back at".
type AlreadyClaimedError struct {
	NextClaimAt time.Time
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s, next claim at %s", domain.ErrMsgAlreadyClaimed, e.NextClaimAt.Format(time.RFC3339))
}

// Is allows errors.Is(err, domain.ErrAlreadyClaimed) to match.
func (e *AlreadyClaimedError) Is(target error) bool {
	return target == domain.ErrAlreadyClaimed
}

type service struct {
	repo        repository.User
	invalidator cache.Invalidator
	points      int
	now         func() time.Time
}

// NewService creates a new reward service awarding points per daily claim
func NewService(repo repository.User, invalidator cache.Invalidator, points int) Service {
	return &service{
		repo:        repo,
		invalidator: invalidator,
		points:      points,
		now:         time.Now,
	}
}

// Claim awards the daily reward once per UTC calendar day. Balance, streak
// and last-claim timestamp move in one transaction.
func (s *service) Claim(ctx context.Context, userID string) (*domain.ClaimResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := s.now()

	tx, err := s.repo.BeginClaimTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	newStreak, eligible := NextStreak(now, user.LastDailyClaim, user.StreakCount)
	if !eligible {
		return nil, &AlreadyClaimedError{NextClaimAt: startOfNextUTCDay(now)}
	}

	newBalance, err := tx.ApplyClaim(ctx, userID, s.points, newStreak, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	metrics.RewardsClaimed.Inc()
	s.invalidator.Invalidate(ctx, cache.ChannelLeaderboard)

	log.Info("Daily reward claimed",
		"user_id", userID,
		"points", s.points,
		"streak", newStreak,
		"new_balance", newBalance)

	return &domain.ClaimResult{
		PointsAwarded: s.points,
		NewBalance:    newBalance,
		NewStreak:     newStreak,
		NextClaimAt:   startOfNextUTCDay(now),
	}, nil
}

// Profile returns the account summary, including whether the daily reward
// can be claimed right now. Read-only, never locks the user row.
func (s *service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := &domain.Profile{User: *user}
	if _, eligible := NextStreak(now, user.LastDailyClaim, user.StreakCount); eligible {
		profile.CanClaim = true
	} else {
		next := startOfNextUTCDay(now)
		profile.NextClaimAt = &next
	}

	return profile, nil
}
