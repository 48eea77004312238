package domain

import "time"

// User represents a registered user as seen by the engine. Identity fields
// are owned by the external identity provider; the engine only mutates
// balance and streak state.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Balance        int        `json:"balance"`
	StreakCount    int        `json:"streak_count"`
	LastDailyClaim *time.Time `json:"last_daily_claim,omitempty"`
}

// Profile is the user-facing account summary: balance, streak, and whether
// the daily reward is currently claimable.
type Profile struct {
	User        User       `json:"user"`
	CanClaim    bool       `json:"can_claim"`
	NextClaimAt *time.Time `json:"next_claim_at,omitempty"` // set when CanClaim is false
}
