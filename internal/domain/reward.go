package domain

import "time"

// ClaimResult is returned after a successful daily reward claim.
type ClaimResult struct {
	PointsAwarded int       `json:"points_awarded"`
	NewBalance    int       `json:"new_balance"`
	NewStreak     int       `json:"new_streak"`
	NextClaimAt   time.Time `json:"next_claim_at"`
}
