// Package pricing computes pool-implied prices and payouts for market
// outcomes.
//
// The model is a leave-one-out generalization of the binary constant-product
// rule: for outcome i with pool p_i out of a total pool T over N outcomes,
//
//	price_i = (T - p_i) / (T * (N - 1))
//
// For N=2 this reduces exactly to price(Yes) = pool(No) / pool(total) and the
// two prices sum to 1 before clamping. For N>2 the prices are a documented
// approximation and do NOT sum exactly to 1; callers must not renormalize,
// as that would change quoted odds.
package pricing

import (
	"math"

	"github.com/google/uuid"
	"github.com/pointsbazaar/market-engine/internal/domain"
)

// OutcomePrice is the quoted implied price for a single outcome.
type OutcomePrice struct {
	OutcomeID   uuid.UUID `json:"outcome_id"`
	Label       string    `json:"label"`
	Price       float64   `json:"price"`
	TotalPoints int       `json:"total_points"`
}

// Quote computes the implied price of every outcome from pool state.
// It is a pure function: identical pools always produce identical prices,
// so a caller previewing odds sees exactly what the wager path computes.
func Quote(outcomes []domain.Outcome) []OutcomePrice {
	n := len(outcomes)
	if n == 0 {
		return nil
	}

	rawTotal := 0
	for _, o := range outcomes {
		rawTotal += o.TotalPoints
	}

	// An unfunded market is seeded with one virtual unit per outcome so
	// every price starts at 1/N.
	total := rawTotal
	if rawTotal == 0 {
		total = n * VirtualLiquidity
	}

	prices := make([]OutcomePrice, 0, n)
	for _, o := range outcomes {
		pts := o.TotalPoints
		if rawTotal == 0 || pts == 0 {
			// A true zero pool would quote price 1 for everyone else
			// and lock this outcome at the clamp floor forever.
			pts = VirtualLiquidity
		}

		var price float64
		if n == 1 {
			price = 1
		} else {
			price = float64(total-pts) / (float64(total) * float64(n-1))
		}

		prices = append(prices, OutcomePrice{
			OutcomeID:   o.ID,
			Label:       o.Label,
			Price:       Clamp(price),
			TotalPoints: o.TotalPoints,
		})
	}

	return prices
}

// Clamp bounds a price into [MinPrice, MaxPrice].
func Clamp(price float64) float64 {
	return math.Min(math.Max(price, MinPrice), MaxPrice)
}

// Payout returns the total points returned to a bettor if a stake at the
// given price wins: round(stake / price). Net profit is Payout - stake.
func Payout(stake int, price float64) int {
	if stake <= 0 {
		return 0
	}
	return int(math.Round(float64(stake) / Clamp(price)))
}

// PriceFor returns the quoted price of one outcome among its siblings.
// Returns 0 and false when the id is not present.
func PriceFor(outcomes []domain.Outcome, outcomeID uuid.UUID) (float64, bool) {
	for _, q := range Quote(outcomes) {
		if q.OutcomeID == outcomeID {
			return q.Price, true
		}
	}
	return 0, false
}
