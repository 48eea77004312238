package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bet is an append-only ledger entry recording a stake on an outcome.
// Bets are never updated or deleted once written.
type Bet struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	OutcomeID uuid.UUID `json:"outcome_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// BetReceipt is returned to the caller after a successful wager.
type BetReceipt struct {
	BetID        uuid.UUID `json:"bet_id"`
	NewBalance   int       `json:"new_balance"`
	OutcomePool  int       `json:"outcome_pool"`
	ImpliedPrice float64   `json:"implied_price"`
}

// BetHistoryEntry is a bet joined with its market context for display.
type BetHistoryEntry struct {
	Bet          Bet          `json:"bet"`
	MarketID     uuid.UUID    `json:"market_id"`
	MarketTitle  string       `json:"market_title"`
	MarketStatus MarketStatus `json:"market_status"`
	OutcomeLabel string       `json:"outcome_label"`
	Won          *bool        `json:"won,omitempty"` // nil until the market resolves
}
