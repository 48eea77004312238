package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarketStatus represents where a market is in its lifecycle
type MarketStatus string

const (
	MarketStatusOpen     MarketStatus = "OPEN"
	MarketStatusClosed   MarketStatus = "CLOSED"
	MarketStatusResolved MarketStatus = "RESOLVED"
)

// Market represents a real-world question users stake points on.
// Status only ever moves forward: OPEN -> CLOSED -> RESOLVED.
type Market struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      MarketStatus `json:"status"`
	ClosesAt    time.Time    `json:"closes_at"`
	NewsSummary *string      `json:"news_summary,omitempty"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Outcomes    []Outcome    `json:"outcomes,omitempty"`
}

// Outcome is one of the discrete results a market can settle on.
// TotalPoints is the cumulative stake pool and is monotonically
// non-decreasing while the market is open.
type Outcome struct {
	ID          uuid.UUID `json:"id"`
	MarketID    uuid.UUID `json:"market_id"`
	Label       string    `json:"label"`
	TotalPoints int       `json:"total_points"`
}

// Resolution records the settled result of a market. Exactly one exists per
// resolved market.
type Resolution struct {
	ID         uuid.UUID `json:"id"`
	MarketID   uuid.UUID `json:"market_id"`
	WinnerID   uuid.UUID `json:"winner_id"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResolveResult summarizes a completed resolution, including the settlement
// of winning bets that happens in the same transaction.
type ResolveResult struct {
	Resolution  Resolution `json:"resolution"`
	WinnerLabel string     `json:"winner_label"`
	BetsSettled int        `json:"bets_settled"`
	PointsPaid  int        `json:"points_paid"`
}
