// Package market serves the read surface: market listings and single-market
// detail with pool-implied prices and an optional payout preview. All reads
// are computed from current pool state with the same pricing the wager path
// uses, so a previewed quote matches the receipt a bet would get.
package market

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/pricing"
	"github.com/pointsbazaar/market-engine/internal/repository"
)

// View is a market with its quoted prices.
type View struct {
	domain.Market
	Prices []pricing.OutcomePrice `json:"prices"`
}

// PayoutPreview shows what a hypothetical stake on each outcome would return
// if that outcome won.
type PayoutPreview struct {
	OutcomeID uuid.UUID `json:"outcome_id"`
	Label     string    `json:"label"`
	Price     float64   `json:"price"`
	Stake     int       `json:"stake"`
	Payout    int       `json:"payout"`
}

// Detail is a single market view, optionally with a payout preview.
type Detail struct {
	View
	Preview []PayoutPreview `json:"payout_preview,omitempty"`
}

// Service defines the interface for market reads
type Service interface {
	// List returns all markets with quoted prices, open markets first.
	List(ctx context.Context) ([]View, error)

	// Get returns one market with quoted prices. A positive stake adds a
	// payout preview per outcome; zero means no preview.
	Get(ctx context.Context, marketID uuid.UUID, stake int) (*Detail, error)
}

type service struct {
	repo repository.Market
}

// NewService creates a new market read service
func NewService(repo repository.Market) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]View, error) {
	markets, err := s.repo.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}

	views := make([]View, len(markets))
	for i, m := range markets {
		views[i] = View{Market: m, Prices: pricing.Quote(m.Outcomes)}
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, marketID uuid.UUID, stake int) (*Detail, error) {
	if stake < 0 {
		return nil, domain.ErrInvalidAmount
	}

	m, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{View: View{Market: *m, Prices: pricing.Quote(m.Outcomes)}}

	if stake > 0 && m.Status == domain.MarketStatusOpen {
		detail.Preview = preview(m.Outcomes, stake)
	}
	return detail, nil
}

// preview prices the stake against post-wager pools: staking moves the pool
// before the price is read, exactly as PlaceWager does.
func preview(outcomes []domain.Outcome, stake int) []PayoutPreview {
	out := make([]PayoutPreview, len(outcomes))
	shifted := make([]domain.Outcome, len(outcomes))
	for i, o := range outcomes {
		copy(shifted, outcomes)
		shifted[i].TotalPoints += stake

		price, _ := pricing.PriceFor(shifted, o.ID)
		out[i] = PayoutPreview{
			OutcomeID: o.ID,
			Label:     o.Label,
			Price:     price,
			Stake:     stake,
			Payout:    pricing.Payout(stake, price),
		}
	}
	return out
}
