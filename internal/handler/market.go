package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/lifecycle"
	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/market"
)

// MarketHandler serves market reads and the admin lifecycle endpoints
type MarketHandler struct {
	reads     market.Service
	lifecycle lifecycle.Service
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(reads market.Service, lc lifecycle.Service) *MarketHandler {
	return &MarketHandler{reads: reads, lifecycle: lc}
}

// HandleListMarkets returns all markets with quoted prices
func (h *MarketHandler) HandleListMarkets(w http.ResponseWriter, r *http.Request) {
	views, err := h.reads.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgListMarketsFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// HandleGetMarket returns one market. An optional stake query parameter adds
// a payout preview per outcome.
func (h *MarketHandler) HandleGetMarket(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, ErrMsgInvalidMarketID, http.StatusBadRequest)
		return
	}

	stake := 0
	if raw := GetOptionalQueryParam(r, "stake", ""); raw != "" {
		stake, err = strconv.Atoi(raw)
		if err != nil || stake < 0 {
			http.Error(w, ErrMsgInvalidStake, http.StatusBadRequest)
			return
		}
	}

	detail, err := h.reads.Get(r.Context(), marketID, stake)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetMarketFailed, "market_id", marketID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// HandleCloseMarket moves an OPEN market to CLOSED
func (h *MarketHandler) HandleCloseMarket(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, ErrMsgInvalidMarketID, http.StatusBadRequest)
		return
	}

	if err := h.lifecycle.Close(r.Context(), marketID); err != nil {
		logger.FromContext(r.Context()).Error("Failed to close market", "market_id", marketID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMarketClosedSuccess})
}

// HandleResolveMarket settles a CLOSED market via the oracle
func (h *MarketHandler) HandleResolveMarket(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, ErrMsgInvalidMarketID, http.StatusBadRequest)
		return
	}

	result, err := h.lifecycle.Resolve(r.Context(), marketID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to resolve market", "market_id", marketID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
