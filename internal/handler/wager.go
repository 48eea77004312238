package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/ledger"
	"github.com/pointsbazaar/market-engine/internal/logger"
)

// WagerHandler serves the bet-placement and bet-history endpoints
type WagerHandler struct {
	service ledger.Service
}

// NewWagerHandler creates a new WagerHandler
func NewWagerHandler(service ledger.Service) *WagerHandler {
	return &WagerHandler{service: service}
}

// PlaceWagerRequest is the body of POST /wager
type PlaceWagerRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	OutcomeID string `json:"outcome_id" validate:"required,uuid"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
}

// HandlePlaceWager stakes points on an outcome
func (h *WagerHandler) HandlePlaceWager(w http.ResponseWriter, r *http.Request) {
	var req PlaceWagerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place wager"); err != nil {
		return
	}

	outcomeID, err := uuid.Parse(req.OutcomeID)
	if err != nil {
		http.Error(w, ErrMsgInvalidOutcomeID, http.StatusBadRequest)
		return
	}

	receipt, err := h.service.PlaceWager(r.Context(), req.UserID, outcomeID, req.Amount)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to place wager", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}

// HandleGetUserBets returns a user's bet history, newest first
func (h *WagerHandler) HandleGetUserBets(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	bets, err := h.service.GetUserBets(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetBetsFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bets)
}

// HandleGetMarketBets returns a user's bets on one market, newest first
func (h *WagerHandler) HandleGetMarketBets(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, ErrMsgInvalidMarketID, http.StatusBadRequest)
		return
	}
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	bets, err := h.service.GetUserBets(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetBetsFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	filtered := make([]domain.BetHistoryEntry, 0, len(bets))
	for _, b := range bets {
		if b.MarketID == marketID {
			filtered = append(filtered, b)
		}
	}

	respondJSON(w, http.StatusOK, filtered)
}
