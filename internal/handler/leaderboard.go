package handler

import (
	"net/http"

	"github.com/pointsbazaar/market-engine/internal/leaderboard"
	"github.com/pointsbazaar/market-engine/internal/logger"
)

// LeaderboardHandler serves the ranked-balance endpoint
type LeaderboardHandler struct {
	service leaderboard.Service
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(service leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// HandleLeaderboard returns the top users ranked by balance
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Top(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetLeaderboardFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
