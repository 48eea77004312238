package handler

import (
	"net/http"

	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/reward"
)

// RewardHandler serves the daily claim and profile endpoints
type RewardHandler struct {
	service reward.Service
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(service reward.Service) *RewardHandler {
	return &RewardHandler{service: service}
}

// ClaimRequest is the body of POST /reward/claim
type ClaimRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleClaim awards the daily reward once per UTC calendar day
func (h *RewardHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim reward"); err != nil {
		return
	}

	result, err := h.service.Claim(r.Context(), req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Daily claim rejected", "user_id", req.UserID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleProfile returns the account summary including claim eligibility
func (h *RewardHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetProfileFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
