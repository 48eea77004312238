package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pointsbazaar/market-engine/internal/domain"
	"github.com/pointsbazaar/market-engine/internal/oracle"
	"github.com/pointsbazaar/market-engine/internal/reward"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error       string     `json:"error"`
	NextClaimAt *time.Time `json:"next_claim_at,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUnauthenticatedError = "Authentication required"
	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgMarketNotFoundError  = "Market not found"
	ErrMsgOutcomeNotFoundError = "Outcome not found"

	ErrMsgInvalidAmountError       = "Amount must be a positive whole number of points"
	ErrMsgInsufficientBalanceError = "Not enough points"
	ErrMsgMarketNotOpenError       = "Market is no longer accepting bets"
	ErrMsgMarketExpiredError       = "Market has passed its closing time"

	ErrMsgAlreadyClaimedError = "Daily reward already claimed. Come back tomorrow"

	ErrMsgInvalidTransitionError = "Market is not in the right state for that"
	ErrMsgMissingNewsError       = "Market has no news summary to resolve against"
	ErrMsgOracleError            = "Resolution service failed. Try again later"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal detail never leaks to the client; the full error is
// logged where it happened.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var oerr *oracle.Error
	if errors.As(err, &oerr) {
		return http.StatusBadGateway, ErrMsgOracleError
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrMsgUnauthenticatedError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrMarketNotFound):
		return http.StatusNotFound, ErrMsgMarketNotFoundError
	case errors.Is(err, domain.ErrOutcomeNotFound):
		return http.StatusNotFound, ErrMsgOutcomeNotFoundError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrMarketNotOpen):
		return http.StatusConflict, ErrMsgMarketNotOpenError
	case errors.Is(err, domain.ErrMarketExpired):
		return http.StatusConflict, ErrMsgMarketExpiredError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusTooManyRequests, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrMissingNews):
		return http.StatusUnprocessableEntity, ErrMsgMissingNewsError
	case errors.Is(err, domain.ErrTransactionFailed):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps and writes a service error. The already-claimed
// case additionally carries the next eligible claim time in the body.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)

	var claimed *reward.AlreadyClaimedError
	if errors.As(err, &claimed) {
		respondJSON(w, status, ErrorResponse{Error: msg, NextClaimAt: &claimed.NextClaimAt})
		return
	}

	respondError(w, status, msg)
}
