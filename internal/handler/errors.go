package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path/parameter validation error messages
	ErrMsgInvalidMarketID  = "Invalid market ID"
	ErrMsgInvalidOutcomeID = "Invalid outcome ID"
	ErrMsgInvalidStake     = "Invalid stake parameter"

	// Read operation error messages
	ErrMsgListMarketsFailed    = "Failed to list markets"
	ErrMsgGetMarketFailed      = "Failed to get market"
	ErrMsgGetBetsFailed        = "Failed to get bets"
	ErrMsgGetLeaderboardFailed = "Failed to get leaderboard"
	ErrMsgGetProfileFailed     = "Failed to get profile"
)

// Success messages for API responses
const (
	MsgMarketClosedSuccess = "Market closed"
)
