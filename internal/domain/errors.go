package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgUnauthenticated = "unauthenticated"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// Ledger errors
	ErrMsgInvalidAmount       = "amount must be a positive integer"
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgOutcomeNotFound     = "outcome not found"

	// Market errors
	ErrMsgMarketNotFound = "market not found"
	ErrMsgMarketNotOpen  = "market is not open"
	ErrMsgMarketExpired  = "market has expired"

	// Reward errors
	ErrMsgAlreadyClaimed = "daily reward already claimed today"

	// Lifecycle errors
	ErrMsgInvalidTransition = "invalid market lifecycle transition"
	ErrMsgMissingNews       = "market has no news summary to resolve against"

	// Persistence errors
	ErrMsgTransactionFailed = "transaction failed"
	// ErrMsgTxClosed matches pgx.ErrTxClosed, returned when rolling back
	// an already-committed transaction.
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth errors
	ErrUnauthenticated = errors.New(ErrMsgUnauthenticated)

	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Ledger errors
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrOutcomeNotFound     = errors.New(ErrMsgOutcomeNotFound)

	// Market errors
	ErrMarketNotFound = errors.New(ErrMsgMarketNotFound)
	ErrMarketNotOpen  = errors.New(ErrMsgMarketNotOpen)
	ErrMarketExpired  = errors.New(ErrMsgMarketExpired)

	// Reward errors
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// Lifecycle errors
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrMissingNews       = errors.New(ErrMsgMissingNews)

	// Persistence errors
	// Unexpected storage faults are wrapped in this instead of leaking driver
	// errors to callers.
	ErrTransactionFailed = errors.New(ErrMsgTransactionFailed)
)
