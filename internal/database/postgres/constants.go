package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser       = "failed to get user"
	ErrMsgFailedToLockUser      = "failed to lock user row"
	ErrMsgFailedToDebitUser     = "failed to debit user"
	ErrMsgFailedToCreditUser    = "failed to credit user"
	ErrMsgFailedToApplyClaim    = "failed to apply claim"
	ErrMsgFailedToQueryTopUsers = "failed to query top users"
)

// Error Messages - Market Operations
const (
	ErrMsgFailedToGetMarket         = "failed to get market"
	ErrMsgFailedToQueryMarkets      = "failed to query markets"
	ErrMsgFailedToQueryOutcomes     = "failed to query outcomes"
	ErrMsgFailedToCloseMarket       = "failed to close market"
	ErrMsgFailedToQueryExpired      = "failed to query expired markets"
	ErrMsgFailedToQueryResolvable   = "failed to query resolvable markets"
	ErrMsgFailedToMarkResolved      = "failed to mark market resolved"
	ErrMsgFailedToInsertResolution  = "failed to insert resolution"
	ErrMsgFailedToQueryBets         = "failed to query bets"
	ErrMsgFailedToInsertBet         = "failed to insert bet"
	ErrMsgFailedToCreditOutcomePool = "failed to credit outcome pool"
)
