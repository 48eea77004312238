package ledger

// Log messages
const (
	LogMsgPlaceWagerCalled = "PlaceWager called"
	LogMsgWagerPlaced      = "Wager placed"
)

// Error context messages
const (
	ErrContextFailedToBeginTx  = "failed to begin wager transaction"
	ErrContextFailedToLoadUser = "failed to load user"
	ErrContextFailedToDebit    = "failed to debit balance"
	ErrContextFailedToCredit   = "failed to credit pool"
	ErrContextFailedToInsert   = "failed to insert bet"
	ErrContextFailedToCommit   = "failed to commit wager"
)
