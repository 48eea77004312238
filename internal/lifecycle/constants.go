package lifecycle

const (
	// SweepConcurrency bounds how many markets one sweep resolves in
	// parallel. Each resolution holds an oracle call open.
	SweepConcurrency = 4
)

// Log messages
const (
	LogMsgMarketClosed   = "Market closed"
	LogMsgMarketResolved = "Market resolved"
	LogMsgSweepStarted   = "Lifecycle sweep started"
	LogMsgSweepFinished  = "Lifecycle sweep finished"
)
