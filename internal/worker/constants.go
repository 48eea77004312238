package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the market sweep job
const (
	LogMsgSweepStarting  = "Market sweep starting"
	LogMsgSweepCompleted = "Market sweep completed"
	LogMsgSweepFailed    = "Market sweep failed"
)
