package worker

import (
	"context"
	"time"

	"github.com/pointsbazaar/market-engine/internal/lifecycle"
	"github.com/pointsbazaar/market-engine/internal/logger"
)

// SweepJob closes expired markets and resolves everything that is ready.
// One run is bounded by Timeout so a hung oracle call cannot stall the pool.
type SweepJob struct {
	Lifecycle lifecycle.Service
	Timeout   time.Duration
}

func (j *SweepJob) Process(ctx context.Context) error {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.FromContext(ctx)
	log.Info(LogMsgSweepStarting)

	result, err := j.Lifecycle.SweepDue(ctx)
	if err != nil {
		log.Error(LogMsgSweepFailed, "error", err)
		return err
	}

	log.Info(LogMsgSweepCompleted,
		"closed", result.Closed,
		"resolved", result.Resolved,
		"failed", result.Failed)
	return nil
}
