package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/pointsbazaar/market-engine/internal/worker"
)

// Scheduler runs registered jobs on cron schedules by handing them to the
// worker pool. Schedules use standard five-field cron syntax.
type Scheduler struct {
	cron       *cron.Cron
	workerPool *worker.Pool
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		workerPool: pool,
	}
}

// Schedule registers a job under a cron expression
func (s *Scheduler) Schedule(spec string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.workerPool.Enqueue(job)
	})
	if err != nil {
		return err
	}
	slog.Debug("Job scheduled", "spec", spec)
	return nil
}

// Start begins firing schedules in a background goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron loop and waits for any in-flight trigger to finish.
// Jobs already handed to the pool keep running; the pool owns their lifetime.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
