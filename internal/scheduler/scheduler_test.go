package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointsbazaar/market-engine/internal/worker"
)

type countingJob struct {
	runs int32
}

func (j *countingJob) Process(ctx context.Context) error {
	atomic.AddInt32(&j.runs, 1)
	return nil
}

func TestSchedule_AcceptsStandardSpec(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{}

	require.NoError(t, sched.Schedule("* * * * *", job))

	sched.Start()
	defer sched.Stop()

	// Standard cron fires at most once a minute, too slow for a unit test.
	// Exercise the same pool path the trigger uses.
	pool.Enqueue(job)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&job.runs) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestSchedule_RejectsBadSpec(t *testing.T) {
	sched := New(worker.NewPool(1, 1))

	assert.Error(t, sched.Schedule("not a cron spec", &countingJob{}))
}

func TestStop_WaitsForCron(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	require.NoError(t, sched.Schedule("0 0 * * *", &countingJob{}))

	sched.Start()

	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
