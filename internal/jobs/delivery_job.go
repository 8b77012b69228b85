package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/engine"
)

// CycleRunner runs one scheduler pass over due posts.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*engine.CycleStats, error)
}

// DeliveryJob triggers a delivery cycle on every tick. A tick that fires
// while the previous cycle is still running is dropped.
type DeliveryJob struct {
	runner  CycleRunner
	timeout time.Duration
	ctx     context.Context
	logger  *slog.Logger

	mu   sync.Mutex
	done chan struct{} // non-nil while a cycle runs, closed when it ends
}

func NewDeliveryJob(ctx context.Context, runner CycleRunner, timeout time.Duration, logger *slog.Logger) *DeliveryJob {
	return &DeliveryJob{
		runner:  runner,
		timeout: timeout,
		ctx:     ctx,
		logger:  logger,
	}
}

// Run matches the cron.AddFunc signature.
func (j *DeliveryJob) Run() {
	if _, err := j.RunOnce(); err != nil {
		j.logger.Error("delivery cycle failed", "error", err)
	}
}

// RunOnce runs a single cycle and reports whether it actually ran.
func (j *DeliveryJob) RunOnce() (bool, error) {
	done, ok := j.start()
	if !ok {
		j.logger.Warn("previous delivery cycle still running, skipping tick")
		return false, nil
	}
	defer j.finish(done)

	if j.ctx.Err() != nil {
		return false, nil
	}

	ctx := j.ctx
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	stats, err := j.runner.RunCycle(ctx)
	if err != nil {
		return true, err
	}

	if stats.Selected > 0 || stats.Paused {
		j.logger.Info("delivery cycle done",
			"paused", stats.Paused,
			"selected", stats.Selected,
			"posted", stats.Posted,
			"retrying", stats.Retrying,
			"failed", stats.Failed,
			"took", time.Since(start),
		)
	}
	return true, nil
}

func (j *DeliveryJob) start() (chan struct{}, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done != nil {
		return nil, false
	}
	j.done = make(chan struct{})
	return j.done, true
}

func (j *DeliveryJob) finish(done chan struct{}) {
	j.mu.Lock()
	j.done = nil
	j.mu.Unlock()
	close(done)
}

// Drain waits for an in-flight cycle to finish. It reports false when the
// cycle is still running after timeout.
func (j *DeliveryJob) Drain(timeout time.Duration) bool {
	j.mu.Lock()
	done := j.done
	j.mu.Unlock()

	if done == nil {
		return true
	}

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
