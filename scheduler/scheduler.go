// Package scheduler triggers price-check cycles on a fixed interval.
//
// Cycles never overlap: every cycle runs under a single RunLock, and ticks
// that fire while a cycle is still running are coalesced by the ticker.
package scheduler

import (
	"context"
	"time"

	"price-watcher/utils"
)

// DefaultInterval is used when Config.Interval is not positive.
const DefaultInterval = 10 * time.Second

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Config holds scheduler configuration.
type Config struct {
	Interval time.Duration
}

// Scheduler runs a Job immediately and then once per interval.
type Scheduler struct {
	interval time.Duration
	job      Job
	lock     *utils.RunLock
	logger   *utils.Logger
}

// New creates a Scheduler. lock may be shared with other callers of the
// same job so that manual runs queue behind scheduled ones.
func New(cfg Config, job Job, lock *utils.RunLock, logger *utils.Logger) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if lock == nil {
		lock = utils.NewRunLock()
	}
	return &Scheduler{interval: interval, job: job, lock: lock, logger: logger}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("[scheduler] Started, interval %v", s.interval)

	// Run once immediately.
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("[scheduler] Stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.lock.Run(ctx, s.job); err != nil {
		s.logger.Error("[scheduler] Cycle failed: %v", err)
	}
}
