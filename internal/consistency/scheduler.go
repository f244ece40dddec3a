package consistency

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"crossborder-cloud/internal/observability/metrics"
)

// CheckRunner runs one consistency pass.
type CheckRunner interface {
	Check(ctx context.Context) (float64, error)
}

// Scheduler reruns the consistency check on a fixed cadence. Check
// failures are logged and counted, never fatal.
type Scheduler struct {
	runner   CheckRunner
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler constructs a Scheduler.
func NewScheduler(runner CheckRunner, interval time.Duration, logger *log.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, errors.New("consistency scheduler: nil runner")
	}
	if interval <= 0 {
		return nil, errors.New("consistency scheduler: interval must be positive")
	}
	return &Scheduler{runner: runner, interval: interval, logger: logger}, nil
}

// Start begins the scheduler loop. Calling Start on a running
// scheduler is a no-op. The loop stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	if _, err := s.runner.Check(ctx); err != nil {
		metrics.ObserveConsistency(metrics.ResultError, time.Since(start))
		if s.logger != nil {
			s.logger.Printf("consistency check error: %v", err)
		}
		return
	}
	metrics.ObserveConsistency(metrics.ResultSuccess, time.Since(start))
}
