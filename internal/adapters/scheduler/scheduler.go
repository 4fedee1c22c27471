// Package scheduler runs export cycles on a timer and on demand, never more
// than one at a time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/metrics"
)

const defaultInterval = 60 * time.Second

// Runner performs one cycle.
type Runner interface {
	RunOnce(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

// RunOnce implements Runner.
func (f RunnerFunc) RunOnce(ctx context.Context) error { return f(ctx) }

// Status describes the most recent finished cycle.
type Status struct {
	Runs       int
	Failures   int
	LastRunAt  time.Time
	LastError  error
	LastTook   time.Duration
	Running    bool
	NextRunDue time.Time
}

// Scheduler invokes a Runner immediately on Run, then every interval and
// whenever Trigger is called. Cycles never overlap: a request made while a
// cycle is in flight is rejected with ErrBusy.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	name     string

	busy    atomic.Bool
	trigger chan struct{}

	mu     sync.Mutex
	status Status

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// New creates a scheduler for runner.
func New(runner Runner, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:   runner,
		interval: defaultInterval,
		name:     "scheduler",
		trigger:  make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named(s.name)
	return s
}

// Interval returns the time between scheduled cycles.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Run executes cycles until ctx is canceled or Shutdown is called.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.done)

	s.logger.Info(ctx, "scheduler started", logger.String("interval", s.interval.String()))
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case <-ticker.C:
			s.tick(ctx)
		case <-s.trigger:
			s.tick(ctx)
		}
	}
}

// Trigger asks the Run loop for an extra cycle. It fails with ErrBusy when a
// cycle is running or another request is already pending.
func (s *Scheduler) Trigger() error {
	select {
	case <-s.shutdown:
		return ErrStopped
	case <-s.done:
		return ErrStopped
	default:
	}
	if s.busy.Load() {
		metrics.RecordBusySkip()
		return ErrBusy
	}
	select {
	case s.trigger <- struct{}{}:
		return nil
	default:
		metrics.RecordBusySkip()
		return ErrBusy
	}
}

// RunOnce runs a cycle in the caller's goroutine unless one is in flight.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.RecordBusySkip()
		return ErrBusy
	}
	defer s.busy.Store(false)

	start := time.Now()
	err := s.runner.RunOnce(ctx)
	took := time.Since(start)

	s.mu.Lock()
	s.status.Runs++
	s.status.LastRunAt = start
	s.status.LastTook = took
	s.status.LastError = err
	if err != nil {
		s.status.Failures++
	}
	s.status.NextRunDue = start.Add(s.interval)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("cycle failed: %w", err)
	}
	return nil
}

// Status returns a copy of the latest cycle status.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := s.status
	s.mu.Unlock()
	st.Running = s.busy.Load()
	return st
}

// Shutdown stops the Run loop and waits for the cycle in flight to finish.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() { close(s.shutdown) })

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	err := s.RunOnce(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrBusy):
		s.logger.Debug(ctx, "cycle skipped, previous one still running")
	default:
		s.logger.Error(ctx, "scheduled cycle failed", logger.Error(err))
	}
}
