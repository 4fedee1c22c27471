package scheduler

import (
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between scheduled cycles.
func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithName sets the scheduler name for identification and logging.
func WithName(name string) Option {
	return func(s *Scheduler) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
