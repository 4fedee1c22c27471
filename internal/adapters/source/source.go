// Package source extracts raw tables from the competition database through an
// ordered chain of extraction strategies.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/metrics"
)

// ErrTableRead is returned when no strategy could read a table.
var ErrTableRead = errors.New("table read failed")

// Strategy reads one table from location. Implementations must not depend on
// the platform they run on; platform choice is made by configuring the chain.
type Strategy interface {
	Name() string
	ReadTable(ctx context.Context, location, table string) ([]model.Row, error)
}

// Chain tries its strategies in order until one succeeds.
type Chain struct {
	strategies []Strategy
	logger     logger.Logger
}

var _ model.TableReader = (*Chain)(nil)

// Option applies a configuration option to the Chain.
type Option func(*Chain)

// WithLogger sets a custom logger for the chain.
func WithLogger(l logger.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChain builds a chain over strategies.
func NewChain(strategies []Strategy, opts ...Option) *Chain {
	c := &Chain{
		strategies: strategies,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadTable returns the rows of table from the first strategy that succeeds.
// A decode failure is returned as is: a different extractor would not fix a
// malformed value.
func (c *Chain) ReadTable(ctx context.Context, location, table string) ([]model.Row, error) {
	if len(c.strategies) == 0 {
		return nil, fmt.Errorf("%w: table %s: no strategies configured", ErrTableRead, table)
	}

	var errs []error
	for _, s := range c.strategies {
		start := time.Now()
		rows, err := s.ReadTable(ctx, location, table)
		if err == nil {
			metrics.RecordTableRead(table, s.Name(), len(rows), time.Since(start))
			c.logger.Debug(ctx, "table read",
				logger.String("table", table),
				logger.String("strategy", s.Name()),
				logger.Int("rows", len(rows)),
			)
			return rows, nil
		}
		if errors.Is(err, model.ErrFieldDecode) {
			return nil, err
		}
		metrics.RecordStrategyFailure(s.Name())
		c.logger.Warn(ctx, "strategy failed, trying next",
			logger.String("table", table),
			logger.String("strategy", s.Name()),
			logger.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return nil, fmt.Errorf("%w: table %s: %w", ErrTableRead, table, errors.Join(errs...))
}
