package source

import (
	"context"
	"sync"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// CycleCache memoizes table reads for the lifetime of one export cycle.
// Create a new one per cycle; it never expires entries.
type CycleCache struct {
	next model.TableReader

	mu     sync.Mutex
	tables map[cacheKey][]model.Row
	reads  int
}

type cacheKey struct {
	location string
	table    string
}

// NewCycleCache wraps next.
func NewCycleCache(next model.TableReader) *CycleCache {
	return &CycleCache{
		next:   next,
		tables: make(map[cacheKey][]model.Row),
	}
}

// ReadTable returns the cached rows of table, reading it on first use.
// Failures are not cached.
func (c *CycleCache) ReadTable(ctx context.Context, location, table string) ([]model.Row, error) {
	key := cacheKey{location: location, table: table}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rows, ok := c.tables[key]; ok {
		return rows, nil
	}
	rows, err := c.next.ReadTable(ctx, location, table)
	if err != nil {
		return nil, err
	}
	c.reads++
	c.tables[key] = rows
	return rows, nil
}

// Reads returns how many tables were fetched from the wrapped reader.
func (c *CycleCache) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
