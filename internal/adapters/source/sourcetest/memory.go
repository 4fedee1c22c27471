// Package sourcetest provides an in-memory table source for tests.
package sourcetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// Memory serves tables held in memory, ignoring location. Tables not present
// fail like a missing table would. It satisfies source.Strategy.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]model.Row
}

// NewMemory returns a Memory source over tables.
func NewMemory(tables map[string][]model.Row) *Memory {
	if tables == nil {
		tables = make(map[string][]model.Row)
	}
	return &Memory{tables: tables}
}

// Name returns the strategy name used in logs and metrics.
func (m *Memory) Name() string { return "memory" }

// Set replaces the rows of table.
func (m *Memory) Set(table string, rows []model.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = rows
}

// ReadTable returns a copy of the rows of table.
func (m *Memory) ReadTable(_ context.Context, _, table string) ([]model.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %s not found", table)
	}
	out := make([]model.Row, len(rows))
	copy(out, rows)
	return out, nil
}
