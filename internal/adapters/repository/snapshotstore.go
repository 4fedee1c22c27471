package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/pkg/metrics"
)

// SnapshotStore keeps the current snapshot behind an atomic pointer so
// readers never block the writer and never see a partly built value.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
	count   atomic.Int64
	now     func() time.Time
}

var _ Store = (*SnapshotStore)(nil)

// NewSnapshotStore returns an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish implements Store.
func (s *SnapshotStore) Publish(_ context.Context, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}
	snap.PublishedAt = s.now()
	s.current.Store(snap)
	s.count.Add(1)
	metrics.RecordSnapshotPublished(snap.RaceCount, snap.LaneCount)
	return nil
}

// Current implements Store.
func (s *SnapshotStore) Current(_ context.Context) (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotFound
	}
	return snap, nil
}

// Count implements Store.
func (s *SnapshotStore) Count(_ context.Context) int {
	return int(s.count.Load())
}
