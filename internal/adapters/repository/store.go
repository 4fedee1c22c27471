// Package repository holds the last successfully built export snapshot.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/export"
)

// Snapshot is the immutable result of one successful export cycle.
type Snapshot struct {
	ID            uuid.UUID
	CompetitionID int
	Races         []export.Race
	// JSON is the compact encoding of Races served to live displays.
	JSON        []byte
	RaceCount   int
	LaneCount   int
	BuiltAt     time.Time
	Duration    time.Duration
	PublishedAt time.Time
}

// Store publishes snapshots to concurrent readers.
type Store interface {
	// Publish replaces the current snapshot. The snapshot must not be
	// modified afterwards.
	Publish(ctx context.Context, s *Snapshot) error

	// Current returns the latest snapshot or ErrNotFound before the first publish.
	Current(ctx context.Context) (*Snapshot, error)

	// Count returns how many snapshots have been published.
	Count(ctx context.Context) int
}
