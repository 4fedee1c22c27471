package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSnapshotStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	if _, err := store.Current(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if err := store.Publish(ctx, nil); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestSnapshotStore_Publish(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)
	store := NewSnapshotStore(WithClock(func() time.Time { return fixed }))

	first := &Snapshot{ID: uuid.New(), CompetitionID: 7, RaceCount: 2, LaneCount: 4, JSON: []byte("[]\n")}
	if err := store.Publish(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != first {
		t.Error("expected the published snapshot")
	}
	if !got.PublishedAt.Equal(fixed) {
		t.Errorf("expected PublishedAt %v, got %v", fixed, got.PublishedAt)
	}

	second := &Snapshot{ID: uuid.New(), CompetitionID: 7}
	if err := store.Publish(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = store.Current(ctx)
	if got.ID != second.ID {
		t.Errorf("expected snapshot %s, got %s", second.ID, got.ID)
	}
	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestSnapshotStore_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	const (
		writes  = 200
		readers = 8
	)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap, err := store.Current(ctx)
				if errors.Is(err, ErrNotFound) {
					continue
				}
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				// Every published snapshot is complete: lane count matches its races.
				if snap.LaneCount != snap.RaceCount*2 {
					t.Errorf("partial snapshot observed: races=%d lanes=%d", snap.RaceCount, snap.LaneCount)
					return
				}
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		if err := store.Publish(ctx, &Snapshot{ID: uuid.New(), RaceCount: i, LaneCount: i * 2}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	close(stop)
	wg.Wait()

	if count := store.Count(ctx); count != writes {
		t.Errorf("expected count %d, got %d", writes, count)
	}
}
