package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
)

type snapshotStatus struct {
	ID            string    `json:"id"`
	CompetitionID int       `json:"competitionId"`
	Races         int       `json:"races"`
	Lanes         int       `json:"lanes"`
	BuiltAt       time.Time `json:"builtAt"`
	PublishedAt   time.Time `json:"publishedAt"`
	DurationMs    int64     `json:"durationMs"`
}

type cycleStatus struct {
	Runs       int        `json:"runs"`
	Failures   int        `json:"failures"`
	Running    bool       `json:"running"`
	LastRunAt  *time.Time `json:"lastRunAt,omitempty"`
	LastError  string     `json:"lastError,omitempty"`
	NextRunDue *time.Time `json:"nextRunDue,omitempty"`
}

type statusResponse struct {
	Snapshot *snapshotStatus `json:"snapshot"`
	Cycles   *cycleStatus    `json:"cycles,omitempty"`
}

// StatusHandler reports on the last snapshot and cycle.
type StatusHandler struct {
	snapshots SnapshotReader
	refresher Refresher
}

// NewStatusHandler creates a new status handler. refresher may be nil.
func NewStatusHandler(snapshots SnapshotReader, refresher Refresher) *StatusHandler {
	return &StatusHandler{snapshots: snapshots, refresher: refresher}
}

// HandleStatus handles GET /status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	var resp statusResponse
	snap, err := h.snapshots.Current(r.Context())
	switch {
	case err == nil:
		resp.Snapshot = &snapshotStatus{
			ID:            snap.ID.String(),
			CompetitionID: snap.CompetitionID,
			Races:         snap.RaceCount,
			Lanes:         snap.LaneCount,
			BuiltAt:       snap.BuiltAt,
			PublishedAt:   snap.PublishedAt,
			DurationMs:    snap.Duration.Milliseconds(),
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	if h.refresher != nil {
		st := h.refresher.Status()
		cs := &cycleStatus{Runs: st.Runs, Failures: st.Failures, Running: st.Running}
		if !st.LastRunAt.IsZero() {
			cs.LastRunAt = &st.LastRunAt
			cs.NextRunDue = &st.NextRunDue
		}
		if st.LastError != nil {
			cs.LastError = st.LastError.Error()
		}
		resp.Cycles = cs
	}

	writeJSON(w, http.StatusOK, resp)
}
