package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
)

// emptyRaces is served before the first successful cycle.
var emptyRaces = []byte("[]\n")

// RacesHandler serves the races of the last snapshot.
type RacesHandler struct {
	snapshots SnapshotReader
}

// NewRacesHandler creates a new races handler.
func NewRacesHandler(snapshots SnapshotReader) *RacesHandler {
	return &RacesHandler{snapshots: snapshots}
}

// HandleGetRaces handles GET /races. Any origin may read it.
func (h *RacesHandler) HandleGetRaces(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "GET")
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		methodNotAllowed(w, "GET, HEAD, OPTIONS")
		return
	}

	body := emptyRaces
	snap, err := h.snapshots.Current(r.Context())
	switch {
	case err == nil:
		body = snap.JSON
	case errors.Is(err, repository.ErrNotFound):
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %w", ErrSnapshotRead, err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
