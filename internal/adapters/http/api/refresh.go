package api

import (
	"errors"
	"net/http"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/scheduler"
)

type refreshResponse struct {
	Status string `json:"status"`
}

// RefreshHandler requests an immediate export cycle.
type RefreshHandler struct {
	refresher Refresher
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(refresher Refresher) *RefreshHandler {
	return &RefreshHandler{refresher: refresher}
}

// HandleRefresh handles POST /refresh.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if h.refresher == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", scheduler.ErrStopped)
		return
	}

	err := h.refresher.Trigger()
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, refreshResponse{Status: "accepted"})
	case errors.Is(err, scheduler.ErrBusy):
		writeError(w, http.StatusConflict, "busy", err)
	case errors.Is(err, scheduler.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
