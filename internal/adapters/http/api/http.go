// Package api serves the live view of the last exported races.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/scheduler"
)

// SnapshotReader exposes the last published snapshot.
type SnapshotReader interface {
	Current(ctx context.Context) (*repository.Snapshot, error)
}

// Refresher runs cycles on demand and reports on past ones.
type Refresher interface {
	Trigger() error
	Status() scheduler.Status
}

// Server wires HTTP routes for the live view.
type Server struct {
	racesHandler   *RacesHandler
	statusHandler  *StatusHandler
	refreshHandler *RefreshHandler
	healthHandler  *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(snapshots SnapshotReader, refresher Refresher) *Server {
	return &Server{
		racesHandler:   NewRacesHandler(snapshots),
		statusHandler:  NewStatusHandler(snapshots, refresher),
		refreshHandler: NewRefreshHandler(refresher),
		healthHandler:  NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/races", MetricsMiddleware(s.racesHandler.HandleGetRaces, "races"))
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
}
