package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/http/api"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/scheduler"
	. "github.com/smartystreets/goconvey/convey"
)

type mockSnapshots struct {
	snap *repository.Snapshot
	err  error
}

func (m *mockSnapshots) Current(context.Context) (*repository.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.snap == nil {
		return nil, repository.ErrNotFound
	}
	return m.snap, nil
}

type mockRefresher struct {
	err      error
	status   scheduler.Status
	triggers int
}

func (m *mockRefresher) Trigger() error {
	m.triggers++
	return m.err
}

func (m *mockRefresher) Status() scheduler.Status { return m.status }

func newMux(snaps api.SnapshotReader, refresher api.Refresher) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(snaps, refresher).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestRaces(t *testing.T) {
	Convey("Given no successful cycle yet", t, func() {
		mux := newMux(&mockSnapshots{}, &mockRefresher{})

		w := do(mux, http.MethodGet, "/races")

		Convey("Then an empty array should be served with CORS", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "[]\n")
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
		})
	})

	Convey("Given a published snapshot", t, func() {
		body := []byte(`[{"name":"1A","title":"1A - 500m  Open A (100m)","event":"1","heat":1,"track":100,"lanes":[]}]` + "\n")
		mux := newMux(&mockSnapshots{snap: &repository.Snapshot{JSON: body}}, &mockRefresher{})

		Convey("When requesting races", func() {
			w := do(mux, http.MethodGet, "/races")

			Convey("Then the snapshot JSON should be returned as is", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.Bytes(), ShouldResemble, body)
			})
		})

		Convey("When sending a preflight request", func() {
			w := do(mux, http.MethodOptions, "/races")

			Convey("Then GET should be allowed from any origin", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(w.Header().Get("Access-Control-Allow-Methods"), ShouldEqual, "GET")
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When posting to races", func() {
			w := do(mux, http.MethodPost, "/races")

			Convey("Then the method should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})

	Convey("Given a failing snapshot reader", t, func() {
		mux := newMux(&mockSnapshots{err: errors.New("disk gone")}, &mockRefresher{})

		w := do(mux, http.MethodGet, "/races")

		Convey("Then a server error should be returned", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "snapshot read failed")
		})
	})
}

func TestStatus(t *testing.T) {
	Convey("Given a snapshot and a failed last cycle", t, func() {
		id := uuid.New()
		at := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
		snaps := &mockSnapshots{snap: &repository.Snapshot{
			ID: id, CompetitionID: 7, RaceCount: 2, LaneCount: 4, Duration: 15 * time.Millisecond,
		}}
		refresher := &mockRefresher{status: scheduler.Status{
			Runs: 3, Failures: 1, LastRunAt: at, NextRunDue: at.Add(time.Minute), LastError: errors.New("no competition"),
		}}
		mux := newMux(snaps, refresher)

		w := do(mux, http.MethodGet, "/status")

		Convey("Then both should be reported", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp map[string]map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["snapshot"]["id"], ShouldEqual, id.String())
			So(resp["snapshot"]["competitionId"], ShouldEqual, 7.0)
			So(resp["snapshot"]["lanes"], ShouldEqual, 4.0)
			So(resp["snapshot"]["durationMs"], ShouldEqual, 15.0)
			So(resp["cycles"]["runs"], ShouldEqual, 3.0)
			So(resp["cycles"]["lastError"], ShouldEqual, "no competition")
			So(resp["cycles"]["lastRunAt"], ShouldEqual, "2024-02-10T09:00:00Z")
		})
	})

	Convey("Given nothing has run yet", t, func() {
		mux := newMux(&mockSnapshots{}, &mockRefresher{})

		w := do(mux, http.MethodGet, "/status")

		Convey("Then the snapshot should be null", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"snapshot":null`)
			So(w.Body.String(), ShouldNotContainSubstring, "lastRunAt")
		})
	})
}

func TestRefresh(t *testing.T) {
	Convey("Given an idle scheduler", t, func() {
		refresher := &mockRefresher{}
		mux := newMux(&mockSnapshots{}, refresher)

		Convey("When posting a refresh", func() {
			w := do(mux, http.MethodPost, "/refresh")

			Convey("Then it should be accepted", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(refresher.triggers, ShouldEqual, 1)
			})
		})

		Convey("When using GET", func() {
			w := do(mux, http.MethodGet, "/refresh")

			Convey("Then it should be rejected without triggering", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
				So(refresher.triggers, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a busy scheduler", t, func() {
		mux := newMux(&mockSnapshots{}, &mockRefresher{err: scheduler.ErrBusy})

		w := do(mux, http.MethodPost, "/refresh")

		Convey("Then a conflict should be returned", func() {
			So(w.Code, ShouldEqual, http.StatusConflict)
			So(w.Body.String(), ShouldContainSubstring, `"code":"busy"`)
		})
	})

	Convey("Given a stopped scheduler", t, func() {
		mux := newMux(&mockSnapshots{}, &mockRefresher{err: scheduler.ErrStopped})

		w := do(mux, http.MethodPost, "/refresh")

		Convey("Then the service should be unavailable", func() {
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestHealthAndMetrics(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newMux(&mockSnapshots{}, &mockRefresher{})
		do(mux, http.MethodGet, "/races")

		Convey("Then /healthz should report ok", func() {
			w := do(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then /metrics should expose request counters", func() {
			w := do(mux, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.Contains(w.Body.String(), "gcpv_lynx_http_requests_total"), ShouldBeTrue)
		})
	})
}
