// Package server exposes the study data over a JSON HTTP API so a browser
// front end can drive the same stores as the CLI.
package server

import (
	"fmt"
	"net/http"

	"github.com/mreichhoff/TrieLingual/internal/config"
	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/scheduler"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/trie"
	"github.com/mreichhoff/TrieLingual/internal/visits"
)

// Handlers wires every API route to the underlying stores.
type Handlers struct {
	cfg       *config.Config
	store     *studylist.Store
	scheduler *scheduler.Scheduler
	visits    *visits.Tracker
	results   *results.Log
	index     *trie.Index
}

// NewHandlers creates the handler set. index may be nil when no trie file is
// configured; the stats and recommendation routes then report empty data.
func NewHandlers(
	cfg *config.Config,
	store *studylist.Store,
	sched *scheduler.Scheduler,
	tracker *visits.Tracker,
	log *results.Log,
	index *trie.Index,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		store:     store,
		scheduler: sched,
		visits:    tracker,
		results:   log,
		index:     index,
	}
}

// NewServer builds the HTTP server with all API routes registered.
func NewServer(h *Handlers, bind string, port int) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/studylist", h.HandleListCards)
	mux.HandleFunc("POST /api/studylist", h.HandleAddCards)
	mux.HandleFunc("DELETE /api/studylist/{key}", h.HandleRemoveCard)
	mux.HandleFunc("POST /api/review", h.HandleReview)
	mux.HandleFunc("POST /api/visits", h.HandleRecordVisits)
	mux.HandleFunc("GET /api/stats/hourly", h.HandleHourlyStats)
	mux.HandleFunc("GET /api/stats/calendar", h.HandleCalendarStats)
	mux.HandleFunc("GET /api/stats/coverage", h.HandleCoverageStats)
	mux.HandleFunc("GET /api/recommendations", h.HandleRecommendations)
	mux.HandleFunc("GET /api/export", h.HandleExport)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: mux,
	}
}
