package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mreichhoff/TrieLingual/internal/config"
	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/scheduler"
	"github.com/mreichhoff/TrieLingual/internal/server"
	"github.com/mreichhoff/TrieLingual/internal/storage"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/trie"
	"github.com/mreichhoff/TrieLingual/internal/visits"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("TRIELINGUAL_CONFIG"))
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}

	st, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage.Open() > %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	notifier := notify.New()

	store := studylist.NewStore(st, notifier, cfg.Language)
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("store.Initialize() > %w", err)
	}
	tracker := visits.NewTracker(st, notifier, cfg.Language)
	if err := tracker.Initialize(ctx); err != nil {
		return fmt.Errorf("tracker.Initialize() > %w", err)
	}
	resultLog := results.NewLog(st, notifier, cfg.Language)
	if err := resultLog.Initialize(ctx); err != nil {
		return fmt.Errorf("resultLog.Initialize() > %w", err)
	}

	var index *trie.Index
	if cfg.Trie.Path != "" {
		index, err = trie.Load(cfg.Trie.Path)
		if err != nil {
			log.Printf("Warning: failed to load trie: %v", err)
		}
	}

	handlers := server.NewHandlers(cfg, store, scheduler.New(store), tracker, resultLog, index)
	srv := server.NewServer(handlers, cfg.Server.Bind, cfg.Server.Port)

	log.Printf("Starting server on %s", srv.Addr)
	srv.Handler = corsMiddleware(h2c.NewHandler(srv.Handler, &http2.Server{}))
	return srv.ListenAndServe()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
