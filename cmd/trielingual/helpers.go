package main

import (
	"context"
	"fmt"

	"github.com/mreichhoff/TrieLingual/internal/config"
	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/storage"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/trie"
	"github.com/mreichhoff/TrieLingual/internal/visits"
)

// app bundles the initialized stores every command works against.
type app struct {
	cfg     *config.Config
	storage *storage.SQLStore
	store   *studylist.Store
	visits  *visits.Tracker
	results *results.Log
	index   *trie.Index
}

// newApp loads configuration, opens storage, and initializes the per-language
// stores. The trie index is optional; commands that need it check for nil.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.Load() > %w", err)
	}

	st, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}

	notifier := notify.New()

	store := studylist.NewStore(st, notifier, cfg.Language)
	if err := store.Initialize(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("store.Initialize() > %w", err)
	}

	tracker := visits.NewTracker(st, notifier, cfg.Language)
	if err := tracker.Initialize(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("tracker.Initialize() > %w", err)
	}

	log := results.NewLog(st, notifier, cfg.Language)
	if err := log.Initialize(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("log.Initialize() > %w", err)
	}

	var index *trie.Index
	if cfg.Trie.Path != "" {
		index, err = trie.Load(cfg.Trie.Path)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("trie.Load(%s) > %w", cfg.Trie.Path, err)
		}
	}

	return &app{
		cfg:     cfg,
		storage: st,
		store:   store,
		visits:  tracker,
		results: log,
		index:   index,
	}, nil
}

func (a *app) Close() error {
	return a.storage.Close()
}
