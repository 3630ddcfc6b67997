package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/recommend"
	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/stats"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// HandleListCards returns the full study list.
func (h *Handlers) HandleListCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.All())
}

type addCardsRequest struct {
	Cards []struct {
		Tokens []string `json:"tokens"`
		Answer string   `json:"answer"`
	} `json:"cards"`
}

// HandleAddCards adds cards from the request body and returns the keys that
// were actually added.
func (h *Handlers) HandleAddCards(w http.ResponseWriter, r *http.Request) {
	var req addCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidates := make([]studylist.Candidate, 0, len(req.Cards))
	for _, card := range req.Cards {
		candidates = append(candidates, studylist.Candidate{
			Tokens: card.Tokens,
			Answer: card.Answer,
		})
	}

	added, err := h.store.AddCards(r.Context(), candidates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": added})
}

// HandleRemoveCard deletes a card by key.
func (h *Handlers) HandleRemoveCard(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.store.Remove(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"removed": key})
}

type reviewRequest struct {
	Key     string `json:"key"`
	Correct bool   `json:"correct"`
}

// HandleReview applies one review outcome and returns the updated record.
func (h *Handlers) HandleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.scheduler.Review(r.Context(), req.Key, req.Correct)
	if err != nil {
		if errors.Is(err, studylist.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	outcome := results.Incorrect
	if req.Correct {
		outcome = results.Correct
	}
	if err := h.results.Record(r.Context(), outcome); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type visitsRequest struct {
	Tokens []string `json:"tokens"`
}

// HandleRecordVisits increments visit counts for the submitted tokens.
func (h *Handlers) HandleRecordVisits(w http.ResponseWriter, r *http.Request) {
	var req visitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.visits.RecordVisits(r.Context(), req.Tokens); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.visits.All())
}

// HandleHourlyStats returns per-hour review accuracy.
func (h *Handlers) HandleHourlyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.HourlyAccuracy(h.results.Hourly()))
}

// HandleCalendarStats returns the study and added-word activity calendars.
func (h *Handlers) HandleCalendarStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"study": stats.StudyCalendar(h.results.Daily(), now),
		"added": stats.AddedCalendar(h.store.All(), h.index, now),
	})
}

// HandleCoverageStats returns per-level coverage against the frequency trie.
func (h *Handlers) HandleCoverageStats(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		writeJSON(w, http.StatusOK, []stats.LevelCoverage{})
		return
	}
	writeJSON(w, http.StatusOK, stats.Coverage(h.index, h.store.All(), h.visits.All()))
}

// HandleRecommendations returns suggested words to explore next.
func (h *Handlers) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	words := recommend.Recommend(h.index, h.visits.All(), h.cfg.Recommend.MinLevel, h.cfg.Recommend.MaxLevel)
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, words)
}

// HandleExport streams the study list in the plain-text interchange format.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := studylist.Export(w, h.store.All()); err != nil {
		log.Printf("failed to write export: %v", err)
	}
}
