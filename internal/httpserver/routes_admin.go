// apps/solver/internal/httpserver/routes_admin.go
//
// Admin routes, all behind a JWT from POST /auth/token:
//   - POST /corpus/words  → add a newly revealed answer to the corpus
//   - POST /simulate      → start a batch run in the background
//   - GET  /simulate/{id} → stored summary of a run (public)

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/batch"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// mountAdmin registers token issuance and the gated routes.
func (s *Server) mountAdmin(r chi.Router) {
	r.Post("/auth/token", s.handleToken)
	r.With(s.requireAuth()).Post("/corpus/words", s.handleAddWord)
	r.With(s.requireAuth()).Post("/simulate", s.handleSimulate)
	r.Get("/simulate/{id}", s.handleSimulation)
}

type addWordReq struct {
	Word string `json:"word"`
}

type addWordRes struct {
	Word  string `json:"word"`
	Added bool   `json:"added"`
	Words int    `json:"words"`
}

// handleAddWord appends a word to the corpus (no-op if already present).
func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word, err := solver.ParseWord(req.Word)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	added, err := s.corpus.Add(word)
	if err != nil {
		log.Error().Err(err).Str("word", word.String()).Msg("add word")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	size := s.corpus.Len()
	metrics.SetCorpusWords(size)
	if added {
		log.Info().Str("word", word.String()).Int("words", size).Msg("corpus word added")
	}
	writeJSON(w, http.StatusOK, addWordRes{Word: word.String(), Added: added, Words: size})
}

type simulateReq struct {
	Limit int `json:"limit"` // solve only the first N corpus words; 0 = all
}

// handleSimulate records a run and solves in the background.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	pool, initial, err := s.corpus.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "corpus_unavailable")
		return
	}
	targets := pool
	if req.Limit > 0 && req.Limit < len(pool) {
		targets = pool[:req.Limit].Clone()
	}

	id := genID()
	if err := s.results.StartSimulation(r.Context(), id, len(pool)); err != nil {
		log.Error().Err(err).Msg("start simulation")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	s.background(func(ctx context.Context) {
		rep, err := batch.Simulate(ctx, pool, initial, batch.Options{
			Workers:  s.cfg.SimWorkers,
			Targets:  targets,
			OnSolved: func(o batch.Outcome) { metrics.ObserveSolve("batch", o.Guesses, nil) },
		})
		sim := daily.Simulation{
			ID:         id,
			Targets:    len(rep.Outcomes),
			Mean:       rep.Mean,
			MaxGuesses: rep.MaxGuesses,
			Failures:   rep.Failures,
			Histogram:  rep.Histogram,
		}
		msg := ""
		if err != nil {
			msg = err.Error()
			log.Error().Err(err).Str("sim", id).Msg("simulation failed")
		} else {
			log.Info().Str("sim", id).Int("targets", sim.Targets).Float64("mean", sim.Mean).Msg("simulation done")
		}
		// ctx may already be canceled by shutdown; the outcome is stored regardless.
		if err := s.results.FinishSimulation(context.WithoutCancel(ctx), sim, msg); err != nil {
			log.Error().Err(err).Str("sim", id).Msg("store simulation")
		}
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": daily.SimRunning})
}

// handleSimulation returns a stored run.
func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := s.results.Simulation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, daily.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, sim)
}
