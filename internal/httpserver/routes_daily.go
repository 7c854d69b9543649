// apps/solver/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes two endpoints under /daily:
//   - GET /daily          → solve today's puzzle (or ?puzzle=N / ?date=YYYY-MM-DD)
//   - GET /daily/results  → most recent recorded solves
//
// The puzzle number is days since 2021-06-19 and picks the N-th corpus word.
// Each puzzle is solved once and recorded; later requests read the record.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/results", s.handleDailyResults)
	})
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	daily.Result
	Solved   bool `json:"solved"`   // within solver.FailAfter guesses
	Recorded bool `json:"recorded"` // served from an earlier solve
}

// puzzleNumber resolves ?puzzle= or ?date=, defaulting to today.
func (s *Server) puzzleNumber(r *http.Request) (int, error) {
	q := r.URL.Query()
	if v := q.Get("puzzle"); v != "" {
		return strconv.Atoi(v)
	}
	if v := q.Get("date"); v != "" {
		return daily.ParseDate(v)
	}
	return daily.Number(s.now()), nil
}

// handleDaily returns the recorded solve for a puzzle, solving and recording it first if needed.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	n, err := s.puzzleNumber(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_puzzle")
		return
	}

	if rec, err := s.results.Result(r.Context(), n); err == nil {
		writeJSON(w, http.StatusOK, dailyRes{Result: rec, Solved: rec.Guesses <= solver.FailAfter, Recorded: true})
		return
	} else if !errors.Is(err, daily.ErrNotFound) {
		log.Error().Err(err).Int("puzzle", n).Msg("load daily result")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	pool, initial, err := s.corpus.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "corpus_unavailable")
		return
	}
	target, err := daily.Target(pool, n)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_puzzle")
		return
	}
	guesses, hist, err := solver.Solve(pool, target, initial)
	metrics.ObserveSolve("daily", guesses, err)
	if err != nil {
		s.solveFailed(w, target, err)
		return
	}

	rec := daily.Result{
		Puzzle:  n,
		Date:    daily.DateKey(daily.Date(n)),
		Target:  target.String(),
		Guesses: guesses,
		History: hist,
	}
	if err := s.results.InsertResult(r.Context(), rec); err != nil {
		log.Warn().Err(err).Int("puzzle", n).Msg("record daily result")
	}
	log.Info().Int("puzzle", n).Int("guesses", guesses).Msg("daily solved")
	writeJSON(w, http.StatusOK, dailyRes{Result: rec, Solved: guesses <= solver.FailAfter})
}

// handleDailyResults lists recorded solves, newest first (?limit=N, default 20).
func (s *Server) handleDailyResults(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}
