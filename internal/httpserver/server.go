// apps/solver/internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Solver endpoints: POST /solve, GET /distribution.
//   - Assist endpoints: POST /assist/new, POST /assist/feedback, DELETE /assist/{id}.
//   - Daily endpoints: mounted under /daily (routes_daily.go).
//   - Admin endpoints (JWT): /corpus/words, /simulate (routes_admin.go, auth.go).
//
// Notes:
//   - Every solve works on a private snapshot of the corpus; nothing a
//     request does narrows the pool another request sees.
//   - CORS is origin-aware and credentials-enabled.
//   - Start serves until its context is done, then drains requests and
//     cancels background simulations, which record themselves as failed.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Server bundles router, corpus, assist session store, and DB-backed stores.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	corpus   *words.Corpus
	sessions store.Store
	results  *daily.Store
	now      func() time.Time

	bgCtx  context.Context    // parent of background work
	stopBG context.CancelFunc // cancels bgCtx on shutdown
	bg     sync.WaitGroup     // background simulations
}

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, corpus *words.Corpus, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		corpus:   corpus,
		sessions: st,
		results:  daily.NewStore(db),
		now:      time.Now,
	}
	s.bgCtx, s.stopBG = context.WithCancel(context.Background())
	metrics.SetCorpusWords(corpus.Len())

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one debug line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/metrics", "POST /solve", "/distribution", "POST /assist/new",
				"POST /assist/feedback", "DELETE /assist/{id}", "/daily", "/daily/results", "POST /auth/token",
				"POST /corpus/words", "POST /simulate", "/simulate/{id}",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": s.corpus.Len()})
	})
	s.r.Handle("/metrics", promhttp.Handler())

	// --- solver ---
	s.r.Post("/solve", s.handleSolve)
	s.r.Get("/distribution", s.handleDistribution)
	s.r.Post("/assist/new", s.handleAssistNew)
	s.r.Post("/assist/feedback", s.handleAssistFeedback)
	s.r.Delete("/assist/{id}", s.handleAssistDelete)

	s.mountDaily(s.r)
	s.mountAdmin(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start listens on addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down:
// in-flight requests get shutdownTimeout to finish, background work is
// canceled and waited for.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = hs.Shutdown(shutdownCtx)
		cancel()
	}
	s.stopBG()
	s.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Wait blocks until background simulations have finished.
func (s *Server) Wait() { s.bg.Wait() }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and latency at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ SOLVE --------------------------------------

// solveReq/Res payloads for POST /solve.
type solveReq struct {
	Target string `json:"target"`
}
type solveRes struct {
	Target  string         `json:"target"`
	Guesses int            `json:"guesses"`
	Solved  bool           `json:"solved"` // within solver.FailAfter guesses
	History solver.History `json:"history"`
}

// handleSolve runs a full solve for the requested target against the corpus.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	target, err := solver.ParseWord(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pool, initial, err := s.corpus.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("corpus snapshot")
		writeError(w, http.StatusInternalServerError, "corpus_unavailable")
		return
	}
	n, hist, err := solver.Solve(pool, target, initial)
	metrics.ObserveSolve("api", n, err)
	if err != nil {
		s.solveFailed(w, target, err)
		return
	}
	log.Info().Str("target", target.String()).Int("guesses", n).Msg("solved")
	writeJSON(w, http.StatusOK, solveRes{
		Target: target.String(), Guesses: n, Solved: n <= solver.FailAfter, History: hist,
	})
}

// solveFailed maps solver errors to HTTP statuses.
func (s *Server) solveFailed(w http.ResponseWriter, target solver.Word, err error) {
	switch {
	case errors.Is(err, solver.ErrEmptyPool):
		// Expected when the target is not in the corpus.
		log.Warn().Err(err).Str("target", target.String()).Msg("solve ran out of candidates")
		writeError(w, http.StatusUnprocessableEntity, "no_candidates")
	case errors.Is(err, solver.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("target", target.String()).Msg("solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
	}
}

// distributionRes is returned by GET /distribution.
type distributionRes struct {
	Word    string          `json:"word"`
	Entropy float64         `json:"entropy"`
	Words   int             `json:"words"`
	Buckets []solver.Bucket `json:"buckets"`
}

// handleDistribution shows how a guess would split the full corpus.
func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	word, err := solver.ParseWord(r.URL.Query().Get("word"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pool := s.corpus.Pool()
	writeJSON(w, http.StatusOK, distributionRes{
		Word:    word.String(),
		Entropy: solver.Entropy(word, pool),
		Words:   len(pool),
		Buckets: solver.Buckets(word, pool),
	})
}

// ------------------------------ ASSIST -------------------------------------

// assistRes is returned by both assist endpoints.
type assistRes struct {
	ID         string       `json:"id"`
	State      solver.State `json:"state"`
	Guesses    int          `json:"guesses"`
	Remaining  int          `json:"remaining"`
	Suggestion string       `json:"suggestion,omitempty"`
	Score      float64      `json:"score"`
	Candidates []string     `json:"candidates,omitempty"` // only when few remain
}

const showCandidates = 10

// handleAssistNew opens a session over the whole corpus and suggests an opener.
func (s *Server) handleAssistNew(w http.ResponseWriter, r *http.Request) {
	pool, initial, err := s.corpus.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("corpus snapshot")
		writeError(w, http.StatusInternalServerError, "corpus_unavailable")
		return
	}
	sess := solver.NewSession(pool, initial)
	res, err := s.describe(genID(), sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.sessions.Save(r.Context(), res.ID, sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// assistFeedbackReq is the request payload for POST /assist/feedback.
type assistFeedbackReq struct {
	ID       string `json:"id"`
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"` // e.g. "gyxxg"
}

// handleAssistFeedback applies what the puzzle said about a guess and suggests the next one.
func (s *Server) handleAssistFeedback(w http.ResponseWriter, r *http.Request) {
	var req assistFeedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := solver.ParseWord(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fb, err := solver.ParseFeedback(req.Feedback)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var res assistRes
	err = s.sessions.Update(r.Context(), req.ID, func(sess *solver.Session) error {
		if _, err := sess.Apply(guess, fb); err != nil {
			return err
		}
		if sess.State() == solver.StateSolved {
			metrics.ObserveSolve("assist", sess.Guesses(), nil)
		}
		var derr error
		res, derr = s.describe(req.ID, sess)
		return derr
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, solver.ErrSessionSolved):
		writeError(w, http.StatusConflict, "already_solved")
	case errors.Is(err, solver.ErrEmptyPool):
		metrics.ObserveSolve("assist", 0, err)
		writeError(w, http.StatusUnprocessableEntity, "no_candidates")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleAssistDelete drops a session the client is done with.
func (s *Server) handleAssistDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// describe builds the assist response, ranking the session's pool if needed.
func (s *Server) describe(id string, sess *solver.Session) (assistRes, error) {
	res := assistRes{ID: id, State: sess.State(), Guesses: sess.Guesses(), Remaining: sess.Remaining()}
	if sess.State() == solver.StateSolved {
		return res, nil
	}
	start := time.Now()
	e, err := sess.Suggest()
	metrics.ObserveRank(time.Since(start))
	if err != nil {
		return res, err
	}
	res.Suggestion = e.Word.String()
	res.Score = e.Score
	if res.Remaining <= showCandidates {
		res.Candidates = sess.Candidates().Strings()
	}
	return res, nil
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// background runs fn on its own goroutine, tracked by Wait.
// fn's context is canceled when the server shuts down.
func (s *Server) background(fn func(ctx context.Context)) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		fn(s.bgCtx)
	}()
}
