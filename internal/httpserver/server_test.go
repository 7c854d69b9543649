package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/database"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const adminPassword = "correct horse battery"

func testCorpus() solver.Pool {
	return solver.Pool{
		solver.MustWord("crane"), solver.MustWord("crate"), solver.MustWord("crone"),
		solver.MustWord("speed"), solver.MustWord("erase"), solver.MustWord("geese"),
		solver.MustWord("cigar"), solver.MustWord("rebut"),
	}
}

func newTestServer(t *testing.T, withAdmin bool) *Server {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)

	cfg := config.Config{JWTSecret: "test-secret", JWTExpiresDays: 1, ClientOrigin: "http://localhost:5173", SimWorkers: 2}
	if withAdmin {
		cfg.AdminPasswordHash, err = HashPassword(adminPassword)
		require.NoError(t, err)
	}
	srv := New(cfg, words.New(testCorpus()), store.NewMemoryStore(), db)
	t.Cleanup(func() {
		srv.Wait()
		db.Close()
	})
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	rec := do(t, srv, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"words":8}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, srv, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolve(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, http.MethodPost, "/solve", solveReq{Target: "CRONE"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[solveRes](t, rec)
	assert.Equal(t, "crone", res.Target)
	assert.True(t, res.Solved)
	require.Len(t, res.History, res.Guesses)
	assert.True(t, res.History[len(res.History)-1].Feedback.Solved())

	n, hist, err := solver.Solve(testCorpus(), solver.MustWord("crone"), nil)
	require.NoError(t, err)
	assert.Equal(t, n, res.Guesses)
	assert.Equal(t, hist, res.History)
}

func TestSolveErrors(t *testing.T) {
	srv := newTestServer(t, false)

	rec := do(t, srv, http.MethodPost, "/solve", solveReq{Target: "cran"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/solve", solveReq{Target: "zzzzz"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"no_candidates"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDistribution(t *testing.T) {
	srv := newTestServer(t, false)
	rec := do(t, srv, http.MethodGet, "/distribution?word=crane", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[distributionRes](t, rec)
	assert.Equal(t, 8, res.Words)
	total := 0
	for _, b := range res.Buckets {
		total += b.Count
	}
	assert.Equal(t, 8, total)
	assert.InDelta(t, solver.Entropy(solver.MustWord("crane"), testCorpus()), res.Entropy, 1e-12)

	rec = do(t, srv, http.MethodGet, "/distribution?word=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistFlow(t *testing.T) {
	srv := newTestServer(t, false)
	target := solver.MustWord("erase")

	rec := do(t, srv, http.MethodPost, "/assist/new", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[assistRes](t, rec)
	require.NotEmpty(t, res.ID)
	assert.Equal(t, solver.StateSearching, res.State)
	assert.Equal(t, 8, res.Remaining)

	for i := 0; res.State == solver.StateSearching; i++ {
		require.Less(t, i, 8, "assist did not converge")
		guess := solver.MustWord(res.Suggestion)
		rec = do(t, srv, http.MethodPost, "/assist/feedback", assistFeedbackReq{
			ID: res.ID, Guess: guess.String(), Feedback: solver.Evaluate(guess, target).String(),
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res = decode[assistRes](t, rec)
	}
	assert.Equal(t, solver.StateSolved, res.State)

	rec = do(t, srv, http.MethodPost, "/assist/feedback", assistFeedbackReq{ID: res.ID, Guess: "erase", Feedback: "ggggg"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, srv, http.MethodPost, "/assist/feedback", assistFeedbackReq{ID: "missing", Guess: "erase", Feedback: "ggggg"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/assist/"+res.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, srv.sessions.Len())
}

func TestAssistContradiction(t *testing.T) {
	srv := newTestServer(t, false)
	res := decode[assistRes](t, do(t, srv, http.MethodPost, "/assist/new", nil, ""))

	rec := do(t, srv, http.MethodPost, "/assist/feedback", assistFeedbackReq{ID: res.ID, Guess: "cigar", Feedback: "bogus"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Every letter of "eerie" absent rules out all words containing e, r or i.
	rec = do(t, srv, http.MethodPost, "/assist/feedback", assistFeedbackReq{ID: res.ID, Guess: "eerie", Feedback: "xxxxx"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDaily(t *testing.T) {
	srv := newTestServer(t, false)
	srv.now = func() time.Time { return daily.Date(2) }

	rec := do(t, srv, http.MethodGet, "/daily", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dailyRes](t, rec)
	assert.Equal(t, 2, res.Puzzle)
	assert.Equal(t, "2021-06-21", res.Date)
	assert.Equal(t, "crone", res.Target)
	assert.False(t, res.Recorded)

	rec = do(t, srv, http.MethodGet, "/daily?date=2021-06-21", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[dailyRes](t, rec)
	assert.True(t, again.Recorded)
	assert.Equal(t, res.History, again.History)

	rec = do(t, srv, http.MethodGet, "/daily?puzzle=99", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, srv, http.MethodGet, "/daily?puzzle=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/daily/results?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string][]daily.Result](t, rec)
	require.Len(t, list["results"], 1)
	assert.Equal(t, "crone", list["results"][0].Target)
}

func TestAdminDisabled(t *testing.T) {
	srv := newTestServer(t, false)
	rec := do(t, srv, http.MethodPost, "/auth/token", tokenReq{Password: "anything"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func adminToken(t *testing.T, srv *Server) string {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/auth/token", tokenReq{Password: adminPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenRes](t, rec).Token
}

func TestAddWord(t *testing.T) {
	srv := newTestServer(t, true)

	rec := do(t, srv, http.MethodPost, "/auth/token", tokenReq{Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/corpus/words", addWordReq{Word: "humph"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, srv, http.MethodPost, "/corpus/words", addWordReq{Word: "humph"}, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok := adminToken(t, srv)
	rec = do(t, srv, http.MethodPost, "/corpus/words", addWordReq{Word: "HUMPH"}, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, addWordRes{Word: "humph", Added: true, Words: 9}, decode[addWordRes](t, rec))

	rec = do(t, srv, http.MethodPost, "/corpus/words", addWordReq{Word: "humph"}, tok)
	assert.Equal(t, addWordRes{Word: "humph", Added: false, Words: 9}, decode[addWordRes](t, rec))

	rec = do(t, srv, http.MethodPost, "/solve", solveReq{Target: "humph"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSimulate(t *testing.T) {
	srv := newTestServer(t, true)
	tok := adminToken(t, srv)

	rec := do(t, srv, http.MethodPost, "/simulate", simulateReq{Limit: 5}, tok)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["id"]
	require.NotEmpty(t, id)

	srv.Wait()
	rec = do(t, srv, http.MethodGet, "/simulate/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	sim := decode[daily.Simulation](t, rec)
	assert.Equal(t, daily.SimDone, sim.Status)
	assert.Equal(t, 5, sim.Targets)
	assert.Equal(t, 8, sim.CorpusSize)
	assert.Greater(t, sim.Mean, 0.0)

	rec = do(t, srv, http.MethodGet, "/simulate/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeStopsWhenContextDone(t *testing.T) {
	srv := newTestServer(t, false)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stopped atomic.Bool
	srv.background(func(ctx context.Context) {
		<-ctx.Done()
		stopped.Store(true)
	})

	cancel()
	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve kept running after its context was canceled")
	}
	assert.True(t, stopped.Load(), "background work still running after Serve returned")
}

func TestSimulateInterruptedByShutdownIsRecordedFailed(t *testing.T) {
	srv := newTestServer(t, true)
	tok := adminToken(t, srv)
	srv.stopBG()

	rec := do(t, srv, http.MethodPost, "/simulate", simulateReq{}, tok)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["id"]

	srv.Wait()
	rec = do(t, srv, http.MethodGet, "/simulate/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	sim := decode[daily.Simulation](t, rec)
	assert.Equal(t, daily.SimFailed, sim.Status)
	assert.Contains(t, sim.Error, context.Canceled.Error())
	assert.NotEmpty(t, sim.FinishedAt)
}
