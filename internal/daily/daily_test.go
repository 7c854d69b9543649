package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/database"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, 0, Number(Epoch))
	assert.Equal(t, 1, Number(time.Date(2021, 6, 20, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 196, Number(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Local calendar date decides, not the UTC instant.
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, 1, Number(time.Date(2021, 6, 20, 1, 0, 0, 0, tokyo)))

	for _, n := range []int{0, 1, 365, 1000} {
		assert.Equal(t, n, Number(Date(n)))
	}
}

func TestParseDate(t *testing.T) {
	n, err := ParseDate("2021-06-29")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	_, err = ParseDate("29/06/2021")
	assert.Error(t, err)
}

func TestTarget(t *testing.T) {
	pool := solver.Pool{solver.MustWord("cigar"), solver.MustWord("rebut")}
	w, err := Target(pool, 1)
	require.NoError(t, err)
	assert.Equal(t, "rebut", w.String())

	_, err = Target(pool, 2)
	assert.ErrorIs(t, err, ErrNoPuzzle)
	_, err = Target(pool, -1)
	assert.ErrorIs(t, err, ErrNoPuzzle)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestStoreResults(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	hist := solver.History{
		{Guess: solver.MustWord("crane"), Feedback: solver.Feedback{solver.Correct, solver.Absent, solver.Absent, solver.Absent, solver.Absent}},
		{Guess: solver.MustWord("cigar"), Feedback: solver.AllCorrect},
	}
	require.NoError(t, st.InsertResult(ctx, Result{Puzzle: 0, Date: "2021-06-19", Target: "cigar", Guesses: 2, History: hist}))
	require.NoError(t, st.InsertResult(ctx, Result{Puzzle: 1, Date: "2021-06-20", Target: "rebut", Guesses: 3, History: solver.History{}}))
	// Second insert for the same puzzle is ignored.
	require.NoError(t, st.InsertResult(ctx, Result{Puzzle: 0, Date: "2021-06-19", Target: "cigar", Guesses: 9, History: hist}))

	r, err := st.Result(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Guesses)
	assert.Equal(t, hist, r.History)
	assert.NotEmpty(t, r.CreatedAt)

	_, err = st.Result(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	recent, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 1, recent[0].Puzzle)
}

func TestStoreSimulations(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	require.NoError(t, st.StartSimulation(ctx, "run1", 500))
	sim, err := st.Simulation(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, SimRunning, sim.Status)
	assert.Equal(t, 500, sim.CorpusSize)

	require.NoError(t, st.FinishSimulation(ctx, Simulation{
		ID: "run1", Targets: 3, Mean: 3.0, MaxGuesses: 4, Histogram: map[int]int{2: 1, 3: 1, 4: 1},
	}, ""))
	sim, err = st.Simulation(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, SimDone, sim.Status)
	assert.Equal(t, map[int]int{2: 1, 3: 1, 4: 1}, sim.Histogram)
	assert.NotEmpty(t, sim.FinishedAt)

	assert.ErrorIs(t, st.FinishSimulation(ctx, Simulation{ID: "nope"}, "boom"), ErrNotFound)
	_, err = st.Simulation(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
