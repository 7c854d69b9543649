// apps/solver/internal/batch/batch.go
//
// Batch simulation: solve every target in a corpus and report the
// distribution of guess counts.
//
// Each session gets its own copy of the pool and of the round-0 table, so
// sessions never see each other's pruning. Past targets stay in the answer
// space; a word that was the answer yesterday is still a legal answer today.
//
// Sessions run in parallel on a bounded errgroup. The first session error
// cancels the rest and is returned.

package batch

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Options tunes a run. The zero value solves every pool word on GOMAXPROCS workers.
type Options struct {
	Workers int           // concurrent sessions; <= 0 means GOMAXPROCS
	Targets []solver.Word // defaults to the whole pool
	// OnSolved, if set, is called once per finished session from worker goroutines.
	OnSolved func(Outcome)
}

// Outcome is one finished session.
type Outcome struct {
	Target  solver.Word    `json:"target"`
	Guesses int            `json:"guesses"`
	History solver.History `json:"history"`
}

// Report aggregates a run.
type Report struct {
	Outcomes   []Outcome   `json:"outcomes"` // in target order
	Histogram  map[int]int `json:"histogram"`
	Mean       float64     `json:"mean"`
	MaxGuesses int         `json:"maxGuesses"`
	Failures   int         `json:"failures"` // sessions needing more than solver.FailAfter guesses
}

// Simulate runs one independent solve per target.
func Simulate(ctx context.Context, pool solver.Pool, initial solver.Table, opts Options) (Report, error) {
	targets := opts.Targets
	if targets == nil {
		targets = pool
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, target := range targets {
		if gctx.Err() != nil {
			break
		}
		i, target := i, target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, hist, err := solver.Solve(pool.Clone(), target, initial.Clone())
			if err != nil {
				return fmt.Errorf("batch: target %s: %w", target, err)
			}
			outcomes[i] = Outcome{Target: target, Guesses: n, History: hist}
			if opts.OnSolved != nil {
				opts.OnSolved(outcomes[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	return Summarize(outcomes), nil
}

// Summarize builds the histogram and statistics for a set of outcomes.
func Summarize(outcomes []Outcome) Report {
	r := Report{Outcomes: outcomes, Histogram: make(map[int]int)}
	total := 0
	for _, o := range outcomes {
		r.Histogram[o.Guesses]++
		total += o.Guesses
		if o.Guesses > r.MaxGuesses {
			r.MaxGuesses = o.Guesses
		}
		if o.Guesses > solver.FailAfter {
			r.Failures++
		}
	}
	if len(outcomes) > 0 {
		r.Mean = float64(total) / float64(len(outcomes))
	}
	return r
}

// Buckets returns the histogram keys in ascending order.
func (r Report) Buckets() []int {
	keys := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
