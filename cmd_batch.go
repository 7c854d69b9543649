// apps/solver/cmd_batch.go
//
// Whole-corpus commands:
//   - simulate:      solve every corpus word in parallel, print the guess
//                    histogram, optionally record the summary in SQLite.
//   - entropy:       rank the corpus once and write the CSV cache.
//   - hash-password: bcrypt value for ADMIN_PASSWORD_HASH.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/batch"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/database"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := withSignals(cmd)
	defer stop()
	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	pool, initial, err := corpus.Snapshot()
	if err != nil {
		return err
	}
	targets := pool
	if simLimit > 0 && simLimit < len(pool) {
		targets = pool[:simLimit].Clone()
	}
	workers := simWorkers
	if workers <= 0 {
		workers = cfg.SimWorkers
	}

	var results *daily.Store
	id := "cli-" + time.Now().UTC().Format("20060102T150405")
	if simRecord {
		db, err := database.OpenAndMigrate(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		results = daily.NewStore(db)
		if err := results.StartSimulation(ctx, id, len(pool)); err != nil {
			return fmt.Errorf("record simulation: %w", err)
		}
	}

	bar := progressbar.Default(int64(len(targets)), "solving")
	start := time.Now()
	rep, err := batch.Simulate(ctx, pool, initial, batch.Options{
		Workers:  workers,
		Targets:  targets,
		OnSolved: func(batch.Outcome) { _ = bar.Add(1) },
	})
	_ = bar.Finish()

	if results != nil {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		sim := daily.Simulation{
			ID:         id,
			Targets:    len(rep.Outcomes),
			Mean:       rep.Mean,
			MaxGuesses: rep.MaxGuesses,
			Failures:   rep.Failures,
			Histogram:  rep.Histogram,
		}
		// Store the outcome even when ctx was canceled by Ctrl-C.
		if ferr := results.FinishSimulation(context.WithoutCancel(ctx), sim, msg); ferr != nil {
			log.Error().Err(ferr).Str("sim", id).Msg("store simulation")
		}
	}
	if err != nil {
		return err
	}

	log.Info().Int("targets", len(targets)).Dur("took", time.Since(start)).Msg("simulation done")
	out := cmd.OutOrStdout()
	printReport(out, rep)
	if results != nil {
		fmt.Fprintf(out, "recorded as %s\n", id)
	}
	return nil
}

// printReport writes the guess-count histogram, summary line and failed targets.
func printReport(w io.Writer, rep batch.Report) {
	widest := 0
	for _, n := range rep.Histogram {
		widest = max(widest, n)
	}
	for _, k := range rep.Buckets() {
		fmt.Fprintf(w, "%2d %5d %s\n", k, rep.Histogram[k], render.Bar(rep.Histogram[k], widest, 50))
	}
	fmt.Fprintf(w, "\n%d words, mean %.4f guesses, worst %d, %d over %d\n",
		len(rep.Outcomes), rep.Mean, rep.MaxGuesses, rep.Failures, solver.FailAfter)
	for _, o := range rep.Outcomes {
		if o.Guesses > solver.FailAfter {
			fmt.Fprintf(w, "  %s (%d)\n", o.Target, o.Guesses)
		}
	}
}

func runEntropy(cmd *cobra.Command, _ []string) error {
	path := entropyOut
	if path == "" {
		path = cfg.EntropyFile
	}
	if path == "" {
		return errors.New("no output file: pass --out or set ENTROPY_FILE")
	}
	pool, err := words.Load(cfg.AnswersFile)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(pool)), "ranking")
	start := time.Now()
	tbl, err := solver.RankProgress(pool, func() { _ = bar.Add(1) })
	_ = bar.Finish()
	if err != nil {
		return err
	}
	if err := words.SaveTable(path, tbl); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("words", len(tbl)).Dur("took", time.Since(start)).Msg("entropy table written")

	out := cmd.OutOrStdout()
	for i, e := range tbl[:min(10, len(tbl))] {
		fmt.Fprintf(out, "%2d. %s %.4f\n", i+1, e.Word, e.Score)
	}
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	h, err := httpserver.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}
