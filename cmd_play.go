// apps/solver/cmd_play.go
//
// Commands that play a single game:
//   - today:  solve the daily puzzle and print the "Wordle N k/6" share grid.
//   - solve:  solve for a known target, one colored row per guess.
//   - assist: read what the game said, line by line, and suggest the next guess.
//   - dist:   how one guess splits the corpus into feedback buckets.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// listCandidates is how few candidates assist waits for before listing them.
const listCandidates = 10

func runToday(cmd *cobra.Command, _ []string) error {
	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	n := daily.Number(time.Now())
	if todayDay >= 0 {
		n = todayDay
	}

	pool, initial, err := corpus.Snapshot()
	if err != nil {
		return err
	}
	target, err := daily.Target(pool, n)
	if err != nil {
		return err
	}
	guesses, hist, err := solver.Solve(pool, target, initial)
	if err != nil {
		return err
	}
	log.Debug().Int("puzzle", n).Str("target", target.String()).Int("guesses", guesses).Msg("daily solved")
	printShare(cmd.OutOrStdout(), n, guesses, hist, todayShowGuesses)
	return nil
}

// printShare writes the "Wordle N k/6" header and one emoji row per round.
func printShare(w io.Writer, n, guesses int, hist solver.History, showGuesses bool) {
	score := strconv.Itoa(guesses)
	if guesses > solver.FailAfter {
		score = "X"
	}
	fmt.Fprintf(w, "Wordle %d %s/%d\n\n", n, score, solver.FailAfter)
	for _, r := range hist {
		if showGuesses {
			fmt.Fprintf(w, "%s %s\n", render.Emoji(r.Feedback), strings.ToUpper(r.Guess.String()))
			continue
		}
		fmt.Fprintln(w, render.Emoji(r.Feedback))
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	target, err := solver.ParseWord(args[0])
	if err != nil {
		return err
	}
	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	pool, initial, err := corpus.Snapshot()
	if err != nil {
		return err
	}

	n, hist, err := solver.Solve(pool, target, initial)
	if errors.Is(err, solver.ErrEmptyPool) {
		return fmt.Errorf("%s is not in the word list (%d words): %w", target, len(pool), err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, r := range hist {
		fmt.Fprintf(out, "%d. %s  %s\n", i+1, render.Colored(r.Guess, r.Feedback), render.Emoji(r.Feedback))
	}
	fmt.Fprintf(out, "solved %s in %d\n", target, n)
	return nil
}

func runAssist(cmd *cobra.Command, _ []string) error {
	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	pool, initial, err := corpus.Snapshot()
	if err != nil {
		return err
	}
	return assist(cmd.InOrStdin(), cmd.OutOrStdout(), solver.NewSession(pool, initial))
}

// assist reads "[guess] feedback" lines and prints the next suggestion after each.
// Malformed lines are reported and skipped. It returns when the puzzle is
// solved, the input ends, or no candidate fits the feedback.
func assist(in io.Reader, out io.Writer, sess *solver.Session) error {
	next, err := sess.Suggest()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Best first guess: %s (%.3f bits, %d candidates)\n", next.Word, next.Score, sess.Remaining())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		var (
			guess solver.Word
			code  string
		)
		switch len(fields) {
		case 0:
			continue
		case 1:
			guess, code = next.Word, fields[0]
		case 2:
			if guess, err = solver.ParseWord(fields[0]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			code = fields[1]
		default:
			fmt.Fprintln(out, "expected: [guess] feedback")
			continue
		}
		fb, err := solver.ParseFeedback(code)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if _, err := sess.Apply(guess, fb); err != nil {
			return err
		}
		if sess.State() == solver.StateSolved {
			fmt.Fprintf(out, "Solved in %d: %s\n", sess.Guesses(), render.Colored(guess, fb))
			return nil
		}
		next, err = sess.Suggest()
		if errors.Is(err, solver.ErrEmptyPool) {
			return fmt.Errorf("no word fits that feedback: %w", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Next guess: %s (%.3f bits, %d candidates)\n", next.Word, next.Score, sess.Remaining())
		if sess.Remaining() <= listCandidates {
			fmt.Fprintf(out, "  %s\n", strings.Join(sess.Candidates().Strings(), " "))
		}
	}
	return sc.Err()
}

func runDist(cmd *cobra.Command, args []string) error {
	word, err := solver.ParseWord(args[0])
	if err != nil {
		return err
	}
	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	printDistribution(cmd.OutOrStdout(), word, corpus.Pool(), distTop)
	return nil
}

// printDistribution lists the top buckets of word's feedback distribution with bars.
func printDistribution(w io.Writer, word solver.Word, pool solver.Pool, top int) {
	buckets := solver.Buckets(word, pool)
	fmt.Fprintf(w, "%s: %.4f bits over %d words, %d buckets\n", word, solver.Entropy(word, pool), len(pool), len(buckets))
	if top > 0 && top < len(buckets) {
		buckets = buckets[:top]
	}
	if len(buckets) == 0 {
		return
	}
	widest := buckets[0].Count
	for _, b := range buckets {
		fmt.Fprintf(w, "%s %s %5d %s\n", render.Emoji(b.Feedback), b.Feedback, b.Count, render.Bar(b.Count, widest, 40))
	}
}
