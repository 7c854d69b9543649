// apps/solver/commands.go
//
// Command tree for the solver binary.
//
//   solver serve                 HTTP API (see internal/httpserver)
//   solver today [--day N]       solve the daily puzzle, print the share grid
//   solver solve WORD            solve for a known target
//   solver assist                interactive helper: type what the game said
//   solver dist WORD             how WORD splits the corpus
//   solver simulate              solve every corpus word, print the histogram
//   solver entropy --out FILE    precompute the round-0 entropy cache
//   solver hash-password PW      bcrypt hash for ADMIN_PASSWORD_HASH

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	cfg config.Config

	answersFile string
	entropyFile string

	todayDay         int
	todayShowGuesses bool
	distTop          int
	simWorkers       int
	simLimit         int
	simRecord        bool
	entropyOut       string
)

var (
	rootCmd = &cobra.Command{
		Use:   "solver",
		Short: "Entropy-based Wordle solver",
		Long: `Picks each guess by how evenly it splits the remaining candidates,
then narrows the candidates with the feedback until one word is left.`,
		SilenceUsage: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	todayCmd = &cobra.Command{
		Use:   "today",
		Short: "Solve today's puzzle and print the share grid",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
	solveCmd = &cobra.Command{
		Use:   "solve WORD",
		Short: "Solve for a known target",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	assistCmd = &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a game you are playing",
		Long: `Reads one line per round: the guess you played and the feedback, e.g.

    crane xgyxx

Feedback letters: g/c/2 = correct, y/p/1 = present, x/b/0/-/. = absent.
A line with only the feedback applies it to the last suggestion.`,
		Args: cobra.NoArgs,
		RunE: runAssist,
	}
	distCmd = &cobra.Command{
		Use:   "dist WORD",
		Short: "Show how WORD splits the corpus into feedback buckets",
		Args:  cobra.ExactArgs(1),
		RunE:  runDist,
	}
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Solve every corpus word and report the guess distribution",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	entropyCmd = &cobra.Command{
		Use:   "entropy",
		Short: "Rank the whole corpus and write the entropy cache",
		Args:  cobra.NoArgs,
		RunE:  runEntropy,
	}
	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashPassword,
	}
)

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&answersFile, "answers", "", "word list file (overrides WORDS_ANSWERS_FILE; embedded list when both empty)")
	rootCmd.PersistentFlags().StringVar(&entropyFile, "entropy", "", "entropy cache CSV (overrides ENTROPY_FILE)")

	todayCmd.Flags().IntVar(&todayDay, "day", -1, "puzzle number instead of today's")
	todayCmd.Flags().BoolVar(&todayShowGuesses, "show-guesses", false, "print the guessed words next to the grid")

	distCmd.Flags().IntVar(&distTop, "top", 20, "number of buckets to print (0 = all)")

	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "concurrent sessions (default SIM_WORKERS or GOMAXPROCS)")
	simulateCmd.Flags().IntVar(&simLimit, "limit", 0, "solve only the first N corpus words")
	simulateCmd.Flags().BoolVar(&simRecord, "record", false, "store the summary in the database (DB_PATH)")

	entropyCmd.Flags().StringVarP(&entropyOut, "out", "o", "", "output CSV (default ENTROPY_FILE)")

	rootCmd.AddCommand(serveCmd, todayCmd, solveCmd, assistCmd, distCmd, simulateCmd, entropyCmd, hashPasswordCmd)
}

// setup loads configuration and configures the global logger.
// serve keeps zerolog's JSON output; everything else logs to a console writer.
func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Load()
	if answersFile != "" {
		cfg.AnswersFile = answersFile
	}
	if entropyFile != "" {
		cfg.EntropyFile = entropyFile
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cmd != serveCmd {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// openCorpus loads the configured corpus.
func openCorpus() (*words.Corpus, error) {
	return words.Open(cfg.AnswersFile, cfg.EntropyFile)
}

// withSignals returns cmd's context, canceled on SIGINT or SIGTERM.
func withSignals(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
