// apps/solver/cmd_serve.go
//
// `solver serve`: loads the corpus, opens and migrates SQLite, warms the
// opening ranking in the background and serves the HTTP API until SIGINT or
// SIGTERM. Shutdown drains requests and stops background simulations.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/database"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := withSignals(cmd)
	defer stop()

	corpus, err := openCorpus()
	if err != nil {
		log.Error().Err(err).Msg("failed to load word list")
		return err
	}

	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
		return err
	}
	defer db.Close()

	// Rank the opening table up front so the first request doesn't pay for it.
	go func() {
		if _, err := corpus.InitialTable(); err != nil {
			log.Error().Err(err).Msg("initial ranking")
		}
	}()

	srv := httpserver.New(cfg, corpus, store.NewMemoryStore(), db)
	if cfg.AdminPasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH not set; admin routes disabled")
	}
	log.Info().Str("port", cfg.Port).Int("words", corpus.Len()).Msg("starting solver server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
