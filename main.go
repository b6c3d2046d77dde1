// main.go
//
// Entry point for the solver HTTP service.
// Loads configuration, builds (or loads) the pattern matrix, opens the run
// history, and serves the API.

package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/auth"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	sv, err := solver.Open(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise solver")
	}

	hist, err := history.Open(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("history disabled")
		hist = nil
	} else {
		defer hist.Close()
	}

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Solver:   sv,
		Sessions: store.NewMemoryStore[*session.Session](),
		History:  hist,
		Auth:     auth.New(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.JWTTTL()),
	})
	log.Info().Str("port", cfg.Port).Int("words", sv.Dictionary().Len()).Msg("starting wordle-solver")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
