// cmd/solve/main.go
//
// Terminal front end for the solver.
//
// Usage:
//
//	solve [flags] play              interactive resolver: type your guess and the feedback you got
//	solve [flags] game              guess a hidden word chosen by the solver
//	solve [flags] simulate [-all|-word W|-daily] [-n N] [-seed S]
//	solve hashpw PASSWORD           print a bcrypt hash for ADMIN_PASSWORD_HASH
//
// Flags override the environment/.env/CONFIG_FILE configuration.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/auth"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	flag.IntVar(&cfg.WordLength, "len", cfg.WordLength, "word length")
	flag.StringVar(&cfg.Mask, "mask", cfg.Mask, "letter mask, e.g. \"A....\" or \"..e..\"")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "directory holding word lists and pattern caches")
	flag.BoolVar(&cfg.LoadCache, "cache-load", cfg.LoadCache, "load the pattern cache when present")
	flag.BoolVar(&cfg.SaveCache, "cache-save", cfg.SaveCache, "save the pattern cache after building it")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers for matrix builds and scoring")
	flag.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")
	flag.Usage = usage
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	args := flag.Args()
	cmd := "play"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	if cmd == "hashpw" {
		if err := hashPassword(args); err != nil {
			log.Fatal().Err(err).Msg("hashpw")
		}
		return
	}

	sv, err := openSolver(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise solver")
	}

	switch cmd {
	case "play":
		err = runPlay(sv, cfg, os.Stdin, os.Stdout)
	case "game":
		err = runGame(sv, cfg, os.Stdin, os.Stdout)
	case "simulate":
		err = runSimulate(sv, cfg, args, os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("failed")
	}
}

// openSolver builds the solver, drawing a progress bar while the pattern
// matrix is computed.
func openSolver(cfg config.Config) (*solver.Solver, error) {
	var bar *progressbar.ProgressBar
	return solver.Open(cfg, func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "patterns")
		}
		_ = bar.Set(done)
	})
}

func hashPassword(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: solve hashpw PASSWORD")
	}
	h, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Println(h)
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] play|game|simulate|hashpw [args]\n", os.Args[0])
	flag.PrintDefaults()
}
