package solver

import (
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Open loads the configured dictionary and prepares a solver for it.
func Open(cfg config.Config, progress func(done, total int)) (*Solver, error) {
	dict, err := words.Open(cfg.WordsPath(), cfg.WordLength)
	if err != nil {
		return nil, err
	}
	return New(dict, Options{
		Mask:      words.ParseMask(cfg.Mask, cfg.WordLength),
		CachePath: cfg.CachePath(),
		LoadCache: cfg.LoadCache,
		SaveCache: cfg.SaveCache,
		Workers:   cfg.Workers,
		Progress:  progress,
	})
}
