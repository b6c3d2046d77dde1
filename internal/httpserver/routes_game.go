// internal/httpserver/routes_game.go
//
// Game endpoints: play against a hidden secret from the solver's dictionary.
//   - POST /game/new   → {"mode":"random"|"daily","answer":""} starts a game
//   - POST /game/guess → {"gameId","guess"} returns the feedback pattern
//
// Finished games are recorded in history (best effort). The secret is only
// revealed once the game is over.

package httpserver

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/auth"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// liveGame guards a game shared between requests.
type liveGame struct {
	mu   sync.Mutex
	game *session.Game
}

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
}

type newGameReq struct {
	Mode   string `json:"mode"`   // "random" | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}

type newGameRes struct {
	GameID   string `json:"gameId"`
	Date     string `json:"date,omitempty"`
	MaxSteps int    `json:"maxSteps"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var (
		secret words.WordID
		err    error
		date   string
	)
	switch {
	case req.Answer != "":
		var ok bool
		if secret, ok = s.solver.Dictionary().Lookup(req.Answer); !ok {
			writeError(w, http.StatusBadRequest, "not in word list")
			return
		}
	case req.Mode == "daily":
		now := time.Now()
		date = daily.DateKey(now)
		secret, err = session.DailySecret(s.solver, now, s.cfg.DailySalt)
	default:
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		secret, err = session.PickSecret(s.solver, rng, s.cfg.MinSecretFrequency)
	}
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	g, err := session.NewGame(s.solver, secret, maxGuesses(s.cfg.MaxSteps))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	id, err := s.games.Create(r.Context(), &liveGame{game: g})
	if err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: id, Date: date, MaxSteps: g.MaxSteps()})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Pattern string         `json:"pattern"`
	Digits  []int          `json:"digits"`
	State   session.Status `json:"state"` // "playing" | "won" | "lost"
	Guesses int            `json:"guesses"`
	Answer  string         `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lg, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	lg.mu.Lock()
	step, err := lg.game.GuessText(req.Guess)
	status := lg.game.Status()
	played := len(lg.game.Steps())
	secret := lg.game.Secret()
	lg.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	res := guessRes{
		Pattern: s.stepView(step).Pattern,
		Digits:  step.Pattern.Digits(s.solver.Length()),
		State:   status,
		Guesses: played,
	}
	if status != session.InProgress {
		res.Answer = mustText(s.solver.Dictionary(), secret)
		log.Info().
			Str("user", auth.Subject(r.Context())).
			Str("answer", res.Answer).
			Stringer("state", status).
			Int("guesses", played).
			Msg("game finished")
		s.recordRun(r.Context(), "game", res.Answer, played, status == session.Won)
		_ = s.games.Delete(r.Context(), req.GameID)
	}
	writeJSON(w, http.StatusOK, res)
}

// recordRun persists a finished game; failures are logged, not surfaced.
func (s *Server) recordRun(ctx context.Context, source, secret string, steps int, won bool) {
	if s.history == nil {
		return
	}
	_, err := s.history.Record(ctx, history.Run{
		Source:     source,
		WordLength: s.solver.Length(),
		Mask:       s.solver.Mask().String(),
		Secret:     secret,
		Steps:      steps,
		Won:        won,
	})
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("record run")
	}
}

// maxGuesses caps interactive games at six guesses unless configured lower.
func maxGuesses(configured int) int {
	if configured <= 0 || configured > 6 {
		return 6
	}
	return configured
}
