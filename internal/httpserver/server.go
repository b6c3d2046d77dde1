// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words", POST /auth/token.
//   - Solver session endpoints under /solver/sessions (optionally token-guarded).
//   - Game endpoints: POST /game/new, POST /game/guess.
//   - History endpoints: GET /history/summary, GET /history/recent.
//
// Notes:
//   - CORS is origin-aware (CLIENT_ORIGIN) and credentials-enabled.
//   - The token guard is a no-op unless a JWT secret is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/auth"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Deps are the collaborators a Server needs. History may be nil.
type Deps struct {
	Config   config.Config
	Solver   *solver.Solver
	Sessions store.Store[*session.Session]
	History  *history.Store
	Auth     *auth.Authenticator
}

// Server bundles the router and the solver state it serves.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	solver   *solver.Solver
	sessions store.Store[*session.Session]
	games    store.Store[*liveGame]
	history  *history.Store
	auth     *auth.Authenticator
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		solver:   d.Solver,
		sessions: d.Sessions,
		games:    store.NewMemoryStore[*liveGame](),
		history:  d.History,
		auth:     d.Auth,
	}
	if s.sessions == nil {
		s.sessions = store.NewMemoryStore[*session.Session]()
	}
	if s.auth == nil {
		s.auth = auth.New("", "", 0)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "/metrics", "/solver/sessions", "/pattern", "/game/new", "/game/guess", "/history/summary"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"length":   s.solver.Length(),
			"words":    s.solver.Dictionary().Len(),
			"allowed":  len(s.solver.Allowed()),
			"mask":     s.solver.Mask().String(),
			"sessions": s.sessions.Len(),
			"games":    s.games.Len(),
		})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Post("/auth/token", s.handleToken)

	s.r.Group(func(r chi.Router) {
		r.Use(s.auth.Require())
		s.mountSolver(r)
		s.mountGame(r)
		r.Get("/history/summary", s.handleHistorySummary)
		r.Get("/history/recent", s.handleHistoryRecent)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- AUTH --------------------------------------

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the admin password for a bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Enabled() {
		writeError(w, http.StatusNotFound, "auth_disabled")
		return
	}
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !s.auth.CheckPassword(req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	tok, exp, err := s.auth.Sign("admin")
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// ------------------------------ HISTORY ------------------------------------

func (s *Server) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	sum, err := s.history.Summary(r.Context(), s.solver.Length(), s.solver.Mask().String())
	if err != nil {
		log.Error().Err(err).Msg("history summary")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleHistoryRecent(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	runs, err := s.history.Recent(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// ------------------------------- PATTERN -----------------------------------

type patternRes struct {
	Secret  string          `json:"secret"`
	Guess   string          `json:"guess"`
	Code    pattern.Pattern `json:"code"`
	Display string          `json:"display"`
	Digits  []int           `json:"digits"`
}

// handlePattern computes the feedback of guess against secret.
func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	dict := s.solver.Dictionary()
	secret, ok1 := dict.Lookup(r.URL.Query().Get("secret"))
	guess, ok2 := dict.Lookup(r.URL.Query().Get("guess"))
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "not in word list")
		return
	}
	p, err := s.solver.Pattern(secret, guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, gt := mustText(dict, secret), mustText(dict, guess)
	writeJSON(w, http.StatusOK, patternRes{
		Secret:  st,
		Guess:   gt,
		Code:    p,
		Display: pattern.Render(gt, p),
		Digits:  p.Digits(s.solver.Length()),
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, solver.ErrExhausted), errors.Is(err, session.ErrFinished):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownWord), errors.Is(err, session.ErrNotAllowed), errors.Is(err, pattern.ErrSyntax),
		errors.Is(err, pattern.ErrRange), errors.Is(err, words.ErrIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustText(d *words.Dictionary, id words.WordID) string {
	t, _ := d.Text(id)
	return t
}
