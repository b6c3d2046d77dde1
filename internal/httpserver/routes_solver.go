// internal/httpserver/routes_solver.go
//
// Solver session endpoints:
//   - POST   /solver/sessions                 → start a session
//   - GET    /solver/sessions/{id}            → steps, candidate count, entropy
//   - DELETE /solver/sessions/{id}            → discard
//   - POST   /solver/sessions/{id}/steps      → apply {"guess":"CRANE","pattern":"..A.."}
//   - POST   /solver/sessions/{id}/rollback   → drop the last {"n":1} steps
//   - GET    /solver/sessions/{id}/best       → recommended guess
//   - GET    /solver/sessions/{id}/top?k=     → ranked suggestions
//   - GET    /solver/sessions/{id}/candidates → remaining words with probability
//   - GET    /pattern?secret=&guess=          → feedback for one pair

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func (s *Server) mountSolver(r chi.Router) {
	r.Get("/pattern", s.handlePattern)
	r.Route("/solver/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleSessionState))
			r.Delete("/", s.handleDeleteSession)
			r.Post("/steps", s.withSession(s.handleStep))
			r.Post("/rollback", s.withSession(s.handleRollback))
			r.Get("/best", s.withSession(s.handleBest))
			r.Get("/top", s.withSession(s.handleTop))
			r.Get("/candidates", s.withSession(s.handleCandidates))
		})
	})
}

// stepView is a step in display form.
type stepView struct {
	Guess   string          `json:"guess"`
	Pattern string          `json:"pattern"`
	Code    pattern.Pattern `json:"code"`
}

type sessionRes struct {
	ID         string     `json:"id"`
	Steps      []stepView `json:"steps"`
	Candidates int        `json:"candidates"`
	Entropy    float64    `json:"entropy"`
}

type resultView struct {
	Word          string  `json:"word"`
	Score         float64 `json:"score"`
	ExpectedSteps float64 `json:"expectedSteps"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, sess *session.Session)

// withSession resolves {id} to a stored session.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := s.sessions.Get(r.Context(), id)
		if err != nil {
			writeError(w, statusFor(err), "not_found")
			return
		}
		h(w, r, id, sess)
	}
}

func (s *Server) sessionState(id string, sess *session.Session) sessionRes {
	steps := sess.Steps()
	views := make([]stepView, 0, len(steps))
	for _, st := range steps {
		views = append(views, s.stepView(st))
	}
	return sessionRes{ID: id, Steps: views, Candidates: sess.CandidateCount(), Entropy: sess.Entropy()}
}

func (s *Server) stepView(st solver.Step) stepView {
	display, _ := s.solver.Render(st)
	return stepView{Guess: mustText(s.solver.Dictionary(), st.Guess), Pattern: display, Code: st.Pattern}
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.solver)
	id, err := s.sessions.Create(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, s.sessionState(id, sess))
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	writeJSON(w, http.StatusOK, s.sessionState(id, sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	_ = s.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type stepReq struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	var req stepReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if _, err := sess.ApplyText(req.Guess, req.Pattern); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sessionState(id, sess))
}

type rollbackReq struct {
	N int `json:"n"`
}

type rollbackRes struct {
	sessionRes
	Removed int `json:"removed"`
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	req := rollbackReq{N: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	removed := sess.Rollback(req.N)
	writeJSON(w, http.StatusOK, rollbackRes{sessionRes: s.sessionState(id, sess), Removed: removed})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	best, err := sess.BestChoice()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.resultView(best, len(sess.Steps())))
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	k := queryInt(r, "k", s.cfg.TopN)
	top, err := sess.TopWords(k)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	played := len(sess.Steps())
	out := make([]resultView, 0, len(top))
	for _, res := range top {
		out = append(out, s.resultView(res, played))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request, id string, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Ranked(queryInt(r, "limit", 0)))
}

func (s *Server) resultView(res solver.Result, played int) resultView {
	return resultView{
		Word:          mustText(s.solver.Dictionary(), res.Word),
		Score:         res.Score,
		ExpectedSteps: res.Score + float64(played),
	}
}
