// internal/httpserver/routes_puzzles.go
//
// Puzzle session endpoints:
//   - POST /puzzles               → start a session on a daily puzzle
//   - GET  /puzzles/{id}          → session snapshot
//   - POST /puzzles/{id}/geometry → where the client draws the grid
//   - POST /puzzles/{id}/events   → apply a batch of pointer events
//   - POST /puzzles/{id}/pause, /resume
//
// Sessions belong to the player that created them; other players get 404.
// The first completion of a puzzle is recorded for the daily leaderboard.
package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/gesture"
	"github.com/robalobadob/wordsearch/internal/store"
)

const maxEventsPerBatch = 512

func (s *Server) mountPuzzles(r chi.Router) {
	r.Post("/puzzles", s.handleNewPuzzle)
	r.Get("/puzzles/{id}", s.handleGetPuzzle)
	r.Post("/puzzles/{id}/geometry", s.handleGeometry)
	r.Post("/puzzles/{id}/events", s.handleEvents)
	r.Post("/puzzles/{id}/pause", s.handlePause)
	r.Post("/puzzles/{id}/resume", s.handleResume)
}

type newPuzzleReq struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
}

type newPuzzleRes struct {
	*game.Snapshot
	PackID string `json:"packId"`
	Index  int    `json:"index"`
	Played bool   `json:"played"`
}

// handleNewPuzzle starts a session. A player who already completed the
// puzzle gets played=true and no session.
func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	var req newPuzzleReq
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	packID, ok := s.packParam(w, req.Date)
	if !ok {
		return
	}
	p, err := s.puzzles.Puzzle(packID, req.Index)
	if errors.Is(err, daily.ErrBadIndex) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Str("pack", packID).Int("index", req.Index).Msg("build puzzle")
		writeError(w, http.StatusInternalServerError, "puzzle_unavailable")
		return
	}

	owner := s.playerID(w, r)
	played, err := s.results.AlreadyCompleted(r.Context(), owner, packID, req.Index)
	if err != nil {
		log.Warn().Err(err).Str("player", owner).Msg("check completion")
	}
	if played {
		writeJSON(w, http.StatusOK, newPuzzleRes{PackID: packID, Index: req.Index, Played: true})
		return
	}

	sess, err := game.New(p, owner, s.cfg.Gesture, s.clock)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "puzzle_unavailable")
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	snap := sess.Snapshot()
	writeJSON(w, http.StatusCreated, newPuzzleRes{Snapshot: &snap, PackID: packID, Index: req.Index})
}

// session loads the {id} session owned by the caller, writing 404 otherwise.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && sess.OwnerID != s.playerID(w, r)) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var g gesture.Geometry
	if err := decode(w, r, &g); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if g.CellSize <= 0 {
		writeError(w, http.StatusBadRequest, "cellSize must be positive")
		return
	}
	sess.SetGeometry(g)
	writeJSON(w, http.StatusOK, sess.Geometry())
}

type eventsReq struct {
	Events []gesture.Event `json:"events"`
}

type eventsRes struct {
	Results   []gesture.Result `json:"results"`
	Found     []string         `json:"found"`
	Complete  bool             `json:"complete"`
	ElapsedMs int64            `json:"elapsedMs"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req eventsReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.Events) > maxEventsPerBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_events")
		return
	}
	res := eventsRes{Results: make([]gesture.Result, 0, len(req.Events))}
	for _, ev := range req.Events {
		out, done := sess.Handle(ev)
		if done {
			s.recordCompletion(r.Context(), sess)
		}
		res.Results = append(res.Results, out)
	}
	res.Found = sess.Found()
	res.Complete = sess.Complete()
	res.ElapsedMs = sess.Elapsed().Milliseconds()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Pause()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Resume()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// recordCompletion persists a finished session. Failures are logged only;
// the player still sees the completed puzzle.
func (s *Server) recordCompletion(ctx context.Context, sess *game.Session) {
	res := daily.Result{
		UserID:    sess.OwnerID,
		PackID:    sess.Puzzle.PackID,
		Index:     sess.Puzzle.Index,
		Found:     len(sess.Found()),
		ElapsedMs: sess.Elapsed().Milliseconds(),
	}
	inserted, err := s.results.RecordCompletion(ctx, res)
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("record completion")
		return
	}
	if !inserted {
		return
	}
	if err := s.users.RecordSolve(ctx, sess.OwnerID, res.Found); err != nil {
		log.Warn().Err(err).Str("user", sess.OwnerID).Msg("record solve")
	}
	log.Info().
		Str("player", sess.OwnerID).
		Str("pack", res.PackID).
		Int("index", res.Index).
		Int64("elapsedMs", res.ElapsedMs).
		Msg("puzzle completed")
}

// packParam resolves an optional YYYY-MM-DD date to a pack id, defaulting
// to today in UTC.
func (s *Server) packParam(w http.ResponseWriter, date string) (string, bool) {
	if date == "" {
		return daily.PackID(s.clock.Now()), true
	}
	id, err := daily.ParsePackID(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}
