// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily pack:
//   - GET  /daily/pack?date=                → pack id plus puzzle summaries
//   - GET  /daily/leaderboard?date=&index=  → fastest completions
//   - POST /daily/rate                      → 1-5 star rating of a puzzle
//
// Dates are YYYY-MM-DD in UTC and default to today.
package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily/pack", s.handlePack)
	r.Get("/daily/leaderboard", s.handleLeaderboard)
	r.Post("/daily/rate", s.handleRate)
}

type puzzleSummary struct {
	Index     int                 `json:"index"`
	Size      int                 `json:"size"`
	WordCount int                 `json:"wordCount"`
	Completed bool                `json:"completed"`
	Rating    daily.RatingSummary `json:"rating"`
}

type packRes struct {
	PackID  string          `json:"packId"`
	Puzzles []puzzleSummary `json:"puzzles"`
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	packID, ok := s.packParam(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	pack, err := s.puzzles.Pack(r.Context(), packID)
	if err != nil {
		log.Error().Err(err).Str("pack", packID).Msg("build pack")
		writeError(w, http.StatusInternalServerError, "pack_unavailable")
		return
	}
	player := s.playerID(w, r)
	res := packRes{PackID: pack.ID, Puzzles: make([]puzzleSummary, 0, len(pack.Puzzles))}
	for _, p := range pack.Puzzles {
		sum := puzzleSummary{Index: p.Index, Size: p.Size(), WordCount: len(p.Words)}
		if done, err := s.results.AlreadyCompleted(r.Context(), player, pack.ID, p.Index); err == nil {
			sum.Completed = done
		}
		if rating, err := s.results.Rating(r.Context(), pack.ID, p.Index); err == nil {
			sum.Rating = rating
		}
		res.Puzzles = append(res.Puzzles, sum)
	}
	writeJSON(w, http.StatusOK, res)
}

type lbRes struct {
	PackID string        `json:"packId"`
	Index  int           `json:"index"`
	Top    []daily.LBRow `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	packID, ok := s.packParam(w, q.Get("date"))
	if !ok {
		return
	}
	index := 0
	if v := q.Get("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n >= s.puzzles.Settings().PuzzlesPerPack {
			writeError(w, http.StatusBadRequest, daily.ErrBadIndex.Error())
			return
		}
		index = n
	}
	rows, err := s.results.Leaderboard(r.Context(), packID, index, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{PackID: packID, Index: index, Top: rows})
}

type rateReq struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
	Stars int    `json:"stars"`
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var req rateReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	packID, ok := s.packParam(w, req.Date)
	if !ok {
		return
	}
	if req.Index < 0 || req.Index >= s.puzzles.Settings().PuzzlesPerPack {
		writeError(w, http.StatusBadRequest, daily.ErrBadIndex.Error())
		return
	}
	player := s.playerID(w, r)
	err := s.results.Rate(r.Context(), player, packID, req.Index, req.Stars)
	if errors.Is(err, daily.ErrBadRating) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("rate")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	sum, err := s.results.Rating(r.Context(), packID, req.Index)
	if err != nil {
		log.Warn().Err(err).Msg("rating summary")
	}
	writeJSON(w, http.StatusOK, sum)
}
