// internal/game/engine.go
//
// A Session is one player working through one daily puzzle.
//   - Pointer events are applied to a gesture.Engine under a mutex, so HTTP
//     and websocket handlers may share a session.
//   - Elapsed time runs from creation until completion, excluding paused
//     spans, and is read from an injectable clock.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/gesture"
	"github.com/robalobadob/wordsearch/internal/users"
)

// ErrUnplayable is returned for puzzles whose grid could not be generated.
var ErrUnplayable = errors.New("game: puzzle has no playable grid")

// Session holds the state of a single in-progress or finished puzzle.
type Session struct {
	ID      string
	OwnerID string
	Puzzle  *daily.Puzzle

	clock quartz.Clock

	mu         sync.Mutex
	engine     *gesture.Engine
	startedAt  time.Time
	finishedAt time.Time
	pausedAt   time.Time
	paused     time.Duration
}

// New starts a session on p for ownerID.
func New(p *daily.Puzzle, ownerID string, cfg gesture.Config, clock quartz.Clock) (*Session, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	eng := gesture.NewEngine(cfg)
	if !eng.Load(p.Grid, p.Words) {
		return nil, ErrUnplayable
	}
	return &Session{
		ID:        users.NewID(),
		OwnerID:   ownerID,
		Puzzle:    p,
		clock:     clock,
		engine:    eng,
		startedAt: clock.Now(),
	}, nil
}

// SetGeometry records where the grid is drawn on the client.
func (s *Session) SetGeometry(g gesture.Geometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetGeometry(g)
}

// Geometry returns the client geometry.
func (s *Session) Geometry() gesture.Geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Geometry()
}

// Handle applies one pointer event. The first event to complete the puzzle
// stops the clock and reports justCompleted.
func (s *Session) Handle(ev gesture.Event) (res gesture.Result, justCompleted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pausedAt.IsZero() {
		s.resumeLocked()
	}
	res = s.engine.Handle(ev)
	if res.Complete && s.finishedAt.IsZero() {
		s.finishedAt = s.clock.Now()
		justCompleted = true
	}
	return res, justCompleted
}

// Found returns the words found so far, in match order.
func (s *Session) Found() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Found()
}

// Complete reports whether every word is found.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Complete()
}

// Pause stops the elapsed clock. It is a no-op when paused or complete.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pausedAt.IsZero() && s.finishedAt.IsZero() {
		s.pausedAt = s.clock.Now()
		s.engine.Reset()
	}
}

// Resume restarts the elapsed clock.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeLocked()
}

func (s *Session) resumeLocked() {
	if s.pausedAt.IsZero() {
		return
	}
	s.paused += s.clock.Since(s.pausedAt)
	s.pausedAt = time.Time{}
}

// Elapsed returns active play time.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() time.Duration {
	end := s.clock.Now()
	switch {
	case !s.finishedAt.IsZero():
		end = s.finishedAt
	case !s.pausedAt.IsZero():
		end = s.pausedAt
	}
	return end.Sub(s.startedAt) - s.paused
}

func (s *Session) statusLocked() Status {
	switch {
	case s.engine.Complete():
		return StatusComplete
	case !s.pausedAt.IsZero():
		return StatusPaused
	}
	return StatusPlaying
}

// Snapshot returns the client view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		PackID:    s.Puzzle.PackID,
		Index:     s.Puzzle.Index,
		Size:      s.Puzzle.Size(),
		Words:     s.Puzzle.Words,
		Grid:      s.Puzzle.Grid,
		Found:     s.engine.Found(),
		Segments:  s.engine.Segments(),
		Status:    s.statusLocked(),
		ElapsedMs: s.elapsedLocked().Milliseconds(),
	}
}
