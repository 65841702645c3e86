// internal/gesture/engine.go
//
// Selection engine: turns a stream of pointer events into word matches.
//
// States:
//
//	Idle ──down──▶ Dragging(unlocked) ──move past threshold──▶ Dragging(locked)
//	  ▲                    │                                          │
//	  └────────── up / cancel (match attempt or discard) ◀────────────┘
//
// A direction lock is final for the rest of the gesture. Release resolves at
// most one word: the first unfound word, in puzzle order, whose implied end
// cell is in bounds, within Tolerance of the release cell, and whose letters
// read forward or backward along the locked direction.
//
// Engine is not safe for concurrent use; callers serialise events.
package gesture

import (
	"fmt"

	"github.com/robalobadob/wordsearch/internal/grid"
)

// State is the engine's coarse gesture state.
type State int

const (
	Idle State = iota
	DraggingUnlocked
	DraggingLocked
)

func (s State) String() string {
	switch s {
	case DraggingUnlocked:
		return "dragging"
	case DraggingLocked:
		return "locked"
	}
	return "idle"
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{Idle, DraggingUnlocked, DraggingLocked} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("gesture: unknown state %q", string(b))
}

// Match is a word resolved by a gesture.
type Match struct {
	Word    string    `json:"word"`
	Start   grid.Cell `json:"start"`
	End     grid.Cell `json:"end"`
	Segment Segment   `json:"segment"`
}

// Result reports what a single event produced.
type Result struct {
	State State `json:"state"`
	// Feedback is the live segment from the start cell centre to the pointer;
	// nil when no gesture is being dragged.
	Feedback *Segment `json:"feedback"`
	// Found is set when the event completed a match.
	Found *Match `json:"found,omitempty"`
	// Complete is true once every puzzle word has been found.
	Complete bool `json:"complete"`
}

// drag is the transient per-gesture state.
type drag struct {
	active  bool
	start   grid.Cell
	startPt Point
	dir     grid.Direction
	locked  bool
	last    Point
}

// Engine resolves gestures against one puzzle at a time.
type Engine struct {
	cfg      Config
	geom     Geometry
	grid     grid.Grid
	words    []string
	loaded   bool
	found    *FoundSet
	segments []Segment
	cur      drag
}

// NewEngine returns an idle engine with no puzzle attached.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, found: NewFoundSet()}
}

// Load attaches a puzzle and clears found words, segments and any gesture.
// A sentinel grid is never loaded.
func (e *Engine) Load(g grid.Grid, words []string) bool {
	e.Reset()
	e.found = NewFoundSet()
	e.segments = nil
	if g.IsSentinel() || g.Size() == 0 {
		e.loaded = false
		return false
	}
	e.grid = g
	e.words = append([]string(nil), words...)
	e.loaded = true
	e.geom.Size = g.Size()
	return true
}

// SetGeometry updates the on-screen placement of the grid. The grid size
// always comes from the loaded puzzle.
func (e *Engine) SetGeometry(g Geometry) {
	if e.loaded {
		g.Size = e.grid.Size()
	}
	e.geom = g
}

// Geometry returns the current screen geometry.
func (e *Engine) Geometry() Geometry { return e.geom }

// State reports the current gesture state.
func (e *Engine) State() State {
	switch {
	case !e.cur.active:
		return Idle
	case e.cur.locked:
		return DraggingLocked
	}
	return DraggingUnlocked
}

// Direction returns the locked direction, if any.
func (e *Engine) Direction() (grid.Direction, bool) {
	return e.cur.dir, e.cur.locked
}

// Found returns found words in the order they were matched.
func (e *Engine) Found() []string { return e.found.Words() }

// IsFound reports whether w has been matched.
func (e *Engine) IsFound(w string) bool { return e.found.Has(w) }

// Segments returns the persistent segments of matched words.
func (e *Engine) Segments() []Segment { return append([]Segment(nil), e.segments...) }

// Complete reports whether every word of the loaded puzzle is found.
func (e *Engine) Complete() bool {
	if !e.loaded {
		return false
	}
	for _, w := range e.words {
		if !e.found.Has(w) {
			return false
		}
	}
	return true
}

// Reset returns the engine to Idle, dropping any in-progress gesture.
// It is safe to call in any state.
func (e *Engine) Reset() { e.cur = drag{} }

// Handle applies one event and reports its effect.
func (e *Engine) Handle(ev Event) Result {
	var found *Match
	switch ev.Phase {
	case Down:
		e.down(ev.Point)
	case Move:
		e.move(ev.Point)
	case Up, Cancel:
		found = e.release(ev.Point)
	}
	return Result{
		State:    e.State(),
		Feedback: e.feedback(),
		Found:    found,
		Complete: e.Complete(),
	}
}

func (e *Engine) down(p Point) {
	// A new press always discards whatever gesture was in flight.
	e.Reset()
	if !e.loaded || e.Complete() {
		return
	}
	c, ok := e.geom.CellAt(p)
	if !ok {
		return
	}
	e.cur = drag{active: true, start: c, startPt: p, last: p}
}

func (e *Engine) move(p Point) {
	if !e.cur.active {
		return
	}
	e.cur.last = p
	if e.cur.locked {
		return
	}
	if d, ok := Classify(p.Sub(e.cur.startPt), e.cfg); ok {
		e.cur.dir = d
		e.cur.locked = true
	}
}

// release ends the gesture. Releases outside the grid reset without
// matching, which also covers pointers lost outside the tracked element.
func (e *Engine) release(p Point) *Match {
	g := e.cur
	e.Reset()
	if !g.active || !g.locked {
		return nil
	}
	if p.Sub(g.startPt).Len() < e.cfg.MinDragPixels {
		return nil
	}
	at, ok := e.geom.CellAt(p)
	if !ok {
		return nil
	}
	for _, w := range e.words {
		if e.found.Has(w) {
			continue
		}
		m, ok := e.match(w, g.start, g.dir, at)
		if !ok {
			continue
		}
		e.found.Add(w)
		e.segments = append(e.segments, m.Segment)
		return &m
	}
	return nil
}

// match checks word against the line from start along dir.
func (e *Engine) match(word string, start grid.Cell, dir grid.Direction, release grid.Cell) (Match, bool) {
	letters := []rune(word)
	if len(letters) == 0 {
		return Match{}, false
	}
	end := start.Add(dir, len(letters)-1)
	if !e.grid.InBounds(end) {
		return Match{}, false
	}
	if release.Chebyshev(end) > e.cfg.Tolerance {
		return Match{}, false
	}
	line, ok := e.grid.ReadLine(start, dir, len(letters))
	if !ok || (line != word && line != reverse(letters)) {
		return Match{}, false
	}
	return Match{
		Word:    word,
		Start:   start,
		End:     end,
		Segment: Segment{From: e.geom.Center(start), To: e.geom.Center(end)},
	}, true
}

func (e *Engine) feedback() *Segment {
	if !e.cur.active {
		return nil
	}
	return &Segment{From: e.geom.Center(e.cur.start), To: e.cur.last}
}

func reverse(r []rune) string {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return string(out)
}
