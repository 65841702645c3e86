// internal/gesture/event.go
//
// Pointer input vocabulary for the selection engine.
// Defines:
//   - Phase / Event: the closed set of pointer transitions (down, move, up, cancel).
//   - Point / Segment: screen-space coordinates and line segments.
//   - Geometry: mapping between screen points and grid cells.
package gesture

import (
	"fmt"
	"math"
	"strings"

	"github.com/robalobadob/wordsearch/internal/grid"
)

// Phase is the kind of pointer transition an Event carries.
type Phase int

const (
	Down Phase = iota
	Move
	Up
	Cancel
)

var phaseNames = [...]string{"down", "move", "up", "cancel"}

func (p Phase) String() string {
	if p < Down || p > Cancel {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase as its lowercase name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < Down || p > Cancel {
		return nil, fmt.Errorf("gesture: unknown phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText accepts the lowercase names, plus the DOM spellings
// "pointerdown", "pointermove", "pointerup" and "pointercancel".
func (p *Phase) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(string(b))), "pointer")
	for i, name := range phaseNames {
		if s == name {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("gesture: unknown phase %q", string(b))
}

// Point is a screen-space position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Event is one pointer transition.
type Event struct {
	Phase Phase `json:"phase"`
	Point
}

// DownAt, MoveTo, UpAt and CancelAt build events.
func DownAt(x, y float64) Event   { return Event{Phase: Down, Point: Point{x, y}} }
func MoveTo(x, y float64) Event   { return Event{Phase: Move, Point: Point{x, y}} }
func UpAt(x, y float64) Event     { return Event{Phase: Up, Point: Point{x, y}} }
func CancelAt(x, y float64) Event { return Event{Phase: Cancel, Point: Point{x, y}} }

// Segment is a straight line between two screen points.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Geometry places a Size×Size grid on screen with its top-left cell corner
// at Origin and square cells of CellSize pixels.
type Geometry struct {
	Origin   Point   `json:"origin"`
	CellSize float64 `json:"cellSize"`
	Size     int     `json:"size"`
}

// Valid reports whether g can resolve points.
func (g Geometry) Valid() bool { return g.CellSize > 0 && g.Size > 0 }

// CellAt resolves p to a grid cell. ok is false outside the grid.
func (g Geometry) CellAt(p Point) (grid.Cell, bool) {
	if !g.Valid() {
		return grid.Cell{}, false
	}
	col := math.Floor((p.X - g.Origin.X) / g.CellSize)
	row := math.Floor((p.Y - g.Origin.Y) / g.CellSize)
	if row < 0 || col < 0 || row >= float64(g.Size) || col >= float64(g.Size) {
		return grid.Cell{}, false
	}
	return grid.Cell{Row: int(row), Col: int(col)}, true
}

// Center returns the screen position of c's centre.
func (g Geometry) Center(c grid.Cell) Point {
	return Point{
		X: g.Origin.X + (float64(c.Col)+0.5)*g.CellSize,
		Y: g.Origin.Y + (float64(c.Row)+0.5)*g.CellSize,
	}
}
