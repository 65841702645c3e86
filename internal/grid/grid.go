// internal/grid/grid.go
//
// Square letter grid used by word-search puzzles.
// Defines:
//   - Cell / Direction / Placement: coordinates and straight-line placements.
//   - Grid: N×N letters with bounds-checked access and line reads.
//   - Find / Verify: exhaustive 8-direction forward/backward search.
//
// A Grid owns its cell slice; every generation attempt allocates a fresh one
// so a discarded attempt never leaks into the next.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Filler is the letter used for every cell of the sentinel grid.
const Filler = 'X'

// empty marks an unassigned cell during generation.
const empty rune = 0

var (
	// ErrWordMissing is returned by Verify when a word cannot be read anywhere.
	ErrWordMissing = errors.New("grid: word not findable")
	// ErrBadRows is returned by FromRows for non-square or empty input.
	ErrBadRows = errors.New("grid: rows must form a non-empty square")
)

// Cell addresses a grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns c moved n steps along d.
func (c Cell) Add(d Direction, n int) Cell {
	return Cell{Row: c.Row + d.DR*n, Col: c.Col + d.DC*n}
}

// Chebyshev returns the king-move distance between two cells.
func (c Cell) Chebyshev(o Cell) int {
	return max(abs(c.Row-o.Row), abs(c.Col-o.Col))
}

// Direction is a unit step in row/column space.
type Direction struct {
	DR int `json:"dr"`
	DC int `json:"dc"`
}

// Directions lists the eight placement directions. The generator draws an
// index into this table, so its order is part of the puzzle format.
var Directions = [8]Direction{
	{-1, 0},  // N
	{-1, 1},  // NE
	{0, 1},   // E
	{1, 1},   // SE
	{1, 0},   // S
	{1, -1},  // SW
	{0, -1},  // W
	{-1, -1}, // NW
}

var (
	North = Directions[0]
	East  = Directions[2]
	South = Directions[4]
	West  = Directions[6]
)

// IsZero reports whether d is the zero (unlocked) direction.
func (d Direction) IsZero() bool { return d.DR == 0 && d.DC == 0 }

func (d Direction) String() string {
	names := [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	for i, x := range Directions {
		if x == d {
			return names[i]
		}
	}
	return fmt.Sprintf("(%d,%d)", d.DR, d.DC)
}

// Placement is a word laid out from Start along Dir.
type Placement struct {
	Word  string    `json:"word"`
	Start Cell      `json:"start"`
	Dir   Direction `json:"dir"`
}

// End returns the cell holding the placement's last letter.
func (p Placement) End() Cell {
	return p.Start.Add(p.Dir, utf8.RuneCountInString(p.Word)-1)
}

// Grid is an N×N matrix of letters.
type Grid struct {
	size     int
	cells    []rune
	sentinel bool
}

// New returns an empty size×size grid.
func New(size int) Grid {
	if size < 0 {
		size = 0
	}
	return Grid{size: size, cells: make([]rune, size*size)}
}

// Sentinel returns the failure grid: every cell is Filler.
func Sentinel(size int) Grid {
	g := New(size)
	for i := range g.cells {
		g.cells[i] = Filler
	}
	g.sentinel = true
	return g
}

// FromRows builds a grid from equal-length rows, uppercasing nothing.
func FromRows(rows []string) (Grid, error) {
	n := len(rows)
	if n == 0 {
		return Grid{}, ErrBadRows
	}
	g := New(n)
	for r, row := range rows {
		letters := []rune(row)
		if len(letters) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d letters, want %d", ErrBadRows, r, len(letters), n)
		}
		copy(g.cells[r*n:], letters)
	}
	return g, nil
}

// Size returns N.
func (g Grid) Size() int { return g.size }

// IsSentinel reports whether g is the generation-failure grid.
func (g Grid) IsSentinel() bool { return g.sentinel }

// InBounds reports whether c lies inside the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// At returns the letter at c, or 0 when c is out of bounds or unassigned.
func (g Grid) At(c Cell) rune {
	if !g.InBounds(c) {
		return empty
	}
	return g.cells[c.Row*g.size+c.Col]
}

func (g Grid) set(c Cell, r rune) { g.cells[c.Row*g.size+c.Col] = r }

// ReadLine reads n letters starting at start along d. ok is false if any
// position falls outside the grid.
func (g Grid) ReadLine(start Cell, d Direction, n int) (string, bool) {
	if n <= 0 {
		return "", true
	}
	end := start.Add(d, n-1)
	if !g.InBounds(start) || !g.InBounds(end) {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(g.At(start.Add(d, i)))
	}
	return b.String(), true
}

// Find searches every cell and direction for word read forward or backward.
// The returned placement always reads forward from Start along Dir.
func (g Grid) Find(word string) (Placement, bool) {
	letters := []rune(word)
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			start := Cell{r, c}
			for _, d := range Directions {
				if g.matches(letters, start, d, false) {
					return Placement{Word: word, Start: start, Dir: d}, true
				}
				if g.matches(letters, start, d, true) {
					// Reversed read from start; the forward reading runs back.
					end := start.Add(d, len(letters)-1)
					return Placement{Word: word, Start: end, Dir: Direction{-d.DR, -d.DC}}, true
				}
			}
		}
	}
	return Placement{}, false
}

// Verify checks that every word is findable.
func (g Grid) Verify(words []string) error {
	for _, w := range words {
		if _, ok := g.Find(w); !ok {
			return fmt.Errorf("%w: %q", ErrWordMissing, w)
		}
	}
	return nil
}

// matches compares letters (optionally reversed) with the line at start/d.
func (g Grid) matches(letters []rune, start Cell, d Direction, reversed bool) bool {
	n := len(letters)
	if n == 0 {
		return g.InBounds(start)
	}
	if !g.InBounds(start) || !g.InBounds(start.Add(d, n-1)) {
		return false
	}
	for i := 0; i < n; i++ {
		want := letters[i]
		if reversed {
			want = letters[n-1-i]
		}
		if g.At(start.Add(d, i)) != want {
			return false
		}
	}
	return true
}

// Rows returns the grid as one string per row.
func (g Grid) Rows() []string {
	out := make([]string, g.size)
	for r := range out {
		out[r] = string(g.cells[r*g.size : (r+1)*g.size])
	}
	return out
}

func (g Grid) String() string { return strings.Join(g.Rows(), "\n") }

// MarshalJSON encodes the grid as its rows.
func (g Grid) MarshalJSON() ([]byte, error) { return json.Marshal(g.Rows()) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
