// internal/daily/daily.go
//
// Daily puzzle packs. A pack is identified by its UTC date; each puzzle in
// the pack is derived from the seed "<pack>:<index>" (optionally salted), so
// every server and client derives the same words and grid for the same day.
package daily

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

// ErrBadIndex is returned for puzzle indexes outside the pack.
var ErrBadIndex = errors.New("daily: puzzle index out of range")

// Settings controls pack derivation.
type Settings struct {
	GridSize       int
	WordsPerPuzzle int
	PuzzlesPerPack int
	Salt           string
}

// Puzzle is one derived puzzle of a pack.
type Puzzle struct {
	PackID     string           `json:"packId"`
	Index      int              `json:"index"`
	Seed       string           `json:"-"`
	Words      []string         `json:"words"`
	Grid       grid.Grid        `json:"grid"`
	Placements []grid.Placement `json:"-"`
}

// Size returns the grid dimension.
func (p *Puzzle) Size() int { return p.Grid.Size() }

// Pack is every puzzle for one day, in index order.
type Pack struct {
	ID      string    `json:"id"`
	Puzzles []*Puzzle `json:"puzzles"`
}

// PackID returns YYYY-MM-DD in UTC.
func PackID(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParsePackID validates a YYYY-MM-DD pack id.
func ParsePackID(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("daily: invalid date %q", s)
	}
	return PackID(t), nil
}

// PuzzleSeed returns the seed string for one puzzle of a pack.
func PuzzleSeed(packID string, index int, salt string) string {
	seed := packID + ":" + strconv.Itoa(index)
	if salt != "" {
		seed = salt + "|" + seed
	}
	return seed
}

// BuildPuzzle derives the puzzle at index of packID from bank.
func BuildPuzzle(bank []string, s Settings, packID string, index int) (*Puzzle, error) {
	if index < 0 || (s.PuzzlesPerPack > 0 && index >= s.PuzzlesPerPack) {
		return nil, ErrBadIndex
	}
	seed := PuzzleSeed(packID, index, s.Salt)
	picked := words.Pick(bank, s.WordsPerPuzzle, s.GridSize, seed)
	if len(picked) < s.WordsPerPuzzle {
		return nil, fmt.Errorf("%w: have %d eligible, need %d", words.ErrBankTooSmall, len(picked), s.WordsPerPuzzle)
	}
	g, err := grid.GenerateChecked(picked, s.GridSize, seed)
	if err != nil {
		return nil, fmt.Errorf("pack %s puzzle %d: %w", packID, index, err)
	}
	placements := make([]grid.Placement, 0, len(picked))
	for _, w := range picked {
		if p, ok := g.Find(w); ok {
			placements = append(placements, p)
		}
	}
	return &Puzzle{
		PackID:     packID,
		Index:      index,
		Seed:       seed,
		Words:      picked,
		Grid:       g,
		Placements: placements,
	}, nil
}

// BuildPack derives every puzzle of packID concurrently.
func BuildPack(ctx context.Context, bank []string, s Settings, packID string) (*Pack, error) {
	return buildPack(ctx, s, packID, func(i int) (*Puzzle, error) {
		return BuildPuzzle(bank, s, packID, i)
	})
}

func buildPack(ctx context.Context, s Settings, packID string, build func(int) (*Puzzle, error)) (*Pack, error) {
	pack := &Pack{ID: packID, Puzzles: make([]*Puzzle, s.PuzzlesPerPack)}
	g, ctx := errgroup.WithContext(ctx)
	for i := range pack.Puzzles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := build(i)
			if err != nil {
				return err
			}
			pack.Puzzles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pack, nil
}
