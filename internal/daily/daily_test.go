package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

var defaults = Settings{GridSize: 10, WordsPerPuzzle: 8, PuzzlesPerPack: 3}

func loadBank(t *testing.T) []string {
	t.Helper()
	bank, err := words.Load("")
	require.NoError(t, err)
	return bank
}

func TestPackID(t *testing.T) {
	loc := time.FixedZone("NZDT", 13*3600)
	// 08:00 local on the 20th is still the 19th in UTC.
	assert.Equal(t, "2026-10-19", PackID(time.Date(2026, 10, 20, 8, 0, 0, 0, loc)))

	id, err := ParsePackID("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", id)

	_, err = ParsePackID("19/10/2026")
	assert.Error(t, err)
}

func TestPuzzleSeed(t *testing.T) {
	assert.Equal(t, "2026-10-19:0", PuzzleSeed("2026-10-19", 0, ""))
	assert.Equal(t, "pepper|2026-10-19:2", PuzzleSeed("2026-10-19", 2, "pepper"))
}

func TestBuildPuzzleGolden(t *testing.T) {
	bank := loadBank(t)

	p, err := BuildPuzzle(bank, defaults, "2026-10-19", 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19:0", p.Seed)
	assert.Equal(t, []string{"PADDLE", "QUIVER", "ELK", "CHERRY", "IGLOO", "CAMEL", "HONEY", "LOBSTER"}, p.Words)
	assert.Equal(t, []string{
		"EGGNQIPGRH",
		"YIIRELDDAP",
		"EGCETLPBBL",
		"NLHVTITIBO",
		"OOEIQCCDOB",
		"HORUJSGDSS",
		"FERQSPZWLT",
		"UHYELEMACE",
		"JJEZLISEUR",
		"TKKLWKAXTV",
	}, p.Grid.Rows())
	assert.Len(t, p.Placements, len(p.Words))
	assert.NoError(t, p.Grid.Verify(p.Words))

	p1, err := BuildPuzzle(bank, defaults, "2026-10-19", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"JASMINE", "CRICKET", "ROCKET", "APPLE", "FOSSIL", "BEACON", "BISON", "LANTERN"}, p1.Words)
}

func TestBuildPuzzleSalted(t *testing.T) {
	s := defaults
	s.Salt = "pepper"
	p, err := BuildPuzzle(loadBank(t), s, "2026-10-19", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ZEPHYR", "HONEY", "OASIS", "CANYON", "PEPPER", "CAMEL", "ZIPPER", "PIANO"}, p.Words)
}

func TestBuildPuzzleErrors(t *testing.T) {
	bank := loadBank(t)

	_, err := BuildPuzzle(bank, defaults, "2026-10-19", 3)
	assert.ErrorIs(t, err, ErrBadIndex)
	_, err = BuildPuzzle(bank, defaults, "2026-10-19", -1)
	assert.ErrorIs(t, err, ErrBadIndex)

	_, err = BuildPuzzle([]string{"cat", "dog"}, defaults, "2026-10-19", 0)
	assert.ErrorIs(t, err, words.ErrBankTooSmall)

	// Three two-letter words with distinct letters cannot share a 2x2 grid.
	tight := Settings{GridSize: 2, WordsPerPuzzle: 3, PuzzlesPerPack: 1}
	_, err = BuildPuzzle([]string{"ab", "cd", "ef"}, tight, "2026-10-19", 0)
	assert.ErrorIs(t, err, grid.ErrGenerationFailed)
}

func TestBuildPack(t *testing.T) {
	bank := loadBank(t)
	pack, err := BuildPack(context.Background(), bank, defaults, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", pack.ID)
	require.Len(t, pack.Puzzles, 3)
	for i, p := range pack.Puzzles {
		assert.Equal(t, i, p.Index)
		single, err := BuildPuzzle(bank, defaults, "2026-10-19", i)
		require.NoError(t, err)
		assert.Equal(t, single.Grid.Rows(), p.Grid.Rows())
	}
}

func TestBuildPackCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildPack(ctx, loadBank(t), defaults, "2026-10-19")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCache(t *testing.T) {
	c := NewCache(loadBank(t), defaults, 2)

	a, err := c.Puzzle("2026-10-19", 0)
	require.NoError(t, err)
	b, err := c.Puzzle("2026-10-19", 0)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = c.Puzzle("2026-10-20", 0)
	require.NoError(t, err)
	_, err = c.Puzzle("2026-10-21", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	// The oldest pack was evicted, so this derives a fresh but equal puzzle.
	again, err := c.Puzzle("2026-10-19", 0)
	require.NoError(t, err)
	assert.NotSame(t, a, again)
	assert.Equal(t, a.Grid.Rows(), again.Grid.Rows())

	pack, err := c.Pack(context.Background(), "2026-10-22")
	require.NoError(t, err)
	assert.Len(t, pack.Puzzles, 3)
}
