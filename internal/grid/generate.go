package grid

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/seeded"
)

const (
	// MaxAttempts bounds the number of fresh grids tried per Generate call.
	MaxAttempts = 40
	// MaxPlacementTries bounds random placements per word within one attempt.
	MaxPlacementTries = 600

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ErrGenerationFailed means every attempt failed and the sentinel grid was
// produced. The word set is too dense or too long for the grid size.
var ErrGenerationFailed = errors.New("grid: puzzle generation failed")

// Generate places words into a size×size grid driven by the stream for seed.
//
// Up to MaxAttempts attempts are made, each on a fresh grid. The stream is
// seeded once and keeps advancing across failed attempts; reseeding per
// attempt would change every derived puzzle. Within an attempt each word
// gets MaxPlacementTries random (direction, row, col) draws; a placement is
// valid when every letter lands in bounds on an empty or identical cell.
// Remaining cells are filled with random A–Z in row-major order and the
// result is verified by exhaustive search before it is returned.
//
// When all attempts fail the sentinel grid is returned.
func Generate(words []string, size int, seed string) Grid {
	if size <= 0 {
		return Sentinel(0)
	}
	rng := seeded.FromSeed(seed)
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		g, ok := tryGenerate(words, size, rng)
		if !ok {
			log.Debug().Str("seed", seed).Int("attempt", attempt).Msg("placement exhausted")
			continue
		}
		if err := g.Verify(words); err != nil {
			log.Debug().Err(err).Str("seed", seed).Int("attempt", attempt).Msg("verification failed")
			continue
		}
		log.Debug().Str("seed", seed).Int("attempt", attempt).Uint64("draws", rng.Draws()).Msg("grid generated")
		return g
	}
	log.Warn().Str("seed", seed).Int("size", size).Int("words", len(words)).Msg("grid generation exhausted")
	return Sentinel(size)
}

// GenerateChecked is Generate with the sentinel mapped to ErrGenerationFailed.
func GenerateChecked(words []string, size int, seed string) (Grid, error) {
	g := Generate(words, size, seed)
	if g.IsSentinel() {
		return g, ErrGenerationFailed
	}
	return g, nil
}

// tryGenerate runs one attempt on a fresh grid.
func tryGenerate(words []string, size int, rng *seeded.Stream) (Grid, bool) {
	g := New(size)
	for _, w := range words {
		if !g.place([]rune(w), rng) {
			return Grid{}, false
		}
	}
	g.fill(rng)
	return g, true
}

// place tries random placements for letters and commits the first valid one.
func (g Grid) place(letters []rune, rng *seeded.Stream) bool {
	for try := 0; try < MaxPlacementTries; try++ {
		d := Directions[rng.Intn(len(Directions))]
		start := Cell{Row: rng.Intn(g.size), Col: rng.Intn(g.size)}
		if !g.fits(letters, start, d) {
			continue
		}
		for i, r := range letters {
			g.set(start.Add(d, i), r)
		}
		return true
	}
	return false
}

// fits reports whether letters can be written from start along d, sharing
// only cells that already hold the same letter.
func (g Grid) fits(letters []rune, start Cell, d Direction) bool {
	for i, r := range letters {
		c := start.Add(d, i)
		if !g.InBounds(c) {
			return false
		}
		if cur := g.At(c); cur != empty && cur != r {
			return false
		}
	}
	return true
}

// fill assigns a random uppercase letter to every empty cell, row-major.
func (g Grid) fill(rng *seeded.Stream) {
	for i, r := range g.cells {
		if r == empty {
			g.cells[i] = rune(alphabet[rng.Intn(len(alphabet))])
		}
	}
}
