package words

import (
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordsearch/internal/seeded"
)

// Pick deterministically selects count words from bank for a size×size grid.
//
// Words longer than gridSize are dropped (order preserved), the remainder is
// Fisher–Yates shuffled by the stream for seed, and the first count entries
// are returned uppercased. A short bank yields a short result; Pick neither
// pads nor errors.
func Pick(bank []string, count, gridSize int, seed string) []string {
	eligible := make([]string, 0, len(bank))
	for _, w := range bank {
		if utf8.RuneCountInString(w) <= gridSize {
			eligible = append(eligible, w)
		}
	}

	rng := seeded.FromSeed(seed)
	for i := len(eligible) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}

	if count < 0 {
		count = 0
	}
	if count > len(eligible) {
		count = len(eligible)
	}
	out := make([]string, count)
	for i := range out {
		out[i] = strings.ToUpper(eligible[i])
	}
	return out
}
