package gesture

import (
	"math"

	"github.com/robalobadob/wordsearch/internal/grid"
)

// Config tunes drag classification and release matching.
type Config struct {
	// MinDragPixels is the net displacement below which no direction is
	// classified and no release can match.
	MinDragPixels float64 `json:"minDragPixels"`
	// DiagonalSlop is the minimum min/max component ratio for a diagonal.
	DiagonalSlop float64 `json:"diagonalSlop"`
	// AxisDominance is how many times larger one component must be than the
	// other for a horizontal or vertical lock.
	AxisDominance float64 `json:"axisDominance"`
	// Tolerance is the Chebyshev distance allowed between the release cell
	// and a word's implied end cell.
	Tolerance int `json:"tolerance"`
}

// DefaultConfig returns the tuning used by the web client.
func DefaultConfig() Config {
	return Config{
		MinDragPixels: 10,
		DiagonalSlop:  0.6,
		AxisDominance: 2.0,
		Tolerance:     1,
	}
}

// Classify maps a screen displacement to one of the eight grid directions.
// Screen y grows downward, matching grid rows. ok is false for displacements
// under the threshold and for ambiguous angles between the diagonal and
// axis bands.
func Classify(delta Point, cfg Config) (grid.Direction, bool) {
	if delta.Len() < cfg.MinDragPixels {
		return grid.Direction{}, false
	}
	adx, ady := math.Abs(delta.X), math.Abs(delta.Y)
	lo, hi := math.Min(adx, ady), math.Max(adx, ady)
	if hi == 0 {
		return grid.Direction{}, false
	}
	switch {
	case lo/hi >= cfg.DiagonalSlop:
		return grid.Direction{DR: sign(delta.Y), DC: sign(delta.X)}, true
	case ady >= adx*cfg.AxisDominance:
		return grid.Direction{DR: sign(delta.Y)}, true
	case adx >= ady*cfg.AxisDominance:
		return grid.Direction{DC: sign(delta.X)}, true
	}
	return grid.Direction{}, false
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
