package seeded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		seed string
		want uint32
	}{
		{"", 2166136261},
		{"test", 2949673445},
		{"2026-10-19:0", 4059348994},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hash(tt.seed), "seed %q", tt.seed)
	}
}

func TestHashUsesUTF16CodeUnits(t *testing.T) {
	// U+00E9 is a single code unit; a byte-wise hash would see two bytes.
	h := fnvOffset32
	h ^= 0xe9
	h *= fnvPrime32
	assert.Equal(t, h, Hash("é"))
}

func TestStreamGolden(t *testing.T) {
	s := FromSeed("test")
	assert.Equal(t, 0.7171058997046202, s.Float64())
	assert.Equal(t, 0.3465085106436163, s.Float64())
	assert.Equal(t, 0.26757614384405315, s.Float64())
	assert.EqualValues(t, 3, s.Draws())

	z := NewStream(0)
	assert.Equal(t, 0.26642920868471265, z.Float64())
	assert.Equal(t, 0.0003297457005828619, z.Float64())
	assert.Equal(t, 0.2232720274478197, z.Float64())
}

func TestStreamDeterministic(t *testing.T) {
	a, b := FromSeed("daily:3"), FromSeed("daily:3")
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestStreamRange(t *testing.T) {
	s := FromSeed("range")
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestIntn(t *testing.T) {
	s := FromSeed("intn")
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := s.Intn(8)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 8)
		seen[n] = true
	}
	assert.Len(t, seen, 8)
}
