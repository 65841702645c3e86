// internal/seeded/seeded.go
//
// Reproducible pseudo-random numbers derived from a string seed.
//
//   - Hash: 32-bit FNV-1a over the seed's UTF-16 code units.
//   - Stream: mulberry32 generator producing floats in [0,1).
//
// Both are specified bit-for-bit: the same seed must yield the same float
// sequence on every platform that renders these puzzles, so nothing here may
// use math/rand or depend on host word size.
package seeded

import "unicode/utf16"

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619

	mulberryIncrement uint32 = 0x6d2b79f5
	twoPow32                 = 4294967296.0
)

// Hash returns the FNV-1a hash of seed, one step per UTF-16 code unit.
// For ASCII seeds this is the textbook byte-wise FNV-1a.
func Hash(seed string) uint32 {
	h := fnvOffset32
	for _, c := range utf16.Encode([]rune(seed)) {
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return h
}

// Stream is a mulberry32 generator. It is not safe for concurrent use and is
// meant to be owned by the single call that created it.
type Stream struct {
	state uint32
	draws uint64
}

// NewStream starts a stream from a raw 32-bit state.
func NewStream(state uint32) *Stream {
	return &Stream{state: state}
}

// FromSeed is NewStream(Hash(seed)).
func FromSeed(seed string) *Stream {
	return NewStream(Hash(seed))
}

// Float64 advances the stream and returns a value in [0,1).
func (s *Stream) Float64() float64 {
	s.state += mulberryIncrement
	s.draws++
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / twoPow32
}

// Intn returns floor(Float64() * n). n must be positive.
func (s *Stream) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// Draws reports how many values have been consumed.
func (s *Stream) Draws() uint64 { return s.draws }
