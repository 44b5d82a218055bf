package engine

import (
	"crypto/rand"
	"encoding/binary"
)

// RNG is a seedable uniform random source owned by a single table instance.
// It is deliberately not safe for concurrent use: each table holds its own
// RNG so independent tables never interfere with each other's draw sequences.
//
// The generator is Mulberry32, a simple PRNG that can be implemented
// identically in Go and JavaScript.
// Algorithm: https://gist.github.com/tommyettinger/46a874533244883189143505d203312c
type RNG struct {
	seed  int64
	state uint32
}

// New creates a deterministic RNG from the given seed.
func New(seed int64) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// NewFromEntropy creates an RNG seeded from crypto/rand and returns it along
// with the effective seed, so the run remains reproducible after the fact.
func NewFromEntropy() (*RNG, int64) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand is documented to never fail on supported platforms;
		// fall back to a fixed seed rather than panic in a game loop.
		return New(1), 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	return New(seed), seed
}

// Seed reseeds the generator in place and returns the effective seed.
func (r *RNG) Seed(seed int64) int64 {
	r.seed = seed
	// Fold the 64-bit seed into the 32-bit Mulberry state.
	r.state = uint32(seed) ^ uint32(uint64(seed)>>32)
	return seed
}

// EffectiveSeed returns the seed the generator was last seeded with.
func (r *RNG) EffectiveSeed() int64 {
	return r.seed
}

// Next returns the next random uint32.
func (r *RNG) Next() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / 4294967296.0
}

// IntN returns a uniform random int in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	idx := int(r.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}
