// Package random provides the uniform source generators draw from.
package random

import (
	"math/rand"
	"time"
)

// Source yields uniform reals in [0, 1).
type Source interface {
	Float64() float64
}

// Seeded implements Source using math/rand with a fixed seed.
type Seeded struct {
	rand *rand.Rand
	seed int64
}

// NewSource creates a source for the given seed. A zero seed picks one from the clock.
func NewSource(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeded{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (s *Seeded) Float64() float64 {
	return s.rand.Float64()
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Sequence replays a fixed list of values, wrapping around at the end.
// Tests use it to pin individual draws.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
