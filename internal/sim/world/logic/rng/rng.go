// Package rng isolates every random draw the simulation makes so callers can
// substitute a deterministic sequence.
package rng

import "math/rand"

type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

type seeded struct {
	r *rand.Rand
}

func New(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Float64() float64 { return s.r.Float64() }
func (s *seeded) Intn(n int) int   { return s.r.Intn(n) }

// Script replays fixed values. When a list is exhausted it wraps around; an
// empty list yields 0.
type Script struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// Intn reduces the scripted value modulo n so any script is safe for any n.
func (s *Script) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
