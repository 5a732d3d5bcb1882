package rng

import "testing"

func TestSeededIsReproducible(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() || a.Intn(100) != b.Intn(100) {
			t.Fatalf("sources with the same seed diverged at draw %d", i)
		}
	}
}

func TestScriptWrapsAndReduces(t *testing.T) {
	s := &Script{Floats: []float64{0.1, 0.9}, Ints: []int{5, -1}}
	if s.Float64() != 0.1 || s.Float64() != 0.9 || s.Float64() != 0.1 {
		t.Fatalf("float script did not wrap")
	}
	if got := s.Intn(3); got != 2 {
		t.Fatalf("expected 5%%3=2, got %d", got)
	}
	if got := s.Intn(3); got != 2 {
		t.Fatalf("expected -1 to wrap to 2, got %d", got)
	}
	var empty Script
	if empty.Float64() != 0 || empty.Intn(4) != 0 {
		t.Fatalf("empty script should yield zeros")
	}
}
