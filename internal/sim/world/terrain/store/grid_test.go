package store

import (
	"testing"

	"hillsim.ai/internal/sim/world/terrain"
)

func TestFromCodesIndexRoundTrip(t *testing.T) {
	codes := [][][]int{
		{{1, 0}, {0, 0}},
		{{1, 3}, {2, 0}},
		{{1, 0}, {0, 0}},
	}
	g, err := FromCodes(codes)
	if err != nil {
		t.Fatalf("FromCodes: %v", err)
	}
	if g.NX != 3 || g.NY != 2 || g.NZ != 2 {
		t.Fatalf("unexpected dims %dx%dx%d", g.NX, g.NY, g.NZ)
	}
	if got := g.Get(terrain.Pos{X: 1, Y: 0, Z: 1}); got != terrain.Workshop {
		t.Fatalf("expected workshop at (1,0,1), got %v", got)
	}
	if got := g.Get(terrain.Pos{X: 1, Y: 1, Z: 0}); got != terrain.Tree {
		t.Fatalf("expected tree at (1,1,0), got %v", got)
	}
	for i := 0; i < g.Len(); i++ {
		if got := g.Index(g.PosAt(i)); got != i {
			t.Fatalf("index round trip %d -> %v -> %d", i, g.PosAt(i), got)
		}
	}
}

func TestFromCodesRejectsInvalid(t *testing.T) {
	tests := [][][][]int{
		nil,
		{{}},
		{{{0}}, {{0}, {0}}},
		{{{7}}},
	}
	for i, tc := range tests {
		if _, err := FromCodes(tc); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestStandableAndBorder(t *testing.T) {
	g, err := NewGrid(3, 3, 3)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Set(terrain.Pos{X: 1, Y: 1, Z: 1}, terrain.Rock)

	if !g.Standable(terrain.Pos{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("floor cube should be standable")
	}
	if !g.Standable(terrain.Pos{X: 1, Y: 1, Z: 2}) {
		t.Fatalf("cube above rock should be standable")
	}
	if g.Standable(terrain.Pos{X: 0, Y: 0, Z: 1}) {
		t.Fatalf("cube above air should not be standable")
	}
	if g.Standable(terrain.Pos{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("solid cube should not be standable")
	}
	if g.OnBorder(terrain.Pos{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("centre cube is not on the border")
	}
	if !g.OnBorder(terrain.Pos{X: 1, Y: 2, Z: 1}) {
		t.Fatalf("y=max cube is on the border")
	}
}

func TestDigestTracksChanges(t *testing.T) {
	g, _ := NewGrid(2, 2, 2)
	d0 := g.Digest()
	if prev := g.Set(terrain.Pos{}, terrain.Rock); prev != terrain.Air {
		t.Fatalf("expected previous air, got %v", prev)
	}
	d1 := g.Digest()
	if d0 == d1 {
		t.Fatalf("digest did not change after Set")
	}
	g.Set(terrain.Pos{}, terrain.Air)
	if g.Digest() != d0 {
		t.Fatalf("digest should return to the original value")
	}
}
