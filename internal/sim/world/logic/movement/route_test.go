package movement

import (
	"errors"
	"math"
	"testing"

	"hillsim.ai/internal/sim/world/logic/mathx"
	"hillsim.ai/internal/sim/world/terrain"
	"hillsim.ai/internal/sim/world/terrain/store"
)

func gridFuncs(g *store.Grid) (func(Pos) bool, func(Pos) bool) {
	return g.InBounds, g.Standable
}

func checkRoute(t *testing.T, g *store.Grid, route []Pos, start, goal Pos) {
	t.Helper()
	if len(route) == 0 {
		t.Fatalf("empty route")
	}
	if route[0] != start || route[len(route)-1] != goal {
		t.Fatalf("route endpoints %v..%v, want %v..%v", route[0], route[len(route)-1], start, goal)
	}
	for i := 1; i < len(route); i++ {
		a, b := route[i-1], route[i]
		if d := mathx.Chebyshev(a.X, a.Y, a.Z, b.X, b.Y, b.Z); d != 1 {
			t.Fatalf("step %d %v -> %v is not adjacent", i, a, b)
		}
		if !g.Standable(b) {
			t.Fatalf("step %d lands on non-standable %v", i, b)
		}
	}
}

func TestFindRouteOpenFloor(t *testing.T) {
	g, _ := store.NewGrid(3, 3, 3)
	inBounds, standable := gridFuncs(g)
	start, goal := Pos{}, Pos{X: 2, Y: 2}

	route, _, err := FindRoute(start, goal, inBounds, standable, 0)
	if err != nil {
		t.Fatalf("FindRoute: %v", err)
	}
	checkRoute(t, g, route, start, goal)
	if len(route) != 3 {
		t.Fatalf("expected diagonal route of 3 cubes, got %v", route)
	}
}

func TestFindRouteDetoursAroundWall(t *testing.T) {
	g, _ := store.NewGrid(5, 5, 2)
	// Wall along x=2 with a gap at y=4.
	for y := 0; y < 4; y++ {
		g.Set(Pos{X: 2, Y: y, Z: 0}, terrain.Rock)
		g.Set(Pos{X: 2, Y: y, Z: 1}, terrain.Rock)
	}
	inBounds, standable := gridFuncs(g)
	start, goal := Pos{X: 0, Y: 0}, Pos{X: 4, Y: 0}

	route, _, err := FindRoute(start, goal, inBounds, standable, 0)
	if err != nil {
		t.Fatalf("FindRoute: %v", err)
	}
	checkRoute(t, g, route, start, goal)
	sawGap := false
	for _, p := range route {
		if p.X == 2 && p.Y == 4 {
			sawGap = true
		}
	}
	if !sawGap {
		t.Fatalf("route should pass through the gap: %v", route)
	}
}

func TestFindRouteClimbsOntoLedge(t *testing.T) {
	g, _ := store.NewGrid(3, 1, 3)
	g.Set(Pos{X: 2, Y: 0, Z: 0}, terrain.Rock)
	inBounds, standable := gridFuncs(g)
	start, goal := Pos{}, Pos{X: 2, Y: 0, Z: 1}

	route, _, err := FindRoute(start, goal, inBounds, standable, 0)
	if err != nil {
		t.Fatalf("FindRoute: %v", err)
	}
	checkRoute(t, g, route, start, goal)
}

func TestFindRouteSealedOff(t *testing.T) {
	g, _ := store.NewGrid(5, 3, 2)
	for y := 0; y < 3; y++ {
		g.Set(Pos{X: 2, Y: y, Z: 0}, terrain.Rock)
		g.Set(Pos{X: 2, Y: y, Z: 1}, terrain.Rock)
	}
	inBounds, standable := gridFuncs(g)

	_, _, err := FindRoute(Pos{}, Pos{X: 4}, inBounds, standable, 0)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestFindRouteRejectsBadGoal(t *testing.T) {
	g, _ := store.NewGrid(3, 3, 3)
	inBounds, standable := gridFuncs(g)
	if _, _, err := FindRoute(Pos{}, Pos{X: 1, Y: 1, Z: 2}, inBounds, standable, 0); !errors.Is(err, ErrNoPath) {
		t.Fatalf("floating goal should fail, got %v", err)
	}
	if _, _, err := FindRoute(Pos{}, Pos{X: 9}, inBounds, standable, 0); !errors.Is(err, ErrNoPath) {
		t.Fatalf("out of bounds goal should fail, got %v", err)
	}
}

func TestFindRouteNodeBudget(t *testing.T) {
	g, _ := store.NewGrid(20, 20, 1)
	inBounds, standable := gridFuncs(g)
	_, expanded, err := FindRoute(Pos{}, Pos{X: 19, Y: 19}, inBounds, standable, 3)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected budget exhaustion, got %v", err)
	}
	if expanded != 3 {
		t.Fatalf("expected 3 expanded nodes, got %d", expanded)
	}
}

func TestFindRouteSameCube(t *testing.T) {
	g, _ := store.NewGrid(2, 2, 1)
	inBounds, standable := gridFuncs(g)
	route, _, err := FindRoute(Pos{X: 1}, Pos{X: 1}, inBounds, standable, 0)
	if err != nil || len(route) != 1 {
		t.Fatalf("expected single-cube route, got %v %v", route, err)
	}
}

func TestSpeedModel(t *testing.T) {
	vb := BaseSpeed(50, 50, 50)
	if math.Abs(vb-1.5) > 1e-12 {
		t.Fatalf("expected vb=1.5, got %v", vb)
	}
	if got := StepSpeed(vb, 1, false); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("uphill speed %v", got)
	}
	if got := StepSpeed(vb, -1, false); math.Abs(got-1.8) > 1e-12 {
		t.Fatalf("downhill speed %v", got)
	}
	if got := StepSpeed(vb, 0, true); math.Abs(got-3) > 1e-12 {
		t.Fatalf("sprint speed %v", got)
	}
}
