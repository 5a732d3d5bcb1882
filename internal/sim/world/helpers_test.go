package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hillsim.ai/internal/sim/world/logic/rng"
	"hillsim.ai/internal/sim/world/terrain"
)

// codes returns an all-air [x][y][z] terrain array.
func codes(nx, ny, nz int) [][][]int {
	out := make([][][]int, nx)
	for x := range out {
		out[x] = make([][]int, ny)
		for y := range out[x] {
			out[x][y] = make([]int, nz)
		}
	}
	return out
}

func set(c [][][]int, t terrain.Type, ps ...terrain.Pos) [][][]int {
	for _, p := range ps {
		c[p.X][p.Y][p.Z] = int(t)
	}
	return c
}

func at(x, y, z int) terrain.Pos { return terrain.Pos{X: x, Y: y, Z: z} }

type changeLog struct {
	changed []terrain.Pos
}

func (c *changeLog) listen(x, y, z int) {
	c.changed = append(c.changed, at(x, y, z))
}

func newWorld(t *testing.T, c [][][]int, opts ...Option) *World {
	t.Helper()
	opts = append([]Option{WithRand(&rng.Script{Floats: []float64{0.99}})}, opts...)
	w, err := New(c, nil, opts...)
	require.NoError(t, err)
	return w
}

// addUnit places a unit with all attributes at 50 (max HP 50, speed 1.5).
func addUnit(t *testing.T, w *World, name string, p terrain.Pos, f *Faction) *Unit {
	t.Helper()
	u, err := NewUnit(name, [3]int{p.X, p.Y, p.Z}, 50, 50, 50, 50, false)
	require.NoError(t, err)
	require.NoError(t, w.AddUnit(u, f))
	return u
}

func tickN(t *testing.T, w *World, n int, dt float64) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, w.AdvanceTime(dt))
	}
}

// tickUntil advances until done reports true or the budget runs out.
func tickUntil(t *testing.T, w *World, dt float64, budget int, done func() bool) {
	t.Helper()
	for i := 0; i < budget; i++ {
		if done() {
			return
		}
		require.NoError(t, w.AdvanceTime(dt))
	}
	require.True(t, done(), "condition not reached after %d ticks", budget)
}
