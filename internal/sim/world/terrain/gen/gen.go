// Package gen builds demo terrain arrays for world construction: a perlin
// heightmap of rock with trees and workshops sprinkled on the surface.
package gen

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"hillsim.ai/internal/sim/world/logic/mathx"
	"hillsim.ai/internal/sim/world/terrain"
)

type Params struct {
	NX, NY, NZ int
	Seed       int64

	// Scale is the heightmap feature size in cubes.
	Scale float64
	// MaxHeight caps the rock layer; 0 means half the world height.
	MaxHeight int

	TreePermille     int
	WorkshopPermille int
	// WorkshopGrid and WorkshopRadius shape workshop clusters.
	WorkshopGrid   int
	WorkshopRadius int
}

func DefaultParams(nx, ny, nz int, seed int64) Params {
	return Params{
		NX: nx, NY: ny, NZ: nz,
		Seed:             seed,
		Scale:            12,
		TreePermille:     60,
		WorkshopPermille: 250,
		WorkshopGrid:     8,
		WorkshopRadius:   1,
	}
}

// Generate returns an [x][y][z] array of terrain codes. Every solid cube
// sits on a rock column that reaches the floor, so nothing caves in when
// the world is built from it.
func Generate(p Params) ([][][]int, error) {
	if p.NX <= 0 || p.NY <= 0 || p.NZ <= 0 {
		return nil, fmt.Errorf("gen: bad dimensions %dx%dx%d", p.NX, p.NY, p.NZ)
	}
	if p.Scale <= 0 {
		p.Scale = 1
	}
	maxH := p.MaxHeight
	if maxH <= 0 {
		maxH = p.NZ / 2
	}
	// Leave the top layer open so there is always somewhere to stand.
	maxH = mathx.ClampInt(maxH, 0, max(p.NZ-2, 0))
	trees := uint64(ClampPermille(p.TreePermille))
	noise := perlin.NewPerlin(2, 2, 3, p.Seed)

	out := make([][][]int, p.NX)
	for x := range out {
		out[x] = make([][]int, p.NY)
		for y := range out[x] {
			col := make([]int, p.NZ)
			out[x][y] = col

			h := Height(noise, float64(x)/p.Scale, float64(y)/p.Scale, maxH)
			for z := 0; z < h; z++ {
				col[z] = int(terrain.Rock)
			}
			if h+1 >= p.NZ {
				continue
			}
			switch {
			case InCluster(p.Seed, x, y, p.WorkshopGrid, p.WorkshopRadius, uint64(ClampPermille(p.WorkshopPermille))):
				col[h] = int(terrain.Workshop)
			case mathx.Hash3(p.Seed, x, y, h)%1000 < trees:
				col[h] = int(terrain.Tree)
			}
		}
	}
	return out, nil
}

// Height maps perlin noise at (x,y) to a column height in [0,maxH].
func Height(noise *perlin.Perlin, x, y float64, maxH int) int {
	v := (noise.Noise2D(x, y) + 1) / 2
	return mathx.ClampInt(int(v*float64(maxH+1)), 0, maxH)
}

func ClampPermille(v int) int {
	return mathx.ClampInt(v, 0, 1000)
}

// InCluster reports whether (x,y) lies within radius of a cluster centre.
// Each grid cell holds at most one centre, placed by hash.
func InCluster(seed int64, x, y, grid, radius int, probPermille uint64) bool {
	if grid <= 0 || radius <= 0 || probPermille == 0 {
		return false
	}
	gx := floorDiv(x, grid)
	gy := floorDiv(y, grid)
	r2 := radius * radius

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cgx := gx + dx
			cgy := gy + dy
			h := mathx.Hash2(seed, cgx, cgy)
			if h%1000 >= probPermille {
				continue
			}

			ox := int((h >> 10) % uint64(grid))
			oy := int((h >> 20) % uint64(grid))
			cx := cgx*grid + ox
			cy := cgy*grid + oy

			ddx := x - cx
			ddy := y - cy
			if ddx*ddx+ddy*ddy <= r2 {
				return true
			}
		}
	}
	return false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
