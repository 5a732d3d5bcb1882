package store

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"hillsim.ai/internal/sim/world/terrain"
)

// Grid is a dense, fixed-size 3-D array of terrain types.
type Grid struct {
	NX, NY, NZ int
	Cells      []terrain.Type

	dirty bool
	hash  [32]byte
}

func NewGrid(nx, ny, nz int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive: %dx%dx%d", nx, ny, nz)
	}
	return &Grid{
		NX:    nx,
		NY:    ny,
		NZ:    nz,
		Cells: make([]terrain.Type, nx*ny*nz),
		dirty: true,
	}, nil
}

// FromCodes builds a grid from a [x][y][z] array of terrain codes.
func FromCodes(codes [][][]int) (*Grid, error) {
	nx := len(codes)
	if nx == 0 || len(codes[0]) == 0 || len(codes[0][0]) == 0 {
		return nil, fmt.Errorf("terrain array is empty")
	}
	ny := len(codes[0])
	nz := len(codes[0][0])
	g, err := NewGrid(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	for x := 0; x < nx; x++ {
		if len(codes[x]) != ny {
			return nil, fmt.Errorf("terrain array is ragged at x=%d", x)
		}
		for y := 0; y < ny; y++ {
			if len(codes[x][y]) != nz {
				return nil, fmt.Errorf("terrain array is ragged at x=%d y=%d", x, y)
			}
			for z := 0; z < nz; z++ {
				t, ok := terrain.ParseType(codes[x][y][z])
				if !ok {
					return nil, fmt.Errorf("unknown terrain code %d at (%d,%d,%d)", codes[x][y][z], x, y, z)
				}
				g.Cells[g.Index(terrain.Pos{X: x, Y: y, Z: z})] = t
			}
		}
	}
	return g, nil
}

func (g *Grid) Len() int {
	return len(g.Cells)
}

func (g *Grid) InBounds(p terrain.Pos) bool {
	return p.X >= 0 && p.X < g.NX && p.Y >= 0 && p.Y < g.NY && p.Z >= 0 && p.Z < g.NZ
}

// OnBorder reports whether p lies on one of the six outer faces.
func (g *Grid) OnBorder(p terrain.Pos) bool {
	return p.X == 0 || p.Y == 0 || p.Z == 0 ||
		p.X == g.NX-1 || p.Y == g.NY-1 || p.Z == g.NZ-1
}

// Index is only meaningful for in-bounds positions.
func (g *Grid) Index(p terrain.Pos) int {
	return p.X + p.Y*g.NX + p.Z*g.NX*g.NY
}

func (g *Grid) PosAt(i int) terrain.Pos {
	plane := g.NX * g.NY
	return terrain.Pos{X: i % g.NX, Y: (i % plane) / g.NX, Z: i / plane}
}

// Get returns Air for out-of-bounds positions.
func (g *Grid) Get(p terrain.Pos) terrain.Type {
	if !g.InBounds(p) {
		return terrain.Air
	}
	return g.Cells[g.Index(p)]
}

// Set returns the previous type. Out-of-bounds writes are ignored.
func (g *Grid) Set(p terrain.Pos, t terrain.Type) terrain.Type {
	if !g.InBounds(p) {
		return terrain.Air
	}
	i := g.Index(p)
	prev := g.Cells[i]
	if prev == t {
		return prev
	}
	g.Cells[i] = t
	g.dirty = true
	return prev
}

// Standable reports whether p is passable and resting on the floor or a solid cube.
func (g *Grid) Standable(p terrain.Pos) bool {
	if !g.InBounds(p) || !g.Get(p).Passable() {
		return false
	}
	return p.Z == 0 || g.Get(p.Below()).Solid()
}

func (g *Grid) Digest() [32]byte {
	if g.dirty || g.hash == ([32]byte{}) {
		h := sha256.New()
		var tmp [4]byte
		for _, d := range []int{g.NX, g.NY, g.NZ} {
			binary.LittleEndian.PutUint32(tmp[:], uint32(d))
			h.Write(tmp[:])
		}
		for _, v := range g.Cells {
			h.Write([]byte{byte(v)})
		}
		copy(g.hash[:], h.Sum(nil))
		g.dirty = false
	}
	return g.hash
}
