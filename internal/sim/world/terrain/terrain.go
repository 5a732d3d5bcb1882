package terrain

import "fmt"

// Type is the terrain code stored for each cube. The integer values are the
// codes accepted by world construction.
type Type int

const (
	Air      Type = 0
	Rock     Type = 1
	Tree     Type = 2
	Workshop Type = 3
)

func (t Type) Valid() bool {
	return t >= Air && t <= Workshop
}

// Passable reports whether a unit may occupy a cube of this type.
func (t Type) Passable() bool {
	return t == Air || t == Workshop
}

func (t Type) Solid() bool {
	return t.Valid() && !t.Passable()
}

func (t Type) String() string {
	switch t {
	case Air:
		return "AIR"
	case Rock:
		return "ROCK"
	case Tree:
		return "TREE"
	case Workshop:
		return "WORKSHOP"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func ParseType(code int) (Type, bool) {
	t := Type(code)
	return t, t.Valid()
}

type Pos struct {
	X int
	Y int
	Z int
}

func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

func (p Pos) Sub(o Pos) Pos {
	return Pos{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

func (p Pos) Below() Pos {
	return Pos{X: p.X, Y: p.Y, Z: p.Z - 1}
}

// Center returns the continuous coordinate of the middle of the cube.
func (p Pos) Center() [3]float64 {
	return [3]float64{float64(p.X) + 0.5, float64(p.Y) + 0.5, float64(p.Z) + 0.5}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// FaceOffsets are the six face-adjacent directions.
var FaceOffsets = [6]Pos{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// NeighborOffsets lists all 26 face/edge/corner directions in a fixed order.
var NeighborOffsets = func() []Pos {
	out := make([]Pos, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, Pos{X: dx, Y: dy, Z: dz})
			}
		}
	}
	return out
}()

// HorizontalOffsets lists the 8 neighbours on the same level.
var HorizontalOffsets = [8]Pos{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}
