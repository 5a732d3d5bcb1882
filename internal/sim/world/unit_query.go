package world

import (
	"math"

	"hillsim.ai/internal/sim/world/terrain"
)

func cubeDistance(a, b terrain.Pos) float64 {
	d := a.Sub(b)
	return math.Sqrt(float64(d.X*d.X + d.Y*d.Y + d.Z*d.Z))
}

// nearest returns the candidate whose cube is closest to from. Earlier
// candidates win ties.
func nearest[T any](from terrain.Pos, items []T, cube func(T) terrain.Pos, keep func(T) bool) (T, bool) {
	var best T
	found := false
	bestD := math.Inf(1)
	for _, it := range items {
		if !keep(it) {
			continue
		}
		if d := cubeDistance(from, cube(it)); d < bestD {
			best, bestD, found = it, d, true
		}
	}
	return best, found
}

func unitCube(v *Unit) terrain.Pos { return v.CubeCoordinate() }

// NearestEnemy is nil when no living unit of another faction exists.
func (u *Unit) NearestEnemy() *Unit {
	if u.world == nil {
		return nil
	}
	v, _ := nearest(u.CubeCoordinate(), u.world.units.items, unitCube, func(v *Unit) bool {
		return v != u && v.alive && v.faction != u.faction
	})
	return v
}

func (u *Unit) NearestFriend() *Unit {
	if u.world == nil {
		return nil
	}
	v, _ := nearest(u.CubeCoordinate(), u.world.units.items, unitCube, func(v *Unit) bool {
		return v != u && v.alive && v.faction == u.faction
	})
	return v
}

// NearestLog ignores logs that are being carried.
func (u *Unit) NearestLog() *Log {
	if u.world == nil {
		return nil
	}
	l, _ := nearest(u.CubeCoordinate(), u.world.logs.items,
		func(l *Log) terrain.Pos { return l.CubeCoordinate() },
		func(l *Log) bool { return l.carrier == nil })
	return l
}

func (u *Unit) NearestBoulder() *Boulder {
	if u.world == nil {
		return nil
	}
	b, _ := nearest(u.CubeCoordinate(), u.world.boulders.items,
		func(b *Boulder) terrain.Pos { return b.CubeCoordinate() },
		func(b *Boulder) bool { return b.carrier == nil })
	return b
}
