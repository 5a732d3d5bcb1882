package world

import "hillsim.ai/internal/sim/world/terrain"

// supported reports whether the unit has ground under it. A walking unit
// is also held by the ends of the segment it is on, so diagonal climbs do
// not start a fall halfway.
func (u *Unit) supported(cube terrain.Pos) bool {
	w := u.world
	if w.IsStandable(cube) {
		return true
	}
	if u.act.kind == ActivityMove {
		if w.IsStandable(u.act.from) {
			return true
		}
		if wp, ok := u.act.waypoint(); ok && w.IsStandable(wp) {
			return true
		}
	}
	return false
}

// updateFalling starts, continues or ends a fall. Falling cancels walking.
func (u *Unit) updateFalling(dt float64) {
	w := u.world
	cube := u.CubeCoordinate()
	if !u.falling {
		if !w.IsPassable(cube) || u.supported(cube) {
			return
		}
		u.falling = true
		u.fallStart = cube.Z
		w.log.Debug("unit falling", "unit", u.name, "from", cube.String())
	}
	if u.act.kind == ActivityMove {
		u.goIdle()
	}

	landing, ok := w.landingBelow(cube)
	if !ok {
		landing = terrain.Pos{X: cube.X, Y: cube.Y}
	}
	target := landing.Center()
	z := u.pos[2] - w.cfg.FallSpeed*dt
	if z > target[2] {
		u.setPos([3]float64{u.pos[0], u.pos[1], z})
		return
	}

	u.setPos([3]float64{target[0], target[1], target[2]})
	u.falling = false
	if levels := u.fallStart - landing.Z; levels > 0 {
		u.setHP(u.hp - float64(levels*w.cfg.FallDamagePerLevel))
		w.log.Debug("unit landed", "unit", u.name, "at", landing.String(), "levels", levels)
	}
}
