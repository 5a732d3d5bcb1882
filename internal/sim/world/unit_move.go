package world

import (
	"math"

	"hillsim.ai/internal/sim/world/logic/movement"
)

// timerEpsilon absorbs float drift when dt slices are summed.
const timerEpsilon = 1e-9

func distance(a, b [3]float64) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	dz := b[2] - a[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// aim recomputes speed and velocity for the segment towards the current
// waypoint. It reports false when the unit cannot make progress.
func (u *Unit) aim() bool {
	wp, ok := u.act.waypoint()
	if !ok {
		return false
	}
	dz := wp.Z - u.act.from.Z
	speed := movement.StepSpeed(u.BaseSpeed(), dz, u.sprinting)
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		u.speed = 0
		u.velocity = [3]float64{}
		return false
	}
	u.speed = speed
	target := wp.Center()
	d := distance(u.pos, target)
	if d <= timerEpsilon {
		u.velocity = [3]float64{}
		return true
	}
	for i := range u.velocity {
		u.velocity[i] = speed * (target[i] - u.pos[i]) / d
	}
	u.face(target)
	return true
}

// advanceMove integrates the walk for dt seconds. Time left over after a
// waypoint is spent on the next segment so that splitting dt does not
// change where the unit ends up.
func (u *Unit) advanceMove(dt float64) {
	w := u.world
	left := dt
	for left > timerEpsilon && u.act.kind == ActivityMove {
		wp, ok := u.act.waypoint()
		if !ok {
			u.goIdle()
			return
		}
		if !w.IsStandable(wp) {
			if !u.reroute() {
				return
			}
			continue
		}
		if !u.aim() {
			u.goIdle()
			return
		}

		step := left
		if u.sprinting {
			if budget := u.stamina / w.cfg.SprintStaminaDrain; budget < step {
				step = budget
			}
			if step <= 0 {
				u.sprinting = false
				continue
			}
		}

		target := wp.Center()
		d := distance(u.pos, target)
		if d <= u.speed*step+timerEpsilon {
			t := math.Min(d/u.speed, step)
			u.drainSprint(t)
			u.setPos(target)
			left -= t
			u.arrive()
			continue
		}

		next := u.pos
		for i := range next {
			next[i] += u.velocity[i] * step
		}
		u.drainSprint(step)
		u.setPos(next)
		left -= step
	}
}

// arrive handles reaching the current waypoint.
func (u *Unit) arrive() {
	wp := u.act.route[u.act.next]
	if wp != u.act.from {
		u.gainExperience(u.world.cfg.ExpPerStep)
	}
	u.act.from = wp
	u.act.next++
	if u.act.next >= len(u.act.route) {
		u.goIdle()
	}
}

// reroute replaces the route from the current cube to the same goal.
func (u *Unit) reroute() bool {
	goal := u.act.goal
	route, err := u.findRoute(goal)
	if err != nil {
		u.world.log.Debug("route blocked", "unit", u.name, "goal", goal.String(), "err", err)
		u.goIdle()
		return false
	}
	u.startRoute(route, goal)
	return true
}

func (u *Unit) drainSprint(t float64) {
	if !u.sprinting || t <= 0 {
		return
	}
	u.setStamina(u.stamina - u.world.cfg.SprintStaminaDrain*t)
	if u.stamina <= timerEpsilon {
		u.stamina = 0
		u.sprinting = false
	}
}

// setPos moves the unit and keeps the per-cube occupant sets in step.
// Carried items move with it.
func (u *Unit) setPos(p [3]float64) {
	from := u.CubeCoordinate()
	u.pos = p
	u.syncCarried()
	if u.world != nil {
		u.world.moveUnitOccupancy(u, from, u.CubeCoordinate())
	}
}

func (u *Unit) syncCarried() {
	if u.log != nil {
		u.log.pos = u.pos
	}
	if u.boulder != nil {
		u.boulder.pos = u.pos
	}
}
