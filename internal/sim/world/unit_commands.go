package world

import (
	"errors"
	"fmt"

	"hillsim.ai/internal/sim/world/feature/work"
	"hillsim.ai/internal/sim/world/logic/mathx"
	"hillsim.ai/internal/sim/world/logic/movement"
	"hillsim.ai/internal/sim/world/terrain"
)

// ready reports why the unit cannot take a new activity command.
func (u *Unit) ready(op string) error {
	if u.world == nil {
		return fmt.Errorf("%s %s: %w", op, u.name, ErrNoWorld)
	}
	if !u.alive {
		return fmt.Errorf("%s %s: %w", op, u.name, ErrDead)
	}
	if u.act.kind == ActivityFight {
		return fmt.Errorf("%s %s: %w", op, u.name, ErrBusy)
	}
	return nil
}

func (u *Unit) checkStand(op string, p terrain.Pos) error {
	if !u.world.InBounds(p) {
		return fmt.Errorf("%s %s to %v: %w", op, u.name, p, ErrOutOfBounds)
	}
	if !u.world.IsStandable(p) {
		return fmt.Errorf("%s %s to %v: %w", op, u.name, p, ErrNotStandable)
	}
	return nil
}

// MoveTo walks to the target cube along a route. A failed route search
// leaves the unit idle.
func (u *Unit) MoveTo(target terrain.Pos) error {
	if err := u.ready("move"); err != nil {
		return err
	}
	if err := u.checkStand("move", target); err != nil {
		return err
	}
	route, err := u.findRoute(target)
	if err != nil {
		u.goIdle()
		return fmt.Errorf("move %s to %v: %w", u.name, target, err)
	}
	u.startRoute(route, target)
	return nil
}

// MoveToAdjacent steps into one of the 26 neighbouring cubes.
func (u *Unit) MoveToAdjacent(dx, dy, dz int) error {
	if err := u.ready("step"); err != nil {
		return err
	}
	if mathx.AbsInt(dx) > 1 || mathx.AbsInt(dy) > 1 || mathx.AbsInt(dz) > 1 || (dx == 0 && dy == 0 && dz == 0) {
		return fmt.Errorf("step %s by (%d,%d,%d): %w", u.name, dx, dy, dz, ErrInvalidStep)
	}
	from := u.CubeCoordinate()
	target := from.Add(terrain.Pos{X: dx, Y: dy, Z: dz})
	if err := u.checkStand("step", target); err != nil {
		return err
	}
	u.startRoute([]terrain.Pos{from, target}, target)
	return nil
}

func (u *Unit) findRoute(goal terrain.Pos) ([]terrain.Pos, error) {
	w := u.world
	route, expanded, err := movement.FindRoute(u.CubeCoordinate(), goal, w.InBounds, w.IsStandable, w.cfg.PathMaxNodes)
	w.obs.PathSearch(err == nil, expanded)
	if errors.Is(err, movement.ErrNoPath) {
		return nil, ErrNoPath
	}
	return route, err
}

func (u *Unit) startRoute(route []terrain.Pos, goal terrain.Pos) {
	next := 1
	if len(route) == 1 {
		next = 0
	}
	u.act = activityState{
		kind:  ActivityMove,
		route: route,
		next:  next,
		goal:  goal,
		from:  u.CubeCoordinate(),
	}
	u.aim()
}

func (u *Unit) Work() error {
	return u.WorkAt(u.CubeCoordinate())
}

// WorkAt starts working on the unit's own cube or one of its 26 neighbours.
func (u *Unit) WorkAt(target terrain.Pos) error {
	if err := u.ready("work"); err != nil {
		return err
	}
	if !u.world.InBounds(target) {
		return fmt.Errorf("work %s at %v: %w", u.name, target, ErrOutOfBounds)
	}
	c := u.CubeCoordinate()
	if mathx.Chebyshev(c.X, c.Y, c.Z, target.X, target.Y, target.Z) > 1 {
		return fmt.Errorf("work %s at %v: %w", u.name, target, ErrNotAdjacent)
	}
	d := work.Duration(u.world.cfg.WorkBase, u.strength)
	u.act = activityState{
		kind:       ActivityWork,
		workTarget: target,
		workLeft:   d,
		workTotal:  d,
	}
	u.face(target.Center())
	return nil
}

func (u *Unit) Rest() error {
	if err := u.ready("rest"); err != nil {
		return err
	}
	u.act = activityState{kind: ActivityRest}
	return nil
}

// StartSprinting has no effect while the unit has no stamina left.
func (u *Unit) StartSprinting() {
	if u.stamina > 0 {
		u.sprinting = true
	}
}

func (u *Unit) StopSprinting() { u.sprinting = false }

func (u *Unit) goIdle() {
	u.act = idle()
	u.speed = 0
	u.velocity = [3]float64{}
}
