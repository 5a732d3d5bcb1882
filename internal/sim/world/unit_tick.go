package world

import (
	"fmt"
	"math"

	"hillsim.ai/internal/sim/tasks"
)

func (w *World) checkStep(dt float64) error {
	if math.IsNaN(dt) || dt <= 0 || dt > w.cfg.MaxTimeStep {
		return fmt.Errorf("dt=%g: %w", dt, ErrInvalidDuration)
	}
	return nil
}

// AdvanceTime runs one tick of the unit: death, forced rest, falling, the
// assigned task, default behaviour, the current activity and level-ups, in
// that order. A dead unit ignores the call.
func (u *Unit) AdvanceTime(dt float64) error {
	w := u.world
	if w == nil {
		return fmt.Errorf("advance %s: %w", u.name, ErrNoWorld)
	}
	if err := w.checkStep(dt); err != nil {
		return err
	}
	if !u.alive {
		return nil
	}
	if u.hp <= 0 {
		u.die()
		return nil
	}

	before := u.lifetime
	u.lifetime += dt
	interval := w.cfg.RestInterval
	if math.Floor(u.lifetime/interval) > math.Floor(before/interval) && u.act.kind != ActivityFight {
		u.goIdle()
		u.act = activityState{kind: ActivityRest}
		w.log.Debug("forced rest", "unit", u.name, "lifetime", u.lifetime)
	}

	u.updateFalling(dt)

	if t := u.task; t != nil {
		err := t.Execute(dt)
		if u.task == t && t.Done() {
			u.task = nil
			w.log.Debug("task done", "unit", u.name, "kind", string(tasks.KindOf(t)))
		}
		if err != nil {
			return fmt.Errorf("%s task of %s: %w", tasks.KindOf(t), u.name, err)
		}
	}

	if u.act.kind == ActivityIdle && u.task == nil && u.defaultBehavior && !u.falling {
		u.chooseDefault()
	}

	switch u.act.kind {
	case ActivityMove:
		if !u.falling {
			u.advanceMove(dt)
		}
	case ActivityWork:
		u.advanceWork(dt)
	case ActivityRest:
		u.advanceRest(dt)
	case ActivityFight:
		u.advanceFight(dt)
	}

	u.levelUp()
	return nil
}

// levelUp raises one attribute for every full ExpPerLevel of experience
// not yet converted.
func (u *Unit) levelUp() {
	w := u.world
	for u.levels < u.exp/w.cfg.ExpPerLevel {
		u.levels++
		switch w.rand.Intn(3) {
		case 0:
			u.SetToughness(u.toughness + 1)
		case 1:
			u.SetAgility(u.agility + 1)
		default:
			u.SetStrength(u.strength + 1)
		}
	}
}

func (u *Unit) die() {
	w := u.world
	w.log.Info("unit died", "unit", u.name, "pos", u.CubeCoordinate().String())
	w.obs.UnitDied(u.name)
	w.RemoveUnit(u)
}
