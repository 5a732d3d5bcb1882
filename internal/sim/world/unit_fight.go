package world

import (
	"fmt"

	"hillsim.ai/internal/sim/world/feature/combat"
	"hillsim.ai/internal/sim/world/logic/mathx"
	"hillsim.ai/internal/sim/world/terrain"
)

func (u *Unit) stats() combat.Stats {
	return combat.Stats{Agility: u.agility, Strength: u.strength}
}

// CanAttack reports whether other is a living enemy in a neighbouring cube
// of the same world.
func (u *Unit) CanAttack(other *Unit) bool {
	if other == nil || other == u || u.world == nil || other.world != u.world {
		return false
	}
	if !u.alive || !other.alive {
		return false
	}
	if u.faction == other.faction {
		return false
	}
	return u.IsNextTo(other)
}

// IsNextTo reports whether the two units stand in the same or adjacent cubes.
func (u *Unit) IsNextTo(other *Unit) bool {
	a, b := u.CubeCoordinate(), other.CubeCoordinate()
	return mathx.Chebyshev(a.X, a.Y, a.Z, b.X, b.Y, b.Z) <= 1
}

func (u *Unit) IsFriend(other *Unit) bool {
	return other != nil && u.faction != nil && u.faction == other.faction
}

// Attack starts a fight with other. The defender reacts immediately.
func (u *Unit) Attack(other *Unit) error {
	if err := u.ready("attack"); err != nil {
		return err
	}
	if !u.CanAttack(other) {
		name := "<nil>"
		if other != nil {
			name = other.name
		}
		return fmt.Errorf("%s attack %s: %w", u.name, name, ErrNotAttackable)
	}
	w := u.world
	d := w.cfg.FightDuration

	u.face(other.pos)
	other.face(u.pos)
	u.act = activityState{kind: ActivityFight, role: roleAttacking, fightLeft: d, opponent: other}
	other.act = activityState{kind: ActivityFight, role: roleDefending, fightLeft: d, opponent: u}
	other.speed = 0
	other.velocity = [3]float64{}

	res := other.defend(u)
	w.log.Debug("attack", "attacker", u.name, "defender", other.name, "result", res.String())
	return nil
}

// Fight is an alias for Attack.
func (u *Unit) Fight(other *Unit) error { return u.Attack(other) }

func (u *Unit) defend(attacker *Unit) combat.Result {
	w := u.world
	res := combat.Resolve(attacker.stats(), u.stats(), w.rand.Float64())
	if res == combat.Dodge && !u.dodge(attacker) {
		res = combat.Block
	}
	switch res {
	case combat.Dodge, combat.Block:
		u.gainExperience(w.cfg.ExpPerCombat)
	case combat.Hit:
		u.setHP(u.hp - float64(combat.Damage(attacker.stats())))
		attacker.gainExperience(w.cfg.ExpPerCombat)
	}
	return res
}

// dodge jumps to a random standable cube on the same level that the
// attacker does not occupy.
func (u *Unit) dodge(attacker *Unit) bool {
	w := u.world
	here := u.CubeCoordinate()
	avoid := attacker.CubeCoordinate()
	var free []terrain.Pos
	for _, d := range terrain.HorizontalOffsets {
		p := here.Add(d)
		if p != avoid && w.IsStandable(p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return false
	}
	u.setPos(free[w.rand.Intn(len(free))].Center())
	return true
}

func (u *Unit) advanceFight(dt float64) {
	u.act.fightLeft -= dt
	if u.act.fightLeft <= timerEpsilon {
		u.act = idle()
	}
}
