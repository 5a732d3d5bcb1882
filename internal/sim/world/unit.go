package world

import (
	"fmt"
	"math"
	"regexp"

	"github.com/google/uuid"

	"hillsim.ai/internal/sim/tasks"
	"hillsim.ai/internal/sim/world/logic/mathx"
	"hillsim.ai/internal/sim/world/logic/movement"
	"hillsim.ai/internal/sim/world/terrain"
)

const (
	MinAttribute       = 0
	MaxAttribute       = 200
	MinInitAttribute   = 25
	MaxInitAttribute   = 100
	initialOrientation = math.Pi / 2
)

var namePattern = regexp.MustCompile(`^[A-Z][A-Za-z\s'"]*$`)

func validName(name string) bool {
	return len(name) >= 2 && namePattern.MatchString(name)
}

type Unit struct {
	id   uuid.UUID
	name string

	pos         [3]float64
	orientation float64
	speed       float64
	velocity    [3]float64

	weight    int
	agility   int
	strength  int
	toughness int

	hp      float64
	stamina float64
	exp     int
	levels  int

	alive           bool
	defaultBehavior bool
	sprinting       bool
	lifetime        float64

	falling   bool
	fallStart int

	log     *Log
	boulder *Boulder
	task    tasks.Task

	world   *World
	faction *Faction

	act activityState
}

var _ tasks.Actor = (*Unit)(nil)

type UnitOption func(*Unit)

// WithTask assigns a task before the unit's first tick.
func WithTask(t tasks.Task) UnitOption {
	return func(u *Unit) { u.task = t }
}

func WithOrientation(angle float64) UnitOption {
	return func(u *Unit) { u.SetOrientation(angle) }
}

// NewUnit builds a unit standing at the centre of cube pos. Attribute seeds
// are clamped to [MinInitAttribute, MaxInitAttribute]. Position validity
// against terrain is checked when the unit joins a world.
func NewUnit(name string, pos [3]int, weight, agility, strength, toughness int, defaultBehavior bool, opts ...UnitOption) (*Unit, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if pos[0] < 0 || pos[1] < 0 || pos[2] < 0 {
		return nil, fmt.Errorf("unit %s at %v: %w", name, pos, ErrOutOfBounds)
	}
	u := &Unit{
		id:              uuid.New(),
		name:            name,
		pos:             terrain.Pos{X: pos[0], Y: pos[1], Z: pos[2]}.Center(),
		orientation:     initialOrientation,
		alive:           true,
		defaultBehavior: defaultBehavior,
		act:             idle(),
	}
	u.agility = mathx.ClampInt(agility, MinInitAttribute, MaxInitAttribute)
	u.strength = mathx.ClampInt(strength, MinInitAttribute, MaxInitAttribute)
	u.toughness = mathx.ClampInt(toughness, MinInitAttribute, MaxInitAttribute)
	u.weight = mathx.ClampInt(weight, MinInitAttribute, MaxInitAttribute)
	u.applyWeightFloor()
	u.hp = float64(u.MaxHitPoints())
	u.stamina = float64(u.MaxStamina())
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

func (u *Unit) ID() uuid.UUID { return u.id }
func (u *Unit) Name() string  { return u.name }

func (u *Unit) SetName(name string) error {
	if !validName(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	u.name = name
	return nil
}

func (u *Unit) Position() [3]float64 { return u.pos }

func (u *Unit) CubeCoordinate() terrain.Pos { return cubeOf(u.pos) }

func (u *Unit) Orientation() float64 { return u.orientation }

// SetOrientation accepts any finite angle and stores it wrapped to [0, 2π).
func (u *Unit) SetOrientation(angle float64) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}
	u.orientation = mathx.WrapAngle(angle)
}

func (u *Unit) face(target [3]float64) {
	dx := target[0] - u.pos[0]
	dy := target[1] - u.pos[1]
	if dx == 0 && dy == 0 {
		return
	}
	u.SetOrientation(math.Atan2(dy, dx))
}

func (u *Unit) Weight() int    { return u.weight }
func (u *Unit) Agility() int   { return u.agility }
func (u *Unit) Strength() int  { return u.strength }
func (u *Unit) Toughness() int { return u.toughness }

// TotalWeight includes carried items.
func (u *Unit) TotalWeight() int {
	w := u.weight
	if u.log != nil {
		w += u.log.weight
	}
	if u.boulder != nil {
		w += u.boulder.weight
	}
	return w
}

func (u *Unit) minWeight() int { return (u.strength + u.agility) / 2 }

func (u *Unit) applyWeightFloor() {
	if m := u.minWeight(); u.weight < m {
		u.weight = m
	}
}

func (u *Unit) SetWeight(v int) {
	u.weight = mathx.ClampInt(v, MinAttribute, MaxAttribute)
	u.applyWeightFloor()
	u.clampVitals()
}

func (u *Unit) SetAgility(v int) {
	u.agility = mathx.ClampInt(v, MinAttribute, MaxAttribute)
	u.applyWeightFloor()
	u.clampVitals()
}

func (u *Unit) SetStrength(v int) {
	u.strength = mathx.ClampInt(v, MinAttribute, MaxAttribute)
	u.applyWeightFloor()
	u.clampVitals()
}

func (u *Unit) SetToughness(v int) {
	u.toughness = mathx.ClampInt(v, MinAttribute, MaxAttribute)
	u.clampVitals()
}

// MaxHitPoints is floor(0.02 * weight * toughness).
func (u *Unit) MaxHitPoints() int { return u.weight * u.toughness / 50 }
func (u *Unit) MaxStamina() int   { return u.weight * u.toughness / 50 }

// HitPoints is the current value truncated to an integer.
func (u *Unit) HitPoints() int { return int(u.hp) }
func (u *Unit) Stamina() int   { return int(u.stamina) }

func (u *Unit) setHP(v float64) {
	u.hp = mathx.ClampFloat(v, 0, float64(u.MaxHitPoints()))
}

func (u *Unit) setStamina(v float64) {
	u.stamina = mathx.ClampFloat(v, 0, float64(u.MaxStamina()))
}

func (u *Unit) clampVitals() {
	u.setHP(u.hp)
	u.setStamina(u.stamina)
}

func (u *Unit) Experience() int { return u.exp }

func (u *Unit) gainExperience(n int) {
	if n > 0 {
		u.exp += n
	}
}

// CurrentSpeed is the speed of the segment being walked, 0 when not moving.
func (u *Unit) CurrentSpeed() float64 {
	if u.act.kind != ActivityMove {
		return 0
	}
	return u.speed
}

// BaseSpeed is the level-ground speed for the unit's total weight.
func (u *Unit) BaseSpeed() float64 {
	return movement.BaseSpeed(u.agility, u.strength, u.TotalWeight())
}

func (u *Unit) Activity() Activity { return u.act.kind }

func (u *Unit) IsMoving() bool  { return u.act.kind == ActivityMove }
func (u *Unit) IsWorking() bool { return u.act.kind == ActivityWork }
func (u *Unit) IsResting() bool { return u.act.kind == ActivityRest }
func (u *Unit) IsFighting() bool {
	return u.act.kind == ActivityFight
}
func (u *Unit) IsAttacking() bool {
	return u.act.kind == ActivityFight && u.act.role == roleAttacking
}
func (u *Unit) IsDefending() bool {
	return u.act.kind == ActivityFight && u.act.role == roleDefending
}

func (u *Unit) IsSprinting() bool        { return u.sprinting }
func (u *Unit) IsFalling() bool          { return u.falling }
func (u *Unit) IsAlive() bool            { return u.alive }
func (u *Unit) IsCarryingLog() bool      { return u.log != nil }
func (u *Unit) IsCarryingBoulder() bool  { return u.boulder != nil }
func (u *Unit) CarriedLog() *Log         { return u.log }
func (u *Unit) CarriedBoulder() *Boulder { return u.boulder }

// WorkProgress is the completed fraction of the current work, 0 when idle.
func (u *Unit) WorkProgress() float64 {
	if u.act.kind != ActivityWork {
		return 0
	}
	return workProgress(u.act.workLeft, u.act.workTotal)
}

func (u *Unit) IsDefaultBehaviorEnabled() bool { return u.defaultBehavior }
func (u *Unit) SetDefaultBehaviorEnabled(v bool) {
	u.defaultBehavior = v
}

func (u *Unit) Faction() *Faction { return u.faction }
func (u *Unit) World() *World     { return u.world }

func (u *Unit) Task() tasks.Task        { return u.task }
func (u *Unit) AssignTask(t tasks.Task) { u.task = t }
func (u *Unit) ClearTask()              { u.task = nil }

func (u *Unit) String() string {
	return fmt.Sprintf("%s@%v", u.name, u.CubeCoordinate())
}
