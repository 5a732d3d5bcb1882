package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hillsim.ai/internal/sim/world/feature/combat"
	"hillsim.ai/internal/sim/world/logic/rng"
	"hillsim.ai/internal/sim/world/terrain"
)

func TestWorkTakesFiveHundredOverStrength(t *testing.T) {
	w := newWorld(t, codes(3, 3, 1))
	u := addUnit(t, w, "Worker", at(1, 1, 0), nil)
	require.NoError(t, u.Work())
	assert.True(t, u.IsWorking())

	// strength 50: 10 s of work, 50 ticks of 0.2 s.
	tickN(t, w, 49, 0.2)
	assert.True(t, u.IsWorking())
	assert.InDelta(t, 0.98, u.WorkProgress(), 1e-9)
	assert.Zero(t, u.Experience())

	tickN(t, w, 1, 0.2)
	assert.Equal(t, ActivityIdle, u.Activity())
	assert.Equal(t, 20, u.Experience())
}

func TestWorkAtRejectsFarCubes(t *testing.T) {
	w := newWorld(t, codes(4, 4, 2))
	u := addUnit(t, w, "Worker", at(0, 0, 0), nil)

	err := u.WorkAt(at(2, 0, 0))
	assert.True(t, errors.Is(err, ErrNotAdjacent))
	assert.True(t, errors.Is(err, ErrState))
	assert.True(t, errors.Is(u.WorkAt(at(-1, 0, 0)), ErrOutOfBounds))
	assert.Equal(t, ActivityIdle, u.Activity())

	require.NoError(t, u.WorkAt(at(1, 1, 1)))
	assert.True(t, u.IsWorking())
}

func finishWork(t *testing.T, w *World, u *Unit, target terrain.Pos) {
	t.Helper()
	require.NoError(t, u.WorkAt(target))
	tickUntil(t, w, 0.2, 100, func() bool { return !u.IsWorking() })
}

func TestMineCarryAndDropBoulder(t *testing.T) {
	c := codes(3, 1, 2)
	set(c, terrain.Rock, at(1, 0, 0))
	w := newWorld(t, c)
	u := addUnit(t, w, "Miner", at(0, 0, 0), nil)

	finishWork(t, w, u, at(1, 0, 0))
	tt, _ := w.TerrainType(1, 0, 0)
	assert.Equal(t, terrain.Air, tt)
	require.Len(t, w.BouldersAt(at(1, 0, 0)), 1)
	b := w.BouldersAt(at(1, 0, 0))[0]

	finishWork(t, w, u, at(1, 0, 0))
	assert.True(t, u.IsCarryingBoulder())
	assert.Same(t, u, b.Carrier())
	assert.Empty(t, w.BouldersAt(at(1, 0, 0)))
	assert.Equal(t, u.Weight()+b.Weight(), u.TotalWeight())
	assert.Less(t, u.BaseSpeed(), 1.5)

	finishWork(t, w, u, at(0, 0, 0))
	assert.False(t, u.IsCarryingBoulder())
	assert.Nil(t, b.Carrier())
	assert.Equal(t, []*Boulder{b}, w.BouldersAt(at(0, 0, 0)))
	assert.Equal(t, 60, u.Experience())
}

func TestFellTreeAndPickUpLog(t *testing.T) {
	c := codes(2, 1, 1)
	set(c, terrain.Tree, at(1, 0, 0))
	w := newWorld(t, c)
	u := addUnit(t, w, "Logger", at(0, 0, 0), nil)

	finishWork(t, w, u, at(1, 0, 0))
	require.Len(t, w.LogsAt(at(1, 0, 0)), 1)

	finishWork(t, w, u, at(1, 0, 0))
	assert.True(t, u.IsCarryingLog())
	assert.False(t, u.IsCarryingBoulder())
}

func TestCarriedItemsFollowTheUnit(t *testing.T) {
	w := newWorld(t, codes(5, 1, 1))
	u := addUnit(t, w, "Porter", at(0, 0, 0), nil)
	l := NewLog(at(1, 0, 0), 10)
	b := NewBoulder(at(1, 0, 0), 20)
	require.NoError(t, w.AddLog(l))
	require.NoError(t, w.AddBoulder(b))

	finishWork(t, w, u, at(1, 0, 0))
	finishWork(t, w, u, at(1, 0, 0))
	require.True(t, u.IsCarryingBoulder())
	require.True(t, u.IsCarryingLog())
	assert.Equal(t, u.Position(), l.Position())

	require.NoError(t, u.MoveTo(at(4, 0, 0)))
	tickUntil(t, w, 0.2, 100, func() bool { return !u.IsMoving() })
	require.Equal(t, at(4, 0, 0), u.CubeCoordinate())
	assert.Equal(t, u.Position(), l.Position())
	assert.Equal(t, u.Position(), b.Position())
	assert.Equal(t, at(4, 0, 0), l.CubeCoordinate())
	assert.Equal(t, at(4, 0, 0), b.CubeCoordinate())
	assert.Equal(t, u, l.Carrier())
	assert.Empty(t, w.LogsAt(at(4, 0, 0)))
	assert.Empty(t, w.LogsAt(at(1, 0, 0)))
	assert.Equal(t, []*Log{l}, w.Logs())

	finishWork(t, w, u, at(3, 0, 0))
	assert.False(t, u.IsCarryingBoulder())
	assert.Equal(t, at(3, 0, 0).Center(), b.Position())
	assert.Equal(t, []*Boulder{b}, w.BouldersAt(at(3, 0, 0)))
	assert.Equal(t, u.Position(), l.Position())
}

func TestWorkshopCraftConsumesOneOfEach(t *testing.T) {
	c := codes(2, 1, 1)
	set(c, terrain.Workshop, at(1, 0, 0))
	w := newWorld(t, c)
	u := addUnit(t, w, "Smith", at(0, 0, 0), nil)
	require.NoError(t, w.AddLog(NewLog(at(1, 0, 0), 10)))
	require.NoError(t, w.AddLog(NewLog(at(1, 0, 0), 12)))
	require.NoError(t, w.AddBoulder(NewBoulder(at(1, 0, 0), 40)))

	finishWork(t, w, u, at(1, 0, 0))
	assert.Len(t, w.LogsAt(at(1, 0, 0)), 1)
	assert.Empty(t, w.BouldersAt(at(1, 0, 0)))
	assert.Len(t, w.Logs(), 1)
	assert.Equal(t, 55, u.Weight())
	// Two level-ups went to toughness with the scripted source.
	assert.Equal(t, 57, u.Toughness())
}

func TestFallingLandsAndHurts(t *testing.T) {
	w := newWorld(t, codes(1, 1, 5))
	u := addUnit(t, w, "Faller", at(0, 0, 3), nil)

	tickN(t, w, 1, 0.2)
	assert.True(t, u.IsFalling())
	assert.InDelta(t, 2.9, u.Position()[2], 1e-9)

	tickUntil(t, w, 0.2, 20, func() bool { return !u.IsFalling() })
	assert.Equal(t, at(0, 0, 0), u.CubeCoordinate())
	assert.InDelta(t, 0.5, u.Position()[2], 1e-9)
	assert.Equal(t, 50-3*10, u.HitPoints())
}

func TestFilledCubeLiftsUnit(t *testing.T) {
	c := codes(3, 1, 3)
	set(c, terrain.Rock, at(0, 0, 1))
	w := newWorld(t, c)
	u := addUnit(t, w, "Digger", at(0, 0, 0), nil)
	require.NoError(t, u.MoveTo(at(2, 0, 0)))
	tickN(t, w, 1, 0.1)
	require.Equal(t, at(0, 0, 0), u.CubeCoordinate())

	require.NoError(t, w.SetTerrainType(0, 0, 0, terrain.Rock))
	assert.Equal(t, at(0, 0, 2), u.CubeCoordinate())
	assert.Equal(t, at(0, 0, 2).Center(), u.Position())
	assert.Equal(t, ActivityIdle, u.Activity())
	assert.Equal(t, []*Unit{u}, w.UnitsAt(at(0, 0, 2)))
	assert.Empty(t, w.UnitsAt(at(0, 0, 0)))

	tickN(t, w, 2, 0.1)
	assert.False(t, u.IsFalling())
	assert.Equal(t, at(0, 0, 2), u.CubeCoordinate())
}

func TestFilledCubeWithoutRoomKeepsUnit(t *testing.T) {
	w := newWorld(t, codes(1, 1, 1))
	u := addUnit(t, w, "Stuck", at(0, 0, 0), nil)

	require.NoError(t, w.SetTerrainType(0, 0, 0, terrain.Rock))
	assert.Equal(t, at(0, 0, 0), u.CubeCoordinate())
	assert.True(t, u.IsAlive())
}

func TestFallCancelsMove(t *testing.T) {
	c := codes(4, 1, 3)
	set(c, terrain.Rock, at(0, 0, 0), at(1, 0, 0), at(2, 0, 0), at(3, 0, 0))
	w := newWorld(t, c)
	u := addUnit(t, w, "Walker", at(0, 0, 1), nil)
	require.NoError(t, u.MoveTo(at(3, 0, 1)))

	// Dig out both ends of the first segment.
	require.NoError(t, w.SetTerrainType(0, 0, 0, terrain.Air))
	require.NoError(t, w.SetTerrainType(1, 0, 0, terrain.Air))
	tickN(t, w, 1, 0.1)
	assert.True(t, u.IsFalling())
	assert.False(t, u.IsMoving())
}

func newDuel(t *testing.T, src *rng.Script, size int) (*World, *Unit, *Unit) {
	t.Helper()
	w := newWorld(t, codes(size, size, 1), WithRand(src))
	a := addUnit(t, w, "Attacker", at(0, 0, 0), NewFaction("Red"))
	d := addUnit(t, w, "Defender", at(0, 1, 0), NewFaction("Blue"))
	return w, a, d
}

func TestAttackOutcomes(t *testing.T) {
	// Equal stats: dodge up to 0.2, block below 0.45, hit otherwise.
	for _, tc := range []struct {
		r    float64
		want combat.Result
	}{{0.1, combat.Dodge}, {0.3, combat.Block}, {0.9, combat.Hit}} {
		t.Run(tc.want.String(), func(t *testing.T) {
			_, a, d := newDuel(t, &rng.Script{Floats: []float64{tc.r}, Ints: []int{0}}, 3)
			start := d.CubeCoordinate()
			require.NoError(t, a.Attack(d))
			assert.True(t, a.IsAttacking())
			assert.True(t, d.IsDefending())

			hit := d.HitPoints() == d.MaxHitPoints()-a.Strength()/10
			moved := d.CubeCoordinate() != start
			nothing := !hit && !moved
			outcomes := 0
			for _, ok := range []bool{hit, moved, nothing} {
				if ok {
					outcomes++
				}
			}
			assert.Equal(t, 1, outcomes)

			switch tc.want {
			case combat.Hit:
				assert.True(t, hit)
				assert.Equal(t, 20, a.Experience())
			case combat.Dodge:
				assert.True(t, moved)
				assert.NotEqual(t, a.CubeCoordinate(), d.CubeCoordinate())
				assert.Equal(t, start.Z, d.CubeCoordinate().Z)
				assert.Equal(t, 20, d.Experience())
			case combat.Block:
				assert.True(t, nothing)
				assert.Equal(t, 20, d.Experience())
			}
		})
	}
}

func TestDodgeWithoutRoomIsABlock(t *testing.T) {
	w := newWorld(t, codes(1, 2, 1), WithRand(&rng.Script{Floats: []float64{0.05}}))
	a := addUnit(t, w, "Attacker", at(0, 0, 0), NewFaction("Red"))
	d := addUnit(t, w, "Defender", at(0, 1, 0), NewFaction("Blue"))
	require.NoError(t, a.Attack(d))
	assert.Equal(t, at(0, 1, 0), d.CubeCoordinate())
	assert.Equal(t, d.MaxHitPoints(), d.HitPoints())
	assert.Equal(t, 20, d.Experience())
}

func TestAttackPreconditions(t *testing.T) {
	w := newWorld(t, codes(4, 4, 1))
	red := NewFaction("Red")
	a := addUnit(t, w, "Ann", at(0, 0, 0), red)
	friend := addUnit(t, w, "Fred", at(1, 0, 0), red)
	far := addUnit(t, w, "Farah", at(3, 3, 0), NewFaction("Blue"))

	for _, other := range []*Unit{nil, a, friend, far} {
		err := a.Attack(other)
		assert.True(t, errors.Is(err, ErrNotAttackable))
		assert.True(t, errors.Is(err, ErrState))
	}
	assert.Equal(t, ActivityIdle, a.Activity())
}

func TestFightBlocksCommandsUntilTimersRunOut(t *testing.T) {
	w, a, d := newDuel(t, &rng.Script{Floats: []float64{0.3}}, 3)
	require.NoError(t, a.Attack(d))

	assert.True(t, errors.Is(a.MoveTo(at(2, 2, 0)), ErrBusy))
	assert.True(t, errors.Is(d.Work(), ErrBusy))
	assert.True(t, errors.Is(d.Rest(), ErrBusy))
	assert.True(t, errors.Is(a.Attack(d), ErrBusy))

	tickN(t, w, 4, 0.2)
	assert.True(t, a.IsFighting())
	tickN(t, w, 1, 0.2)
	assert.Equal(t, ActivityIdle, a.Activity())
	assert.Equal(t, ActivityIdle, d.Activity())
}

func TestRestRestoresHitPointsThenStamina(t *testing.T) {
	w := newWorld(t, codes(2, 2, 1))
	u := addUnit(t, w, "Sleepy", at(0, 0, 0), nil)
	u.hp = 40
	u.stamina = 40
	require.NoError(t, u.Rest())

	// toughness 50: 1.25 HP/s, then 2.5 stamina/s.
	tickN(t, w, 30, 0.2)
	assert.InDelta(t, 47.5, u.hp, 1e-9)
	assert.InDelta(t, 40, u.stamina, 1e-9)
	assert.True(t, u.IsResting())

	tickN(t, w, 10, 0.2)
	assert.InDelta(t, 50, u.hp, 1e-9)
	assert.InDelta(t, 40, u.stamina, 1e-9)

	tickUntil(t, w, 0.2, 40, func() bool { return !u.IsResting() })
	assert.Equal(t, u.MaxHitPoints(), u.HitPoints())
	assert.Equal(t, u.MaxStamina(), u.Stamina())
}

func TestForcedRestInterruptsMoveNotFight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestInterval = 1
	w := newWorld(t, codes(10, 2, 1), WithConfig(cfg))
	walker := addUnit(t, w, "Walker", at(0, 0, 0), NewFaction("Red"))
	a := addUnit(t, w, "Attacker", at(5, 0, 0), NewFaction("Blue"))
	d := addUnit(t, w, "Defender", at(5, 1, 0), NewFaction("Green"))
	walker.hp = 30

	require.NoError(t, walker.MoveTo(at(9, 0, 0)))
	tickN(t, w, 4, 0.2)
	require.True(t, walker.IsMoving())
	require.NoError(t, a.Attack(d))

	// Lifetime crosses 1 s during the fifth tick.
	tickN(t, w, 2, 0.2)
	assert.True(t, walker.IsResting())
	assert.Zero(t, walker.CurrentSpeed())
	assert.True(t, a.IsAttacking())
	assert.True(t, d.IsDefending())
}

func TestDeathDropsItemsAndDeregisters(t *testing.T) {
	obs := &countingObserver{}
	w := newWorld(t, codes(2, 2, 1), WithObserver(obs))
	u := addUnit(t, w, "Doomed", at(0, 0, 0), nil)
	l := NewLog(at(0, 0, 0), 20)
	require.NoError(t, w.AddLog(l))
	finishWork(t, w, u, at(0, 0, 0))
	require.True(t, u.IsCarryingLog())
	f := u.Faction()

	u.hp = 0
	tickN(t, w, 1, 0.1)
	assert.False(t, u.IsAlive())
	assert.False(t, w.HasUnit(u))
	assert.False(t, f.Has(u))
	assert.Empty(t, w.Factions())
	assert.Equal(t, []*Log{l}, w.LogsAt(at(0, 0, 0)))
	assert.Nil(t, l.Carrier())
	assert.Equal(t, 1, obs.deaths)
	assert.NoError(t, u.AdvanceTime(0.1))
}

func TestLevelUpsFollowExperience(t *testing.T) {
	w := newWorld(t, codes(2, 2, 1), WithRand(&rng.Script{Floats: []float64{0.99}, Ints: []int{1, 2, 0}}))
	u := addUnit(t, w, "Learner", at(0, 0, 0), nil)
	u.gainExperience(35)
	tickN(t, w, 1, 0.1)
	assert.Equal(t, 51, u.Agility())
	assert.Equal(t, 51, u.Strength())
	assert.Equal(t, 51, u.Toughness())
	u.gainExperience(4)
	tickN(t, w, 1, 0.1)
	assert.Equal(t, 51, u.Toughness())
}
