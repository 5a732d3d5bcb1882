package world

import (
	"fmt"
	"strings"

	"hillsim.ai/internal/sim/world/terrain"
)

// AddUnit registers u in the world and in faction f. A nil faction lets
// the world pick one: a new faction while fewer than MaxFactions exist,
// otherwise the smallest.
func (w *World) AddUnit(u *Unit, f *Faction) error {
	if u.world != nil {
		return fmt.Errorf("unit %s: %w", u.name, ErrAlreadyInWorld)
	}
	if !u.alive {
		return fmt.Errorf("unit %s: %w", u.name, ErrDead)
	}
	if w.units.len() >= w.cfg.MaxUnits {
		return fmt.Errorf("unit %s: %w", u.name, ErrWorldFull)
	}
	if f != nil && f.world != nil && f.world != w {
		return fmt.Errorf("unit %s: %w", u.name, ErrForeignFaction)
	}
	p := u.CubeCoordinate()
	if !w.grid.InBounds(p) {
		return fmt.Errorf("unit %s at %v: %w", u.name, p, ErrOutOfBounds)
	}
	if !w.grid.Get(p).Passable() {
		return fmt.Errorf("unit %s at %v: %w", u.name, p, ErrNotPassable)
	}
	if f == nil {
		f = w.pickFaction()
	}

	u.world = w
	w.units.add(u)
	w.occupantsAt(p, true).units.add(u)
	w.joinFaction(u, f)
	w.log.Info("unit joined", "unit", u.name, "faction", f.name, "pos", p.String())
	return nil
}

// RemoveUnit drops whatever u carries at its cube and takes it out of its
// faction and the world. The unit is no longer alive afterwards.
func (w *World) RemoveUnit(u *Unit) {
	if u == nil || u.world != w || !w.units.has(u) {
		return
	}
	p := u.CubeCoordinate()
	if w.grid.InBounds(p) && w.grid.Get(p).Passable() {
		u.dropCarried(p)
	} else {
		// Nowhere to put items down; they go with the unit.
		if u.log != nil {
			w.RemoveLog(u.log)
		}
		if u.boulder != nil {
			w.RemoveBoulder(u.boulder)
		}
	}
	w.leaveFaction(u)
	w.units.remove(u)
	if o := w.occupantsAt(p, false); o != nil {
		o.units.remove(u)
		w.releaseOccupants(p)
	}
	u.alive = false
	u.act = idle()
	u.sprinting = false
	u.task = nil
}

// liftUnits moves every unit buried by the solid cube p to the first
// passable cube above it, which is always standable. Walking stops. A unit
// with no room above stays where it is.
func (w *World) liftUnits(p terrain.Pos) {
	units := w.UnitsAt(p)
	if len(units) == 0 {
		return
	}
	q := terrain.Pos{X: p.X, Y: p.Y, Z: p.Z + 1}
	for w.grid.InBounds(q) && !w.grid.Get(q).Passable() {
		q.Z++
	}
	if !w.grid.InBounds(q) {
		w.log.Warn("units buried", "pos", p.String(), "units", len(units))
		return
	}
	for _, u := range units {
		if u.act.kind == ActivityMove {
			u.goIdle()
		}
		u.falling = false
		u.setPos(q.Center())
		w.log.Debug("unit lifted", "unit", u.name, "from", p.String(), "to", q.String())
	}
}

func (w *World) HasUnit(u *Unit) bool { return w.units.has(u) }

func (w *World) Units() []*Unit { return w.units.snapshot() }

func (w *World) moveUnitOccupancy(u *Unit, from, to terrain.Pos) {
	if from == to {
		return
	}
	if o := w.occupantsAt(from, false); o != nil {
		o.units.remove(u)
		w.releaseOccupants(from)
	}
	if w.grid.InBounds(to) {
		w.occupantsAt(to, true).units.add(u)
	}
}

// RandomSpawnCube picks uniformly among standable cubes.
func (w *World) RandomSpawnCube() (Cube, error) {
	var candidates []int
	for i := range w.grid.Cells {
		if w.grid.Standable(w.grid.PosAt(i)) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Cube{}, ErrNoValidSpawn
	}
	p := w.grid.PosAt(candidates[w.rand.Intn(len(candidates))])
	return Cube{Pos: p, Type: w.grid.Get(p)}, nil
}

// SpawnUnit creates a unit with random attributes at a random standable
// cube and adds it to the world.
func (w *World) SpawnUnit(enableDefault bool) (*Unit, error) {
	if w.units.len() >= w.cfg.MaxUnits {
		return nil, ErrWorldFull
	}
	c, err := w.RandomSpawnCube()
	if err != nil {
		return nil, err
	}
	attr := func() int {
		return MinInitAttribute + w.rand.Intn(MaxInitAttribute-MinInitAttribute+1)
	}
	weight, agility, strength, toughness := attr(), attr(), attr(), attr()
	u, err := NewUnit(w.nextUnitName(), [3]int{c.Pos.X, c.Pos.Y, c.Pos.Z},
		weight, agility, strength, toughness, enableDefault)
	if err != nil {
		return nil, err
	}
	if err := w.AddUnit(u, nil); err != nil {
		return nil, err
	}
	w.log.Info("unit spawned", "unit", u.name, "pos", c.Pos.String())
	return u, nil
}

// nextUnitName yields "Unit A", "Unit B", ..., "Unit Z", "Unit AA", ...
func (w *World) nextUnitName() string {
	n := w.spawned
	w.spawned++
	var b strings.Builder
	letters := []byte{}
	for {
		letters = append(letters, byte('A'+n%26))
		if n < 26 {
			break
		}
		n = n/26 - 1
	}
	b.WriteString("Unit ")
	for i := len(letters) - 1; i >= 0; i-- {
		b.WriteByte(letters[i])
	}
	return b.String()
}
