package world

import (
	"fmt"

	"github.com/google/uuid"
)

// Faction groups units that do not fight each other.
type Faction struct {
	id      uuid.UUID
	name    string
	world   *World
	members registry[*Unit]
}

func NewFaction(name string) *Faction {
	return &Faction{id: uuid.New(), name: name}
}

func (f *Faction) ID() uuid.UUID    { return f.id }
func (f *Faction) Name() string     { return f.name }
func (f *Faction) World() *World    { return f.world }
func (f *Faction) Size() int        { return f.members.len() }
func (f *Faction) Units() []*Unit   { return f.members.snapshot() }
func (f *Faction) Has(u *Unit) bool { return f.members.has(u) }

// Factions lists every faction registered in the world.
func (w *World) Factions() []*Faction { return w.factions.snapshot() }

// ActiveFactions lists factions with at least one member.
func (w *World) ActiveFactions() []*Faction {
	out := make([]*Faction, 0, w.factions.len())
	for _, f := range w.factions.items {
		if f.members.len() > 0 {
			out = append(out, f)
		}
	}
	return out
}

// pickFaction returns the faction a unit without one should join: a new
// faction while there is room, otherwise the smallest existing one.
func (w *World) pickFaction() *Faction {
	if w.factions.len() < w.cfg.MaxFactions {
		return NewFaction(fmt.Sprintf("Faction %d", w.factions.len()+1))
	}
	var best *Faction
	for _, f := range w.factions.items {
		if best == nil || f.members.len() < best.members.len() {
			best = f
		}
	}
	return best
}

func (w *World) joinFaction(u *Unit, f *Faction) {
	f.world = w
	w.factions.add(f)
	f.members.add(u)
	u.faction = f
}

func (w *World) leaveFaction(u *Unit) {
	f := u.faction
	if f == nil {
		return
	}
	f.members.remove(u)
	if f.members.len() == 0 {
		w.factions.remove(f)
	}
}
