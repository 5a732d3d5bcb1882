package world

import (
	"fmt"

	"github.com/google/uuid"

	"hillsim.ai/internal/sim/world/terrain"
)

const (
	MinItemWeight = 10
	MaxItemWeight = 50
)

// item is the shared body of logs and boulders.
type item struct {
	id      uuid.UUID
	world   *World
	pos     [3]float64
	weight  int
	carrier *Unit
	falling bool
}

func newItem(p terrain.Pos, weight int) item {
	if weight < MinItemWeight {
		weight = MinItemWeight
	}
	if weight > MaxItemWeight {
		weight = MaxItemWeight
	}
	return item{id: uuid.New(), pos: p.Center(), weight: weight}
}

func (it *item) ID() uuid.UUID               { return it.id }
func (it *item) World() *World               { return it.world }
func (it *item) Position() [3]float64        { return it.pos }
func (it *item) CubeCoordinate() terrain.Pos { return cubeOf(it.pos) }
func (it *item) Weight() int                 { return it.weight }
func (it *item) Carrier() *Unit              { return it.carrier }
func (it *item) IsFalling() bool             { return it.falling }

// fall moves a resting item down at the world fall speed. It reports the
// cube the item occupied before and after the step.
func (it *item) fall(w *World, dt float64) (from, to terrain.Pos) {
	from = it.CubeCoordinate()
	if it.carrier != nil {
		return from, from
	}
	if !it.falling {
		if w.grid.Standable(from) || !w.grid.Get(from).Passable() {
			return from, from
		}
		it.falling = true
	}
	landing, ok := w.landingBelow(from)
	if !ok {
		landing = terrain.Pos{X: from.X, Y: from.Y}
	}
	target := landing.Center()[2]
	z := it.pos[2] - w.cfg.FallSpeed*dt
	if z <= target {
		z = target
		it.falling = false
	}
	it.pos[2] = z
	return from, it.CubeCoordinate()
}

type Log struct{ item }

// NewLog creates a log at the centre of p. The weight is clamped to
// [MinItemWeight, MaxItemWeight].
func NewLog(p terrain.Pos, weight int) *Log {
	return &Log{item: newItem(p, weight)}
}

type Boulder struct{ item }

func NewBoulder(p terrain.Pos, weight int) *Boulder {
	return &Boulder{item: newItem(p, weight)}
}

func (w *World) randomItemWeight() int {
	return MinItemWeight + w.rand.Intn(MaxItemWeight-MinItemWeight+1)
}

func (w *World) checkItemPos(p terrain.Pos) error {
	if !w.grid.InBounds(p) {
		return fmt.Errorf("item at %v: %w", p, ErrOutOfBounds)
	}
	if !w.grid.Get(p).Passable() {
		return fmt.Errorf("item at %v: %w", p, ErrNotPassable)
	}
	return nil
}

func (w *World) AddLog(l *Log) error {
	if l.world != nil {
		return fmt.Errorf("log %s: %w", l.id, ErrAlreadyInWorld)
	}
	p := l.CubeCoordinate()
	if err := w.checkItemPos(p); err != nil {
		return err
	}
	l.world = w
	w.logs.add(l)
	w.occupantsAt(p, true).logs.add(l)
	return nil
}

func (w *World) RemoveLog(l *Log) {
	if l == nil || l.world != w || !w.logs.has(l) {
		return
	}
	w.detachLog(l)
	w.logs.remove(l)
	if l.carrier != nil {
		l.carrier.log = nil
		l.carrier = nil
	}
}

func (w *World) HasLog(l *Log) bool { return w.logs.has(l) }
func (w *World) Logs() []*Log       { return w.logs.snapshot() }

func (w *World) AddBoulder(b *Boulder) error {
	if b.world != nil {
		return fmt.Errorf("boulder %s: %w", b.id, ErrAlreadyInWorld)
	}
	p := b.CubeCoordinate()
	if err := w.checkItemPos(p); err != nil {
		return err
	}
	b.world = w
	w.boulders.add(b)
	w.occupantsAt(p, true).boulders.add(b)
	return nil
}

func (w *World) RemoveBoulder(b *Boulder) {
	if b == nil || b.world != w || !w.boulders.has(b) {
		return
	}
	w.detachBoulder(b)
	w.boulders.remove(b)
	if b.carrier != nil {
		b.carrier.boulder = nil
		b.carrier = nil
	}
}

func (w *World) HasBoulder(b *Boulder) bool { return w.boulders.has(b) }
func (w *World) Boulders() []*Boulder       { return w.boulders.snapshot() }

// detachLog removes the log from its cube's occupant set.
func (w *World) detachLog(l *Log) {
	p := l.CubeCoordinate()
	if o := w.occupantsAt(p, false); o != nil {
		o.logs.remove(l)
		w.releaseOccupants(p)
	}
}

func (w *World) detachBoulder(b *Boulder) {
	p := b.CubeCoordinate()
	if o := w.occupantsAt(p, false); o != nil {
		o.boulders.remove(b)
		w.releaseOccupants(p)
	}
}

// placeLog puts a log down at the centre of p.
func (w *World) placeLog(l *Log, p terrain.Pos) {
	l.carrier = nil
	l.pos = p.Center()
	w.occupantsAt(p, true).logs.add(l)
}

func (w *World) placeBoulder(b *Boulder, p terrain.Pos) {
	b.carrier = nil
	b.pos = p.Center()
	w.occupantsAt(p, true).boulders.add(b)
}

func (w *World) dropLog(p terrain.Pos) *Log {
	l := NewLog(p, w.randomItemWeight())
	if err := w.AddLog(l); err != nil {
		w.log.Warn("drop log", "pos", p.String(), "err", err)
		return nil
	}
	return l
}

func (w *World) dropBoulder(p terrain.Pos) *Boulder {
	b := NewBoulder(p, w.randomItemWeight())
	if err := w.AddBoulder(b); err != nil {
		w.log.Warn("drop boulder", "pos", p.String(), "err", err)
		return nil
	}
	return b
}

func (w *World) advanceItems(dt float64) {
	for _, l := range w.logs.snapshot() {
		if l.carrier != nil {
			continue
		}
		from := l.CubeCoordinate()
		if _, to := l.fall(w, dt); to != from {
			w.moveLogOccupancy(l, from, to)
		}
	}
	for _, b := range w.boulders.snapshot() {
		if b.carrier != nil {
			continue
		}
		from := b.CubeCoordinate()
		if _, to := b.fall(w, dt); to != from {
			w.moveBoulderOccupancy(b, from, to)
		}
	}
}

func (w *World) moveLogOccupancy(l *Log, from, to terrain.Pos) {
	if o := w.occupantsAt(from, false); o != nil {
		o.logs.remove(l)
		w.releaseOccupants(from)
	}
	w.occupantsAt(to, true).logs.add(l)
}

func (w *World) moveBoulderOccupancy(b *Boulder, from, to terrain.Pos) {
	if o := w.occupantsAt(from, false); o != nil {
		o.boulders.remove(b)
		w.releaseOccupants(from)
	}
	w.occupantsAt(to, true).boulders.add(b)
}
