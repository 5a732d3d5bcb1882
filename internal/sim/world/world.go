package world

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"hillsim.ai/internal/sim/world/logic/rng"
	"hillsim.ai/internal/sim/world/terrain"
	"hillsim.ai/internal/sim/world/terrain/store"
)

// TerrainChangeListener is called once for every cube whose type changes.
type TerrainChangeListener func(x, y, z int)

// Cube is a read-only view of one grid cell.
type Cube struct {
	Pos  terrain.Pos
	Type terrain.Type
}

func (c Cube) Passable() bool { return c.Type.Passable() }

type occupants struct {
	units    registry[*Unit]
	logs     registry[*Log]
	boulders registry[*Boulder]
}

func (o *occupants) empty() bool {
	return o.units.len() == 0 && o.logs.len() == 0 && o.boulders.len() == 0
}

type World struct {
	cfg      Config
	grid     *store.Grid
	listener TerrainChangeListener
	rand     rng.Source
	log      *slog.Logger
	obs      Observer

	// connected[i] is true iff cube i is solid and reaches the border
	// through solid cubes.
	connected []bool

	units    registry[*Unit]
	logs     registry[*Log]
	boulders registry[*Boulder]
	factions registry[*Faction]

	occupants map[int]*occupants

	spawned uint64
	ticks   uint64
	elapsed float64

	inbox    chan func(*World)
	stop     chan struct{}
	stopOnce sync.Once
}

type Option func(*World)

func WithConfig(cfg Config) Option {
	return func(w *World) { w.cfg = cfg }
}

func WithRand(src rng.Source) Option {
	return func(w *World) {
		if src != nil {
			w.rand = src
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(w *World) {
		if o != nil {
			w.obs = o
		}
	}
}

// New builds a world from a [x][y][z] array of terrain codes. Solid cubes
// that are not connected to the border cave in before New returns.
func New(codes [][][]int, listener TerrainChangeListener, opts ...Option) (*World, error) {
	grid, err := store.FromCodes(codes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTerrain, err)
	}
	w := &World{
		cfg:       DefaultConfig(),
		grid:      grid,
		listener:  listener,
		rand:      rng.New(1),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		obs:       nopObserver{},
		connected: make([]bool, grid.Len()),
		occupants: make(map[int]*occupants),
		inbox:     make(chan func(*World), 64),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cfg.applyDefaults()
	w.initConnectivity()
	return w, nil
}

func (w *World) Config() Config { return w.cfg }

func (w *World) NbCubesX() int { return w.grid.NX }
func (w *World) NbCubesY() int { return w.grid.NY }
func (w *World) NbCubesZ() int { return w.grid.NZ }

// Ticks is the number of completed AdvanceTime calls.
func (w *World) Ticks() uint64 { return w.ticks }

// Elapsed is the simulated time in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

func (w *World) InBounds(p terrain.Pos) bool { return w.grid.InBounds(p) }

func (w *World) CubeAt(x, y, z int) (Cube, error) {
	p := terrain.Pos{X: x, Y: y, Z: z}
	if !w.grid.InBounds(p) {
		return Cube{}, fmt.Errorf("cube %v: %w", p, ErrOutOfBounds)
	}
	return Cube{Pos: p, Type: w.grid.Get(p)}, nil
}

func (w *World) TerrainType(x, y, z int) (terrain.Type, error) {
	c, err := w.CubeAt(x, y, z)
	return c.Type, err
}

func (w *World) IsPassable(p terrain.Pos) bool {
	return w.grid.InBounds(p) && w.grid.Get(p).Passable()
}

// IsStandable reports whether p is passable and on the floor or above a solid cube.
func (w *World) IsStandable(p terrain.Pos) bool {
	return w.grid.Standable(p)
}

func (w *World) notify(p terrain.Pos) {
	if w.listener != nil {
		w.listener(p.X, p.Y, p.Z)
	}
}

func (w *World) occupantsAt(p terrain.Pos, create bool) *occupants {
	i := w.grid.Index(p)
	o := w.occupants[i]
	if o == nil && create {
		o = &occupants{}
		w.occupants[i] = o
	}
	return o
}

func (w *World) releaseOccupants(p terrain.Pos) {
	i := w.grid.Index(p)
	if o := w.occupants[i]; o != nil && o.empty() {
		delete(w.occupants, i)
	}
}

func (w *World) UnitsAt(p terrain.Pos) []*Unit {
	if !w.grid.InBounds(p) {
		return nil
	}
	if o := w.occupantsAt(p, false); o != nil {
		return o.units.snapshot()
	}
	return nil
}

func (w *World) LogsAt(p terrain.Pos) []*Log {
	if !w.grid.InBounds(p) {
		return nil
	}
	if o := w.occupantsAt(p, false); o != nil {
		return o.logs.snapshot()
	}
	return nil
}

func (w *World) BouldersAt(p terrain.Pos) []*Boulder {
	if !w.grid.InBounds(p) {
		return nil
	}
	if o := w.occupantsAt(p, false); o != nil {
		return o.boulders.snapshot()
	}
	return nil
}

// landingBelow returns the first standable cube at or below p, scanning
// down through passable cubes.
func (w *World) landingBelow(p terrain.Pos) (terrain.Pos, bool) {
	for q := p; q.Z >= 0; q = q.Below() {
		if !w.grid.Get(q).Passable() {
			return terrain.Pos{}, false
		}
		if w.grid.Standable(q) {
			return q, true
		}
	}
	return terrain.Pos{}, false
}

func cubeOf(pos [3]float64) terrain.Pos {
	return terrain.Pos{
		X: int(math.Floor(pos[0])),
		Y: int(math.Floor(pos[1])),
		Z: int(math.Floor(pos[2])),
	}
}
