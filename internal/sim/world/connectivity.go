package world

import (
	"fmt"

	"hillsim.ai/internal/sim/world/terrain"
)

// initConnectivity marks every solid cube reachable from a border solid
// through face-adjacent solids, then collapses whatever was not reached.
func (w *World) initConnectivity() {
	g := w.grid
	queue := make([]int, 0, 64)
	for i, t := range g.Cells {
		if t.Solid() && g.OnBorder(g.PosAt(i)) {
			w.connected[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		p := g.PosAt(i)
		for _, d := range terrain.FaceOffsets {
			q := p.Add(d)
			if !g.InBounds(q) {
				continue
			}
			j := g.Index(q)
			if w.connected[j] || !g.Cells[j].Solid() {
				continue
			}
			w.connected[j] = true
			queue = append(queue, j)
		}
	}

	var floating []terrain.Pos
	for i, t := range g.Cells {
		if t.Solid() && !w.connected[i] {
			floating = append(floating, g.PosAt(i))
		}
	}
	// A floating cube has no connected neighbour, so collapsing it cannot
	// disconnect anything else.
	for _, p := range floating {
		w.collapse(p)
	}
}

// SetTerrainType changes one cube and settles the terrain before returning.
// Setting a cube to its current type does nothing.
func (w *World) SetTerrainType(x, y, z int, t terrain.Type) error {
	p := terrain.Pos{X: x, Y: y, Z: z}
	if !t.Valid() {
		return fmt.Errorf("terrain type %d: %w", int(t), ErrInvalidTerrain)
	}
	if !w.grid.InBounds(p) {
		return fmt.Errorf("set terrain %v: %w", p, ErrOutOfBounds)
	}
	prev := w.grid.Set(p, t)
	if prev == t {
		return nil
	}
	w.notify(p)

	i := w.grid.Index(p)
	switch {
	case prev.Solid() && t.Passable():
		w.connected[i] = false
		w.settle([]terrain.Pos{p})
	case prev.Passable() && t.Solid():
		if w.anchored(p) {
			w.connected[i] = true
			w.liftUnits(p)
		} else {
			w.collapse(p)
		}
	}
	return nil
}

// anchored reports whether a freshly solid cube touches the border or a
// solid neighbour. Every other solid cube is connected, so one solid
// neighbour is enough.
func (w *World) anchored(p terrain.Pos) bool {
	if w.grid.OnBorder(p) {
		return true
	}
	for _, d := range terrain.FaceOffsets {
		if w.grid.Get(p.Add(d)).Solid() {
			return true
		}
	}
	return false
}

// settle re-checks the solid face-neighbours of every opened cube in the
// worklist. Each component that no longer reaches the border collapses and
// its cubes are pushed back on the worklist.
func (w *World) settle(work []terrain.Pos) {
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		known := make(map[int]bool)
		for _, d := range terrain.FaceOffsets {
			q := p.Add(d)
			if !w.grid.InBounds(q) || !w.grid.Get(q).Solid() {
				continue
			}
			if known[w.grid.Index(q)] {
				continue
			}
			comp, ok := w.reachesBorder(q, known)
			if ok {
				continue
			}
			for _, c := range comp {
				w.collapse(c)
				work = append(work, c)
			}
		}
	}
}

// reachesBorder floods the solid component of start. It stops as soon as it
// touches the border or a cube already known to be connected, recording the
// visited cubes in known. Otherwise it returns the whole component.
func (w *World) reachesBorder(start terrain.Pos, known map[int]bool) ([]terrain.Pos, bool) {
	g := w.grid
	visited := map[int]bool{g.Index(start): true}
	comp := []terrain.Pos{start}
	found := false
	for head := 0; head < len(comp) && !found; head++ {
		p := comp[head]
		if g.OnBorder(p) {
			found = true
			break
		}
		for _, d := range terrain.FaceOffsets {
			q := p.Add(d)
			if !g.InBounds(q) || !g.Get(q).Solid() {
				continue
			}
			j := g.Index(q)
			if known[j] {
				found = true
				break
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			comp = append(comp, q)
		}
	}
	if found {
		for i := range visited {
			known[i] = true
		}
		return nil, true
	}
	return comp, false
}

// collapse turns a solid cube into air and may leave a boulder or a log.
func (w *World) collapse(p terrain.Pos) {
	prev := w.grid.Set(p, terrain.Air)
	w.connected[w.grid.Index(p)] = false
	w.notify(p)
	w.obs.CaveIn(p, prev)
	w.log.Info("cave-in", "pos", p.String(), "type", prev.String())

	if w.rand.Float64() >= w.cfg.CaveInDropChance {
		return
	}
	switch prev {
	case terrain.Rock:
		w.dropBoulder(p)
	case terrain.Tree:
		w.dropLog(p)
	}
}

// IsSolidConnectedToBorder is false for passable cubes.
func (w *World) IsSolidConnectedToBorder(x, y, z int) (bool, error) {
	p := terrain.Pos{X: x, Y: y, Z: z}
	if !w.grid.InBounds(p) {
		return false, fmt.Errorf("connectivity %v: %w", p, ErrOutOfBounds)
	}
	return w.connected[w.grid.Index(p)], nil
}
