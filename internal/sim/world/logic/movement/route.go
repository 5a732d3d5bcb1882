package movement

import (
	"container/heap"
	"errors"
	"math"

	"hillsim.ai/internal/sim/world/terrain"
)

type Pos = terrain.Pos

var ErrNoPath = errors.New("no path found")

// Cost of a single step: 1 for face moves, √2 for edge moves, √3 for corner moves.
func stepCost(d Pos) float64 {
	n := 0
	if d.X != 0 {
		n++
	}
	if d.Y != 0 {
		n++
	}
	if d.Z != 0 {
		n++
	}
	switch n {
	case 1:
		return 1
	case 2:
		return math.Sqrt2
	default:
		return math.Sqrt(3)
	}
}

func heuristic(a, b Pos) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

type node struct {
	p     Pos
	g     float64
	f     float64
	seq   int
	index int
}

type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	// Insertion order breaks ties so routes are stable across runs.
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return n
}

// FindRoute returns the cubes from start to goal inclusive, each consecutive
// pair 26-adjacent and every cube after start standable. maxNodes bounds the
// number of expanded nodes (<= 0 means unbounded). Expanded is the number of
// nodes taken from the open set, for instrumentation.
func FindRoute(start, goal Pos, inBounds, standable func(Pos) bool, maxNodes int) (route []Pos, expanded int, err error) {
	if !inBounds(start) || !inBounds(goal) || !standable(goal) {
		return nil, 0, ErrNoPath
	}
	if start == goal {
		return []Pos{start}, 0, nil
	}

	seq := 0
	cameFrom := make(map[Pos]Pos, 256)
	best := make(map[Pos]float64, 256)
	closed := make(map[Pos]bool, 256)

	open := &openSet{}
	heap.Push(open, &node{p: start, g: 0, f: heuristic(start, goal), seq: seq})
	best[start] = 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.p] {
			continue
		}
		closed[cur.p] = true
		expanded++
		if cur.p == goal {
			return rebuild(cameFrom, start, goal), expanded, nil
		}
		if maxNodes > 0 && expanded >= maxNodes {
			break
		}
		for _, d := range terrain.NeighborOffsets {
			np := cur.p.Add(d)
			if closed[np] || !inBounds(np) || !standable(np) {
				continue
			}
			g := cur.g + stepCost(d)
			if old, ok := best[np]; ok && old <= g {
				continue
			}
			best[np] = g
			cameFrom[np] = cur.p
			seq++
			heap.Push(open, &node{p: np, g: g, f: g + heuristic(np, goal), seq: seq})
		}
	}
	return nil, expanded, ErrNoPath
}

func rebuild(cameFrom map[Pos]Pos, start, goal Pos) []Pos {
	var rev []Pos
	for p := goal; p != start; p = cameFrom[p] {
		rev = append(rev, p)
	}
	rev = append(rev, start)
	out := make([]Pos, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}
