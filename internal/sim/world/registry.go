package world

// registry is a set that enumerates in insertion order. Add and membership
// are O(1); removal shifts the tail down.
type registry[T comparable] struct {
	items []T
	index map[T]int
}

func (r *registry[T]) add(v T) bool {
	if r.index == nil {
		r.index = make(map[T]int)
	}
	if _, ok := r.index[v]; ok {
		return false
	}
	r.index[v] = len(r.items)
	r.items = append(r.items, v)
	return true
}

func (r *registry[T]) remove(v T) bool {
	i, ok := r.index[v]
	if !ok {
		return false
	}
	last := len(r.items) - 1
	copy(r.items[i:], r.items[i+1:])
	for j := i; j < last; j++ {
		r.index[r.items[j]] = j
	}
	var zero T
	r.items[last] = zero
	r.items = r.items[:last]
	delete(r.index, v)
	return true
}

func (r *registry[T]) has(v T) bool {
	_, ok := r.index[v]
	return ok
}

func (r *registry[T]) len() int { return len(r.items) }

// snapshot returns a copy that stays valid while the registry is mutated.
func (r *registry[T]) snapshot() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}
