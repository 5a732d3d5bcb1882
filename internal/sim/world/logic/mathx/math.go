package mathx

import "math"

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle maps any finite angle into [0, 2π).
func WrapAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	w := math.Mod(a, twoPi)
	if w < 0 {
		w += twoPi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if w >= twoPi {
		w = 0
	}
	return w
}

// Chebyshev returns the largest per-axis distance between two integer points.
func Chebyshev(ax, ay, az, bx, by, bz int) int {
	d := AbsInt(ax - bx)
	if v := AbsInt(ay - by); v > d {
		d = v
	}
	if v := AbsInt(az - bz); v > d {
		d = v
	}
	return d
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func Hash2(seed int64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9)
	return mix64(v)
}

func Hash3(seed int64, x, y, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	uz := uint64(uint32(int32(z)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xc2b2ae3d27d4eb4f) ^ (uz * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
