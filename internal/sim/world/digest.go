package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}

func digestWritePos(h hashWriter, tmp *[8]byte, p [3]float64) {
	for _, v := range p {
		digestWriteF64(h, tmp, v)
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Digest hashes terrain, units, logs and boulders. Random IDs are left out
// so two worlds driven by the same seed produce the same digest.
func (w *World) Digest() string {
	h := sha256.New()
	var tmp [8]byte

	g := w.grid.Digest()
	h.Write(g[:])
	digestWriteU64(h, &tmp, w.ticks)

	digestWriteU64(h, &tmp, uint64(w.units.len()))
	for _, u := range w.units.items {
		h.Write([]byte(u.name))
		digestWritePos(h, &tmp, u.pos)
		digestWriteF64(h, &tmp, u.orientation)
		for _, v := range []int{u.weight, u.agility, u.strength, u.toughness, u.exp, int(u.act.kind)} {
			digestWriteI64(h, &tmp, int64(v))
		}
		digestWriteF64(h, &tmp, u.hp)
		digestWriteF64(h, &tmp, u.stamina)
		h.Write([]byte{boolByte(u.falling), boolByte(u.sprinting), boolByte(u.log != nil), boolByte(u.boulder != nil)})
	}

	digestWriteU64(h, &tmp, uint64(w.logs.len()))
	for _, l := range w.logs.items {
		digestWritePos(h, &tmp, l.pos)
		digestWriteI64(h, &tmp, int64(l.weight))
		h.Write([]byte{boolByte(l.carrier != nil)})
	}
	digestWriteU64(h, &tmp, uint64(w.boulders.len()))
	for _, b := range w.boulders.items {
		digestWritePos(h, &tmp, b.pos)
		digestWriteI64(h, &tmp, int64(b.weight))
		h.Write([]byte{boolByte(b.carrier != nil)})
	}
	return hex.EncodeToString(h.Sum(nil))
}
