package combat

type Result int

const (
	Hit Result = iota
	Dodge
	Block
)

func (r Result) String() string {
	switch r {
	case Dodge:
		return "DODGE"
	case Block:
		return "BLOCK"
	default:
		return "HIT"
	}
}

type Stats struct {
	Agility  int
	Strength int
}

// Chances returns the dodge probability and the upper bound of the block band.
func Chances(attacker, defender Stats) (pDodge, pBlock float64) {
	aAgi := attacker.Agility
	if aAgi <= 0 {
		aAgi = 1
	}
	aSum := attacker.Strength + attacker.Agility
	if aSum <= 0 {
		aSum = 1
	}
	pDodge = 0.20 * float64(defender.Agility) / float64(aAgi)
	pBlock = pDodge + 0.25*float64(defender.Strength+defender.Agility)/float64(aSum)
	return pDodge, pBlock
}

// Resolve classifies a uniform draw r in [0,1).
func Resolve(attacker, defender Stats, r float64) Result {
	pDodge, pBlock := Chances(attacker, defender)
	switch {
	case r <= pDodge:
		return Dodge
	case r < pBlock:
		return Block
	default:
		return Hit
	}
}

// Damage is the integer hit point loss of a successful hit.
func Damage(attacker Stats) int {
	return attacker.Strength / 10
}
