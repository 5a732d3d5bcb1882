package world

import "math"

// advanceRest restores hit points first and stamina once hit points are
// full. Time left over after hit points fill up goes to stamina.
func (u *Unit) advanceRest(dt float64) {
	maxHP := float64(u.MaxHitPoints())
	maxSt := float64(u.MaxStamina())

	if rate := float64(u.toughness) / 40; u.hp < maxHP && rate > 0 {
		t := math.Min(dt, (maxHP-u.hp)/rate)
		u.setHP(u.hp + rate*t)
		dt -= t
		if maxHP-u.hp <= timerEpsilon {
			u.hp = maxHP
		}
	}
	if rate := float64(u.toughness) / 20; u.hp >= maxHP && u.stamina < maxSt && rate > 0 && dt > 0 {
		t := math.Min(dt, (maxSt-u.stamina)/rate)
		u.setStamina(u.stamina + rate*t)
		if maxSt-u.stamina <= timerEpsilon {
			u.stamina = maxSt
		}
	}
	if u.hp >= maxHP && u.stamina >= maxSt {
		u.act = idle()
	}
}
