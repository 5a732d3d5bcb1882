package movement

// BaseSpeed is the level-ground walking speed in cubes per second.
func BaseSpeed(agility, strength, weight int) float64 {
	if weight <= 0 {
		weight = 1
	}
	return 1.5 * float64(agility+strength) / (2 * float64(weight))
}

// StepSpeed adjusts the base speed for the vertical component of a step.
func StepSpeed(base float64, dz int, sprinting bool) float64 {
	v := base
	switch {
	case dz > 0:
		v = 0.5 * base
	case dz < 0:
		v = 1.2 * base
	}
	if sprinting {
		v *= 2
	}
	return v
}
