package world

import (
	"errors"
	"fmt"
	"time"
)

// AdvanceTime advances every unit once, in registration order, then lets
// unsupported logs and boulders fall. Unit errors do not stop the tick;
// they are joined and returned at the end.
func (w *World) AdvanceTime(dt float64) error {
	if err := w.checkStep(dt); err != nil {
		return err
	}
	start := time.Now()

	var errs []error
	for _, u := range w.units.snapshot() {
		if !w.units.has(u) || !u.alive {
			continue
		}
		if err := u.AdvanceTime(dt); err != nil {
			errs = append(errs, fmt.Errorf("unit %s: %w", u.name, err))
		}
	}
	w.advanceItems(dt)

	w.ticks++
	w.elapsed += dt
	w.obs.Tick(time.Since(start), w.units.len())
	return errors.Join(errs...)
}
