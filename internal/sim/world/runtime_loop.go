package world

import (
	"context"
	"fmt"
	"time"
)

// Run drives AdvanceTime(dt) once per tick until ctx is done, Stop is
// called or a tick fails. While Run is active the world must only be
// touched through Submit.
func (w *World) Run(ctx context.Context, tick time.Duration, dt float64) error {
	if tick <= 0 {
		return fmt.Errorf("tick interval %v: %w", tick, ErrInvalidDuration)
	}
	if err := w.checkStep(dt); err != nil {
		return err
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case fn := <-w.inbox:
			fn(w)
		case <-ticker.C:
			if err := w.AdvanceTime(dt); err != nil {
				return err
			}
		}
	}
}

func (w *World) Stop() { w.stopOnce.Do(func() { close(w.stop) }) }

// Submit queues fn to run on the Run goroutine between ticks.
func (w *World) Submit(ctx context.Context, fn func(*World)) error {
	select {
	case <-w.stop:
		return ErrStopped
	default:
	}
	select {
	case w.inbox <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-w.stop:
		return ErrStopped
	}
}
