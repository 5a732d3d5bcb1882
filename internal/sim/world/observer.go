package world

import (
	"time"

	"hillsim.ai/internal/sim/world/terrain"
)

// Observer receives instrumentation callbacks from the world loop. It must
// not call back into the world.
type Observer interface {
	CaveIn(pos terrain.Pos, prev terrain.Type)
	PathSearch(found bool, expanded int)
	UnitDied(name string)
	Tick(elapsed time.Duration, units int)
}

type nopObserver struct{}

func (nopObserver) CaveIn(terrain.Pos, terrain.Type) {}
func (nopObserver) PathSearch(bool, int)             {}
func (nopObserver) UnitDied(string)                  {}
func (nopObserver) Tick(time.Duration, int)          {}
