package world

import (
	"errors"

	"hillsim.ai/internal/sim/world/terrain"
)

var errNoEnemy = errors.New("no enemy in the world")

const (
	defaultMove = iota
	defaultWork
	defaultRest
	defaultAttack
	defaultChoices
)

var defaultNames = [defaultChoices]string{"move", "work", "rest", "attack"}

// chooseDefault starts one random activity. Failures leave the unit idle.
func (u *Unit) chooseDefault() {
	w := u.world
	choice := w.rand.Intn(defaultChoices)
	var err error
	switch choice {
	case defaultMove:
		var c Cube
		if c, err = w.RandomSpawnCube(); err == nil {
			err = u.MoveTo(c.Pos)
		}
	case defaultWork:
		// In-bounds neighbours in table order, then the unit's own cube.
		here := u.CubeCoordinate()
		targets := make([]terrain.Pos, 0, len(terrain.NeighborOffsets)+1)
		for _, d := range terrain.NeighborOffsets {
			if p := here.Add(d); w.InBounds(p) {
				targets = append(targets, p)
			}
		}
		targets = append(targets, here)
		err = u.WorkAt(targets[w.rand.Intn(len(targets))])
	case defaultRest:
		err = u.Rest()
	case defaultAttack:
		enemy := u.NearestEnemy()
		switch {
		case enemy == nil:
			err = errNoEnemy
		case u.CanAttack(enemy):
			err = u.Attack(enemy)
		default:
			err = u.MoveTo(enemy.CubeCoordinate())
		}
	}
	if err != nil {
		w.log.Debug("default behaviour failed", "unit", u.name, "choice", defaultNames[choice], "err", err)
		return
	}
	w.log.Debug("default behaviour", "unit", u.name, "choice", defaultNames[choice])
}
