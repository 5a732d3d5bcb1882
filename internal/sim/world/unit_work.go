package world

import (
	"hillsim.ai/internal/sim/world/feature/work"
	"hillsim.ai/internal/sim/world/terrain"
)

func workProgress(left, total float64) float64 {
	return work.Progress(left, total)
}

func (u *Unit) advanceWork(dt float64) {
	u.act.workLeft -= dt
	if u.act.workLeft > timerEpsilon {
		return
	}
	target := u.act.workTarget
	u.act = idle()
	outcome := u.finishWork(target)
	u.gainExperience(u.world.cfg.ExpPerWork)
	u.world.log.Debug("work done", "unit", u.name, "at", target.String(), "outcome", outcome.String())
}

// finishWork applies the first work rule that matches the target cube.
func (u *Unit) finishWork(target terrain.Pos) work.Outcome {
	w := u.world
	logs := w.LogsAt(target)
	boulders := w.BouldersAt(target)
	outcome := work.Select(work.Situation{
		CarryingBoulder: u.boulder != nil,
		CarryingLog:     u.log != nil,
		Target:          w.grid.Get(target),
		Boulders:        len(boulders),
		Logs:            len(logs),
	})

	switch outcome {
	case work.OutcomeDropBoulder:
		b := u.boulder
		u.boulder = nil
		w.placeBoulder(b, target)
	case work.OutcomeDropLog:
		l := u.log
		u.log = nil
		w.placeLog(l, target)
	case work.OutcomeCraft:
		w.RemoveLog(logs[0])
		w.RemoveBoulder(boulders[0])
		bonus := w.cfg.WorkshopBonus
		u.SetWeight(u.weight + bonus)
		u.SetToughness(u.toughness + bonus)
	case work.OutcomePickUpBoulder:
		b := boulders[0]
		w.detachBoulder(b)
		b.carrier = u
		b.falling = false
		u.boulder = b
		u.syncCarried()
	case work.OutcomePickUpLog:
		l := logs[0]
		w.detachLog(l)
		l.carrier = u
		l.falling = false
		u.log = l
		u.syncCarried()
	case work.OutcomeFellTree:
		u.clearCube(target)
		w.dropLog(target)
	case work.OutcomeMineRock:
		u.clearCube(target)
		w.dropBoulder(target)
	}
	return outcome
}

func (u *Unit) clearCube(p terrain.Pos) {
	if err := u.world.SetTerrainType(p.X, p.Y, p.Z, terrain.Air); err != nil {
		u.world.log.Warn("clear cube", "unit", u.name, "at", p.String(), "err", err)
	}
}

// dropCarried puts every carried item down at the centre of p.
func (u *Unit) dropCarried(p terrain.Pos) {
	w := u.world
	if l := u.log; l != nil {
		u.log = nil
		w.placeLog(l, p)
	}
	if b := u.boulder; b != nil {
		u.boulder = nil
		w.placeBoulder(b, p)
	}
}
