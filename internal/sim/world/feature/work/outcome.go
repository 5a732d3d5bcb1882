package work

import "hillsim.ai/internal/sim/world/terrain"

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDropBoulder
	OutcomeDropLog
	OutcomeCraft
	OutcomePickUpBoulder
	OutcomePickUpLog
	OutcomeFellTree
	OutcomeMineRock
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDropBoulder:
		return "DROP_BOULDER"
	case OutcomeDropLog:
		return "DROP_LOG"
	case OutcomeCraft:
		return "CRAFT"
	case OutcomePickUpBoulder:
		return "PICK_UP_BOULDER"
	case OutcomePickUpLog:
		return "PICK_UP_LOG"
	case OutcomeFellTree:
		return "FELL_TREE"
	case OutcomeMineRock:
		return "MINE_ROCK"
	default:
		return "NONE"
	}
}

// Situation is what the worker and the target cube look like when the work
// timer runs out.
type Situation struct {
	CarryingBoulder bool
	CarryingLog     bool

	Target   terrain.Type
	Boulders int
	Logs     int
}

type Rule struct {
	Outcome Outcome
	Applies func(Situation) bool
}

// Rules is evaluated in order; the first rule that applies wins.
var Rules = []Rule{
	{OutcomeDropBoulder, func(s Situation) bool { return s.CarryingBoulder && s.Target.Passable() }},
	{OutcomeDropLog, func(s Situation) bool { return s.CarryingLog && s.Target.Passable() }},
	{OutcomeCraft, func(s Situation) bool { return s.Target == terrain.Workshop && s.Boulders > 0 && s.Logs > 0 }},
	{OutcomePickUpBoulder, func(s Situation) bool { return s.Boulders > 0 && !s.CarryingBoulder }},
	{OutcomePickUpLog, func(s Situation) bool { return s.Logs > 0 && !s.CarryingLog }},
	{OutcomeFellTree, func(s Situation) bool { return s.Target == terrain.Tree }},
	{OutcomeMineRock, func(s Situation) bool { return s.Target == terrain.Rock }},
}

func Select(s Situation) Outcome {
	for _, r := range Rules {
		if r.Applies(s) {
			return r.Outcome
		}
	}
	return OutcomeNone
}

// Duration is the number of seconds one unit of work takes.
func Duration(base float64, strength int) float64 {
	if strength <= 0 {
		strength = 1
	}
	return base / float64(strength)
}

// Progress is the completed fraction of a work timer, clamped to [0,1].
func Progress(remaining, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return clamp01(1 - remaining/total)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
