package world

import "hillsim.ai/internal/sim/world/terrain"

type Activity int

const (
	ActivityIdle Activity = iota
	ActivityMove
	ActivityWork
	ActivityRest
	ActivityFight
)

func (a Activity) String() string {
	switch a {
	case ActivityMove:
		return "MOVE"
	case ActivityWork:
		return "WORK"
	case ActivityRest:
		return "REST"
	case ActivityFight:
		return "FIGHT"
	default:
		return "IDLE"
	}
}

type fightRole int

const (
	roleAttacking fightRole = iota
	roleDefending
)

// activityState is the whole state machine payload. Only the fields that
// belong to kind are meaningful.
type activityState struct {
	kind Activity

	// Move: route[next] is the waypoint being walked to, from is the cube
	// the current segment started in.
	route []terrain.Pos
	next  int
	goal  terrain.Pos
	from  terrain.Pos

	// Work
	workTarget terrain.Pos
	workLeft   float64
	workTotal  float64

	// Fight
	role      fightRole
	fightLeft float64
	opponent  *Unit
}

func idle() activityState { return activityState{kind: ActivityIdle} }

func (s *activityState) waypoint() (terrain.Pos, bool) {
	if s.kind != ActivityMove || s.next >= len(s.route) {
		return terrain.Pos{}, false
	}
	return s.route[s.next], true
}
