package world

import "errors"

// Error kinds. Every concrete error below wraps exactly one kind so callers
// can match either the specific condition or its category with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrSpatial    = errors.New("spatial error")
	ErrPath       = errors.New("path error")
	ErrState      = errors.New("state error")
)

var (
	ErrInvalidName     = kindError(ErrValidation, "invalid unit name")
	ErrInvalidDuration = kindError(ErrValidation, "invalid time step")
	ErrInvalidTerrain  = kindError(ErrValidation, "invalid terrain")
	ErrInvalidStep     = kindError(ErrValidation, "invalid adjacent step")

	ErrOutOfBounds  = kindError(ErrSpatial, "position out of bounds")
	ErrNotPassable  = kindError(ErrSpatial, "cube is not passable")
	ErrNotStandable = kindError(ErrSpatial, "cube is not a valid standing position")
	ErrNoValidSpawn = kindError(ErrSpatial, "no valid spawn cube")

	ErrNoPath = kindError(ErrPath, "no path found")

	ErrNotAdjacent    = kindError(ErrState, "target cube is not adjacent")
	ErrNotAttackable  = kindError(ErrState, "target unit cannot be attacked")
	ErrBusy           = kindError(ErrState, "unit is fighting")
	ErrDead           = kindError(ErrState, "unit is dead")
	ErrNoWorld        = kindError(ErrState, "unit is not part of a world")
	ErrAlreadyInWorld = kindError(ErrState, "unit already belongs to a world")
	ErrWorldFull      = kindError(ErrState, "world is full")
	ErrForeignFaction = kindError(ErrState, "faction belongs to another world")
	ErrStopped        = kindError(ErrState, "world loop stopped")
)

type simError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &simError{kind: kind, msg: msg}
}

func (e *simError) Error() string { return e.msg }
func (e *simError) Unwrap() error { return e.kind }
