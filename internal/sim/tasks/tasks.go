package tasks

import (
	"errors"

	"hillsim.ai/internal/sim/world/terrain"
)

// Task is an externally scripted behaviour. The unit calls Execute once per
// tick with the tick duration and drops the task once Done reports true.
type Task interface {
	Execute(dt float64) error
	Done() bool
}

// Actor is the unit surface tasks are allowed to drive.
type Actor interface {
	MoveTo(target terrain.Pos) error
	WorkAt(target terrain.Pos) error
	Rest() error
	IsMoving() bool
	IsWorking() bool
	IsResting() bool
	CubeCoordinate() terrain.Pos
}

type Kind string

const (
	KindFunc     Kind = "FUNC"
	KindMoveTo   Kind = "MOVE_TO"
	KindWorkAt   Kind = "WORK_AT"
	KindRest     Kind = "REST"
	KindSequence Kind = "SEQUENCE"
	KindCustom   Kind = "CUSTOM"
)

// KindOf reports the kind of a task built by this package and KindCustom
// for any other implementation.
func KindOf(t Task) Kind {
	if k, ok := t.(interface{ Kind() Kind }); ok {
		return k.Kind()
	}
	return KindCustom
}

// Func adapts a function to Task. The function reports completion itself.
type Func struct {
	Fn func(dt float64) (done bool, err error)

	done bool
}

func (f *Func) Kind() Kind { return KindFunc }

func (f *Func) Execute(dt float64) error {
	if f.done || f.Fn == nil {
		f.done = true
		return nil
	}
	done, err := f.Fn(dt)
	f.done = done
	return err
}

func (f *Func) Done() bool { return f.done }

// issueThenWait issues a command on the first tick and completes once the
// actor has left the activity the command started.
type issueThenWait struct {
	kind   Kind
	issue  func() error
	active func() bool

	issued bool
	done   bool
}

func (t *issueThenWait) Kind() Kind { return t.kind }

func (t *issueThenWait) Execute(float64) error {
	if t.done {
		return nil
	}
	if !t.issued {
		t.issued = true
		if err := t.issue(); err != nil {
			t.done = true
			return err
		}
		return nil
	}
	if !t.active() {
		t.done = true
	}
	return nil
}

func (t *issueThenWait) Done() bool { return t.done }

func MoveTo(a Actor, target terrain.Pos) Task {
	return &issueThenWait{
		kind:   KindMoveTo,
		issue:  func() error { return a.MoveTo(target) },
		active: a.IsMoving,
	}
}

func WorkAt(a Actor, target terrain.Pos) Task {
	return &issueThenWait{
		kind:   KindWorkAt,
		issue:  func() error { return a.WorkAt(target) },
		active: a.IsWorking,
	}
}

func Rest(a Actor) Task {
	return &issueThenWait{
		kind:   KindRest,
		issue:  a.Rest,
		active: a.IsResting,
	}
}

var ErrEmptySequence = errors.New("empty task sequence")

// Sequence runs tasks one after another. The next step starts on the tick
// after the previous one finished.
type Sequence struct {
	Steps []Task

	next int
}

func NewSequence(steps ...Task) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, ErrEmptySequence
	}
	return &Sequence{Steps: steps}, nil
}

func (s *Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) Execute(dt float64) error {
	if s.Done() {
		return nil
	}
	cur := s.Steps[s.next]
	err := cur.Execute(dt)
	if cur.Done() {
		s.next++
	}
	return err
}

func (s *Sequence) Done() bool { return s.next >= len(s.Steps) }

// Current returns the running step index.
func (s *Sequence) Current() int { return s.next }
