package pipeline

import "fmt"

type State int

const (
	StateFetching State = iota
	StateNormalizing
	StateEnriching
	StateGenerating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateNormalizing:
		return "normalizing"
	case StateEnriching:
		return "enriching"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StageError is the error a run ends with when a stage fails.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Recorder observes state transitions of every run.
type Recorder interface {
	OnTransition(from, to State)
}

type nopRecorder struct{}

func (nopRecorder) OnTransition(from, to State) {}
