package sim

import (
	"fmt"

	"github.com/vovakirdan/color-dash/internal/level"
)

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventJumped EventKind = iota + 1
	EventLanded
	EventCrashed
	EventPassed
	EventLooped
)

func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventLanded:
		return "landed"
	case EventCrashed:
		return "crashed"
	case EventPassed:
		return "passed"
	case EventLooped:
		return "looped"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by Step for audio, scoring and the HUD.
type Event struct {
	Kind          EventKind
	FinalDistance int                // EventCrashed only
	Obstacle      level.ObstacleType // EventCrashed and EventPassed
}

// StepResult contains the outcome of a single frame.
type StepResult struct {
	Events []Event
}

func (r *StepResult) add(e Event) {
	r.Events = append(r.Events, e)
}

// Has reports whether an event of the given kind was emitted.
func (r StepResult) Has(kind EventKind) bool {
	_, ok := r.Find(kind)
	return ok
}

// Find returns the first event of the given kind.
func (r StepResult) Find(kind EventKind) (Event, bool) {
	for _, e := range r.Events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}
