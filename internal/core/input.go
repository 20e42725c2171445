package core

import "math/bits"

// Action represents a semantic input, abstracted from physical keys, mouse
// buttons or touch events.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // menus
	ActionDown           // menus
	ActionJump           // space, up, mouse click; the only gameplay input
	ActionConfirm        // enter
	ActionBack           // esc, b
	ActionRestart        // r
	ActionQuit           // q, ctrl+c
	actionCount
)

var actionNames = [...]string{"None", "Up", "Down", "Jump", "Confirm", "Back", "Restart", "Quit"}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered between two scheduler ticks.
// Triggering an action twice in one frame is the same as triggering it once.
// The zero value is an empty frame.
type InputFrame uint16

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return 0
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	*f |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f&(1<<a) != 0
}

// Len returns the number of distinct actions in the frame.
func (f InputFrame) Len() int {
	return bits.OnesCount16(uint16(f))
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = 0
}
