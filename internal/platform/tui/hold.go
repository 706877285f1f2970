package tui

import (
	"time"

	"github.com/vovakirdan/dagyiman/internal/core"
)

// DefaultHoldWindow is how long a movement key counts as held after its
// last press. Terminals report key repeats, never releases, so a held key
// is a key that keeps repeating.
const DefaultHoldWindow = 250 * time.Millisecond

// HoldTracker turns a stream of key presses into held movement actions.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a press of a movement action at the given time.
// Pressing a direction releases its opposite.
func (h *HoldTracker) Press(a core.Action, at time.Time) {
	if !a.IsMovement() {
		return
	}
	delete(h.last, opposite(a))
	h.last[a] = at
}

// Apply sets every action still held at now on the frame and forgets the
// ones whose window has passed.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a := range h.last {
		if !h.Held(a, now) {
			delete(h.last, a)
			continue
		}
		frame.Set(a)
	}
}

// Held reports whether a is held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	at, ok := h.last[a]
	return ok && now.Sub(at) <= h.window
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	clear(h.last)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
