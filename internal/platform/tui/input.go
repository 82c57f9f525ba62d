package tui

import "github.com/goldnoam/great-heist/internal/core"

// DefaultHoldTicks is how long a direction stays held after its last press.
// Terminals report key repeats but no releases, so a held key is one that
// was pressed recently. At 60 Hz this bridges typical repeat intervals.
const DefaultHoldTicks = 8

var directions = []core.Action{
	core.ActionUp,
	core.ActionDown,
	core.ActionLeft,
	core.ActionRight,
}

// opposite returns the direction on the same axis.
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

// HeldKeys turns key presses into per-tick movement levels.
type HeldKeys struct {
	holdTicks int
	remaining map[core.Action]int
}

// NewHeldKeys creates a device that holds each direction for holdTicks
// ticks after its last press. Non-positive values use DefaultHoldTicks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &HeldKeys{
		holdTicks: holdTicks,
		remaining: make(map[core.Action]int, len(directions)),
	}
}

// Press records a key press. Non-direction actions are ignored.
// Pressing a direction releases its opposite.
func (h *HeldKeys) Press(a core.Action) bool {
	opp := opposite(a)
	if opp == core.ActionNone {
		return false
	}
	delete(h.remaining, opp)
	h.remaining[a] = h.holdTicks
	return true
}

// ReleaseAll drops every held direction.
func (h *HeldKeys) ReleaseAll() {
	clear(h.remaining)
}

// Held reports whether a direction is currently held.
func (h *HeldKeys) Held(a core.Action) bool {
	return h.remaining[a] > 0
}

// Apply sets the held directions on frame and ages every hold by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for _, a := range directions {
		n := h.remaining[a]
		if n <= 0 {
			continue
		}
		frame.Set(a)
		if n == 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}
