// Package stream turns raw capture events into broadcast-ready wire
// messages: classify, track modifier state, encode, publish.
package stream

import "keywave/pkg/types"

// ModifierTracker holds the live pressed state of the tracked modifier keys.
// It is mutated exclusively by the bridge's sequential event loop and
// therefore carries no locking; everything else sees copies via Snapshot.
type ModifierTracker struct {
	state types.ModifierState
}

func NewModifierTracker() *ModifierTracker { return &ModifierTracker{} }

// Apply records a press (true) or release (false) of the named canonical
// modifier and returns the new state. Press/release set the flag outright,
// so repeated presses without an interleaved release are idempotent and a
// release with no prior press simply stays false. Caps-lock deliberately
// follows the same press/release model as the other modifiers.
func (t *ModifierTracker) Apply(name string, pressed bool) bool {
	switch name {
	case "shift":
		t.state.Shift = pressed
	case "ctrl":
		t.state.Ctrl = pressed
	case "alt":
		t.state.Alt = pressed
	case "cmd":
		t.state.Cmd = pressed
	case "caps_lock":
		t.state.CapsLock = pressed
	}
	return pressed
}

// Snapshot returns an independent copy of the current state.
func (t *ModifierTracker) Snapshot() types.ModifierState {
	return t.state
}
