package stream

import (
	"time"

	"keywave/pkg/types"
)

// Encoder builds immutable wire messages from classified events. The clock
// is injectable for tests; nil means time.Now.
type Encoder struct {
	clock func() time.Time
}

func NewEncoder(clock func() time.Time) *Encoder {
	if clock == nil {
		clock = time.Now
	}
	return &Encoder{clock: clock}
}

// Modifier encodes a modifier state transition. Modifiers is null on these
// messages; the new pressed state travels in Value.
func (e *Encoder) Modifier(name string, pressed bool) types.WireMessage {
	v := pressed
	return types.WireMessage{
		Type:      types.MessageModifier,
		Key:       name,
		Value:     &v,
		Timestamp: e.clock().UnixMilli(),
	}
}

// Key encodes a key press or release. The modifier snapshot is taken by
// value, so later tracker mutations cannot alter the returned message.
func (e *Encoder) Key(name string, pressed bool, mods types.ModifierState) types.WireMessage {
	typ := types.MessageKeyUp
	if pressed {
		typ = types.MessageKeyDown
	}
	return types.WireMessage{
		Type:      typ,
		Key:       name,
		Modifiers: &mods,
		Timestamp: e.clock().UnixMilli(),
	}
}
