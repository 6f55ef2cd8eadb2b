package stream

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"keywave/pkg/types"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestEncodeModifier(t *testing.T) {
	enc := NewEncoder(fixedClock(1700000000123))
	msg := enc.Modifier("shift", true)
	if msg.Type != types.MessageModifier || msg.Key != "shift" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Value == nil || !*msg.Value {
		t.Fatalf("value not true: %+v", msg.Value)
	}
	if msg.Modifiers != nil {
		t.Fatalf("modifier message must carry null modifiers")
	}
	if msg.Timestamp != 1700000000123 {
		t.Fatalf("timestamp = %d", msg.Timestamp)
	}
}

func TestEncodeKeyDownUp(t *testing.T) {
	enc := NewEncoder(fixedClock(42))
	mods := types.ModifierState{Shift: true}

	down := enc.Key("a", true, mods)
	if down.Type != types.MessageKeyDown || down.Key != "a" {
		t.Fatalf("unexpected keydown: %+v", down)
	}
	if down.Value != nil {
		t.Fatalf("keydown must carry null value")
	}
	if down.Modifiers == nil || !down.Modifiers.Shift {
		t.Fatalf("keydown missing modifier snapshot: %+v", down.Modifiers)
	}

	up := enc.Key("a", false, mods)
	if up.Type != types.MessageKeyUp {
		t.Fatalf("unexpected keyup: %+v", up)
	}
}

// Mutating the tracker after encode must not alter a returned message.
func TestEncodeSnapshotIsolation(t *testing.T) {
	enc := NewEncoder(fixedClock(1))
	tr := NewModifierTracker()
	tr.Apply("shift", true)

	msg := enc.Key("a", true, tr.Snapshot())
	tr.Apply("shift", false)
	tr.Apply("ctrl", true)

	if !msg.Modifiers.Shift || msg.Modifiers.Ctrl {
		t.Fatalf("message snapshot aliased tracker state: %+v", msg.Modifiers)
	}
}

func TestEncodeWireShape(t *testing.T) {
	enc := NewEncoder(fixedClock(99))

	b, err := json.Marshal(enc.Modifier("ctrl", false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"modifiers":null`) || !strings.Contains(s, `"value":false`) {
		t.Fatalf("modifier wire shape: %s", s)
	}

	b, err = json.Marshal(enc.Key("x", true, types.ModifierState{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s = string(b)
	if !strings.Contains(s, `"value":null`) || !strings.Contains(s, `"caps_lock":false`) {
		t.Fatalf("key wire shape: %s", s)
	}
}
