package types

// Message type values carried in WireMessage.Type.
const (
	MessageModifier = "modifier"
	MessageKeyDown  = "keydown"
	MessageKeyUp    = "keyup"
)

// ModifierState holds the pressed state of each tracked modifier key.
// It is a value type: assigning or embedding one takes a snapshot that is
// detached from later mutations of the live tracker state.
type ModifierState struct {
	// example: true
	Shift bool `json:"shift" example:"true"`
	// example: false
	Ctrl bool `json:"ctrl" example:"false"`
	// example: false
	Alt bool `json:"alt" example:"false"`
	// example: false
	Cmd bool `json:"cmd" example:"false"`
	// example: false
	CapsLock bool `json:"caps_lock" example:"false"`
}

// WireMessage is the JSON payload pushed to subscribers, one object per
// WebSocket message. Modifiers is null on "modifier" messages; Value is
// null on "keydown"/"keyup" messages. Immutable once constructed.
type WireMessage struct {
	// One of "modifier", "keydown", "keyup".
	// example: keydown
	Type string `json:"type" example:"keydown"`
	// Canonical key or modifier name.
	// example: a
	Key string `json:"key" example:"a"`
	// Modifier snapshot taken when the key event was classified.
	Modifiers *ModifierState `json:"modifiers"`
	// New pressed state for "modifier" messages.
	Value *bool `json:"value"`
	// Milliseconds since the Unix epoch, captured at encode time.
	// example: 1700000000000
	Timestamp int64 `json:"timestamp" example:"1700000000000"`
}
