// Package keymap normalizes raw platform key identifiers into canonical,
// platform-independent key names and recognizes modifier keys.
package keymap

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the outcome of classifying a raw identifier.
type Kind int

const (
	// Ignored identifiers produce no event.
	Ignored Kind = iota
	// Modifier identifiers toggle tracked modifier state.
	Modifier
	// Key identifiers produce keydown/keyup events.
	Key
)

// Classification is the canonical form of one raw key identifier.
type Classification struct {
	Kind Kind
	// Name is the canonical key name when Kind is Key.
	Name string
	// Modifier is the canonical modifier name when Kind is Modifier.
	Modifier string
}

// modifierNames maps platform-specific modifier variants to one of the five
// canonical modifier names.
var modifierNames = map[string]string{
	"shift":     "shift",
	"shift_l":   "shift",
	"shift_r":   "shift",
	"ctrl":      "ctrl",
	"ctrl_l":    "ctrl",
	"ctrl_r":    "ctrl",
	"alt":       "alt",
	"alt_l":     "alt",
	"alt_r":     "alt",
	"alt_gr":    "alt",
	"cmd":       "cmd",
	"cmd_l":     "cmd",
	"cmd_r":     "cmd",
	"caps_lock": "caps_lock",
}

// specialNames maps recognized non-printable keys to canonical names.
var specialNames = map[string]string{
	"space":     "space",
	"enter":     "enter",
	"backspace": "backspace",
	"delete":    "delete",
	"tab":       "tab",
	"esc":       "escape",
	"escape":    "escape",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"f1":        "f1",
	"f2":        "f2",
	"f3":        "f3",
	"f4":        "f4",
	"f5":        "f5",
	"f6":        "f6",
	"f7":        "f7",
	"f8":        "f8",
	"f9":        "f9",
	"f10":       "f10",
	"f11":       "f11",
	"f12":       "f12",
}

// Classify maps a raw platform key identifier to its canonical form. The
// modifier table takes precedence over the special-key table, which takes
// precedence over the printable-character fallthrough. Identifiers matching
// none of the three are Ignored. Classify is a pure function and never fails:
// malformed input classifies as Ignored.
func Classify(raw string) Classification {
	name := strings.ToLower(strings.TrimSpace(raw))
	// Some sources report special keys as "key.<name>".
	name = strings.TrimPrefix(name, "key.")

	if mod, ok := modifierNames[name]; ok {
		return Classification{Kind: Modifier, Modifier: mod}
	}
	if canon, ok := specialNames[name]; ok {
		return Classification{Kind: Key, Name: canon}
	}
	if r, size := utf8.DecodeRuneInString(name); size > 0 && size == len(name) &&
		r != utf8.RuneError && unicode.IsPrint(r) && !unicode.IsSpace(r) {
		return Classification{Kind: Key, Name: name}
	}
	return Classification{Kind: Ignored}
}
