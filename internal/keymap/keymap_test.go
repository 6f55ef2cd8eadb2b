package keymap

import "testing"

func TestClassifyModifiers(t *testing.T) {
	cases := map[string]string{
		"shift":     "shift",
		"shift_l":   "shift",
		"shift_r":   "shift",
		"ctrl_l":    "ctrl",
		"ctrl_r":    "ctrl",
		"alt":       "alt",
		"alt_gr":    "alt",
		"cmd_l":     "cmd",
		"cmd_r":     "cmd",
		"caps_lock": "caps_lock",
	}
	for raw, want := range cases {
		c := Classify(raw)
		if c.Kind != Modifier || c.Modifier != want {
			t.Fatalf("Classify(%q) = %+v, want modifier %q", raw, c, want)
		}
	}
}

func TestClassifySpecialKeys(t *testing.T) {
	cases := map[string]string{
		"space":     "space",
		"enter":     "enter",
		"backspace": "backspace",
		"delete":    "delete",
		"tab":       "tab",
		"esc":       "escape",
		"up":        "up",
		"down":      "down",
		"left":      "left",
		"right":     "right",
		"f1":        "f1",
		"f12":       "f12",
	}
	for raw, want := range cases {
		c := Classify(raw)
		if c.Kind != Key || c.Name != want {
			t.Fatalf("Classify(%q) = %+v, want key %q", raw, c, want)
		}
	}
}

func TestClassifyPrintable(t *testing.T) {
	for raw, want := range map[string]string{"a": "a", "A": "a", "7": "7", "/": "/", "é": "é"} {
		c := Classify(raw)
		if c.Kind != Key || c.Name != want {
			t.Fatalf("Classify(%q) = %+v, want key %q", raw, c, want)
		}
	}
}

func TestClassifyKeyPrefixStripped(t *testing.T) {
	c := Classify("Key.esc")
	if c.Kind != Key || c.Name != "escape" {
		t.Fatalf("Classify(Key.esc) = %+v", c)
	}
	c = Classify("Key.shift_l")
	if c.Kind != Modifier || c.Modifier != "shift" {
		t.Fatalf("Classify(Key.shift_l) = %+v", c)
	}
}

func TestClassifyIgnored(t *testing.T) {
	for _, raw := range []string{"media_volume_up", "f13", "insert", "", "  ", "\x00", "abc"} {
		if c := Classify(raw); c.Kind != Ignored {
			t.Fatalf("Classify(%q) = %+v, want ignored", raw, c)
		}
	}
}

// Classification must be a pure function of the raw identifier.
func TestClassifyIdempotent(t *testing.T) {
	for _, raw := range []string{"a", "shift_l", "esc", "f13"} {
		first := Classify(raw)
		for i := 0; i < 3; i++ {
			if got := Classify(raw); got != first {
				t.Fatalf("Classify(%q) changed across calls: %+v vs %+v", raw, first, got)
			}
		}
	}
}
