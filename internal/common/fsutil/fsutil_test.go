package fsutil

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if got, err := ExpandHome("/srv/static"); err != nil || got != "/srv/static" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome("~"); err != nil || got != home {
		t.Fatalf("got %q err=%v", got, err)
	}
	got, err := ExpandHome("~/viewer")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if want := filepath.Join(home, "viewer"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	if !PathExists(dir) {
		t.Fatalf("existing dir reported missing")
	}
	if PathExists(filepath.Join(dir, "nope")) {
		t.Fatalf("missing path reported present")
	}
}
