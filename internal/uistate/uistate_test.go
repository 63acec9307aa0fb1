package uistate

import (
	"log/slog"
	"os"
	"testing"

	"github.com/kakeru/folio/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDisclosureToggle(t *testing.T) {
	d := NewDisclosure()
	if d.IsOpen() {
		t.Fatal("new disclosure should be closed")
	}
	if !d.Toggle() {
		t.Error("first toggle should open")
	}
	if d.Toggle() {
		t.Error("second toggle should close")
	}
}

func TestDisclosureOutsideInteraction(t *testing.T) {
	d := NewDisclosure()
	d.Toggle()
	d.OutsideInteraction()
	if d.IsOpen() {
		t.Error("outside interaction should close an open disclosure")
	}

	// Outside interaction while closed stays closed.
	d.OutsideInteraction()
	if d.IsOpen() {
		t.Error("still closed")
	}
}

func TestDisclosureNotifiesOnTransitionsOnly(t *testing.T) {
	d := NewDisclosure()
	var calls int
	d.OnChange(func(bool) { calls++ })

	d.Toggle() // open
	d.Close()  // close
	d.Close()  // no-op
	if calls != 2 {
		t.Errorf("listener calls = %d, want 2", calls)
	}
}

func TestThemeDefaultsToLight(t *testing.T) {
	th := NewTheme(nil, quietLogger())
	if th.Active() != ThemeLight {
		t.Errorf("default theme = %q, want light", th.Active())
	}
}

func TestThemeToggleAndPersist(t *testing.T) {
	kv := testutil.TestKV(t)
	th := NewTheme(kv, quietLogger())

	if got := th.Toggle(); got != ThemeDark {
		t.Errorf("toggle = %q, want dark", got)
	}

	// A new instance over the same store restores the selection.
	th2 := NewTheme(kv, quietLogger())
	if th2.Active() != ThemeDark {
		t.Errorf("restored theme = %q, want dark", th2.Active())
	}
}

func TestThemeSetNormalizesUnknown(t *testing.T) {
	th := NewTheme(nil, quietLogger())
	th.Set("dark")
	th.Set("neon")
	if th.Active() != ThemeLight {
		t.Errorf("unknown mode should normalize to light, got %q", th.Active())
	}
}

func TestThemeChangeListener(t *testing.T) {
	th := NewTheme(nil, quietLogger())
	var got string
	th.OnChange(func(mode string) { got = mode })
	th.Toggle()
	if got != ThemeDark {
		t.Errorf("listener got %q, want dark", got)
	}
}
