package uistate

import (
	"log/slog"
	"sync"

	"github.com/kakeru/folio/internal/kvstore"
)

// ThemeKey is the durable-store key holding the selected theme.
const ThemeKey = "theme"

// Theme modes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeListener is notified after the theme changes.
type ThemeListener func(mode string)

// Theme is the light/dark toggle. The selection persists across
// sessions and applies site-wide.
type Theme struct {
	kv     *kvstore.Store
	logger *slog.Logger

	mu        sync.Mutex
	mode      string
	listeners []ThemeListener
}

// NewTheme restores the persisted theme, defaulting to light.
func NewTheme(kv *kvstore.Store, logger *slog.Logger) *Theme {
	t := &Theme{kv: kv, logger: logger, mode: ThemeLight}
	if kv != nil {
		if saved, err := kv.Get(ThemeKey); err == nil && (saved == ThemeLight || saved == ThemeDark) {
			t.mode = saved
		}
	}
	return t
}

// Active returns the current mode.
func (t *Theme) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Toggle flips between light and dark and returns the new mode.
func (t *Theme) Toggle() string {
	t.mu.Lock()
	if t.mode == ThemeDark {
		t.mode = ThemeLight
	} else {
		t.mode = ThemeDark
	}
	mode := t.mode
	listeners := append([]ThemeListener(nil), t.listeners...)
	t.mu.Unlock()

	t.persist(mode)
	for _, l := range listeners {
		l(mode)
	}
	return mode
}

// Set selects a mode explicitly. Unknown values normalize to light.
func (t *Theme) Set(mode string) {
	if mode != ThemeDark {
		mode = ThemeLight
	}
	t.mu.Lock()
	if t.mode == mode {
		t.mu.Unlock()
		return
	}
	t.mode = mode
	listeners := append([]ThemeListener(nil), t.listeners...)
	t.mu.Unlock()

	t.persist(mode)
	for _, l := range listeners {
		l(mode)
	}
}

// OnChange registers a listener invoked after every theme change.
func (t *Theme) OnChange(l ThemeListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *Theme) persist(mode string) {
	if t.kv == nil {
		return
	}
	if err := t.kv.Put(ThemeKey, mode); err != nil {
		t.logger.Warn("theme: persist failed", slog.String("error", err.Error()))
	}
}
