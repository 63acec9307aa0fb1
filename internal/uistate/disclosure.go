// Package uistate holds the small UI state machines: disclosures
// (menus, dropdowns) and the light/dark theme.
package uistate

import "sync"

// Disclosure is a reusable open/closed state machine. The several
// dropdowns and menus in the UI layer all share this one abstraction,
// parameterized per call site: toggling flips the state, and any pointer
// interaction outside the element's bounds closes it.
type Disclosure struct {
	mu        sync.Mutex
	open      bool
	listeners []func(open bool)
}

// NewDisclosure returns a closed disclosure.
func NewDisclosure() *Disclosure {
	return &Disclosure{}
}

// IsOpen reports the current state.
func (d *Disclosure) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Toggle flips the state and returns the new one.
func (d *Disclosure) Toggle() bool {
	d.mu.Lock()
	d.open = !d.open
	state := d.open
	listeners := append(([]func(bool))(nil), d.listeners...)
	d.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
	return state
}

// Close transitions to closed. Closing an already-closed disclosure is a
// no-op and does not notify.
func (d *Disclosure) Close() {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return
	}
	d.open = false
	listeners := append(([]func(bool))(nil), d.listeners...)
	d.mu.Unlock()

	for _, l := range listeners {
		l(false)
	}
}

// OutsideInteraction handles a pointer interaction outside the
// disclosure's bounds: an open disclosure closes, a closed one ignores it.
func (d *Disclosure) OutsideInteraction() {
	d.Close()
}

// OnChange registers a listener invoked after every state transition.
func (d *Disclosure) OnChange(l func(open bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}
