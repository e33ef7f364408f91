// Package hotkey is the boundary to the global-shortcut layer. The
// engine does not register OS-level hotkeys itself; the embedding layer
// supplies a Binder and the Manager tracks the currently bound shortcut,
// validates replacements, and persists them.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bryanchriswhite/rifthold/internal/logger"
)

// Handler is invoked when the bound shortcut fires.
type Handler func()

// Binder performs the actual OS-level registration.
type Binder interface {
	// Bind registers shortcut and arranges for h to be called when it
	// is pressed. Any previous binding is replaced.
	Bind(shortcut string, h Handler) error

	// Unbind removes the current registration.
	Unbind() error
}

// NopBinder satisfies Binder on platforms without hotkey registration;
// the shortcut is still tracked and persisted.
type NopBinder struct{}

func (NopBinder) Bind(shortcut string, h Handler) error { return nil }
func (NopBinder) Unbind() error                         { return nil }

var validModifiers = map[string]bool{
	"alt":   true,
	"ctrl":  true,
	"cmd":   true,
	"super": true,
	"shift": true,
}

// Parse splits a shortcut string of the form "mod+mod+key" (e.g.
// "alt+space") into its modifiers and key, validating both.
func Parse(shortcut string) (mods []string, key string, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(shortcut)), "+")
	if len(parts) < 2 {
		return nil, "", fmt.Errorf("invalid shortcut %q: expected at least one modifier and a key", shortcut)
	}

	key = parts[len(parts)-1]
	if key == "" {
		return nil, "", fmt.Errorf("invalid shortcut %q: missing key", shortcut)
	}

	for _, mod := range parts[:len(parts)-1] {
		if !validModifiers[mod] {
			return nil, "", fmt.Errorf("invalid shortcut %q: unknown modifier %q", shortcut, mod)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// Manager tracks the bound shortcut and its handler.
type Manager struct {
	binder Binder

	mu      sync.Mutex
	current string
	handler Handler
}

// NewManager returns a manager over binder. Pass NopBinder{} when the
// embedding layer handles registration elsewhere.
func NewManager(binder Binder) *Manager {
	return &Manager{binder: binder}
}

// Current returns the currently bound shortcut string.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Bind validates shortcut, replaces any existing registration, and
// stores it as current.
func (m *Manager) Bind(shortcut string, h Handler) error {
	if _, _, err := Parse(shortcut); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != "" {
		if err := m.binder.Unbind(); err != nil {
			return fmt.Errorf("failed to unbind %q: %w", m.current, err)
		}
	}
	if err := m.binder.Bind(shortcut, h); err != nil {
		return fmt.Errorf("failed to bind %q: %w", shortcut, err)
	}

	m.current = shortcut
	m.handler = h
	logger.WithComponent("hotkey").Info().
		Str("shortcut", shortcut).
		Msg("shortcut bound")
	return nil
}

// Rebind swaps the shortcut, keeping the existing handler.
func (m *Manager) Rebind(shortcut string) error {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h == nil {
		return fmt.Errorf("no handler bound")
	}
	return m.Bind(shortcut, h)
}
