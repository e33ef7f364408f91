package window

import (
	"fmt"
	"time"

	"github.com/bryanchriswhite/rifthold/internal/logger"
)

// DefaultSettleDelay is how long the resolver waits after app-level
// activation before attempting the per-window raise, so the app has
// become frontmost.
const DefaultSettleDelay = 150 * time.Millisecond

// Resolver executes the multi-strategy activation sequence over
// platform hooks: resolve the id against the snapshot (re-enumerating
// once on a miss), foreground the owning process, fall back to
// activation by application name, then best-effort raise the specific
// window when a real title is known.
type Resolver struct {
	// Lookup resolves an id against the current snapshot.
	Lookup func(id string) (Entry, bool)

	// Refresh performs one fresh enumeration, repopulating the snapshot.
	Refresh func()

	// ActivateProcess foregrounds the application owning pid.
	ActivateProcess func(pid int64) error

	// ActivateApp foregrounds the application by display name.
	ActivateApp func(name string) error

	// RaiseWindow raises the window of pid whose title contains title.
	RaiseWindow func(pid int64, title string) error

	// SettleDelay overrides DefaultSettleDelay when non-zero.
	SettleDelay time.Duration
}

// Activate resolves id and brings its window's application to the
// foreground. The per-window raise is best-effort: once app-level
// activation succeeded the call reports success regardless.
func (r *Resolver) Activate(id string) error {
	log := logger.WithComponent("resolver")

	entry, ok := r.Lookup(id)
	if !ok {
		// One refresh, one retry. Negative results are not cached.
		r.Refresh()
		entry, ok = r.Lookup(id)
	}
	if !ok {
		return fmt.Errorf("window id %s: %w", id, ErrNotFound)
	}

	activated := false
	if entry.OwnerPID != 0 {
		if err := r.ActivateProcess(entry.OwnerPID); err != nil {
			log.Debug().
				Err(err).
				Int64("pid", entry.OwnerPID).
				Msg("process activation failed, falling back to app name")
		} else {
			activated = true
		}
	}

	if !activated {
		if entry.AppName == "" {
			return fmt.Errorf("missing app name for window id %s: %w", id, ErrActivation)
		}
		if err := r.ActivateApp(entry.AppName); err != nil {
			return fmt.Errorf("failed to activate %q: %w", entry.AppName, ErrActivation)
		}
	}

	// Fine-grained raise needs a real title and a pid; with a fallback
	// title there is nothing meaningful to match against.
	if !entry.IsTitleFallback && entry.OwnerPID != 0 {
		time.Sleep(r.settleDelay())
		if err := r.RaiseWindow(entry.OwnerPID, entry.Title); err != nil {
			log.Warn().
				Err(err).
				Str("id", entry.ID).
				Str("title", entry.Title).
				Msg("window raise failed after app activation")
		}
	}

	return nil
}

func (r *Resolver) settleDelay() time.Duration {
	if r.SettleDelay > 0 {
		return r.SettleDelay
	}
	return DefaultSettleDelay
}
