// Package refresh coordinates asynchronous window-list refreshes so
// that only the most recent request's results ever reach consumers.
package refresh

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

// Emitter receives the events of a refresh pass. Implementations are
// the transport layer (websocket hub) or test doubles.
type Emitter interface {
	// WindowList delivers the enumerated windows, without thumbnails.
	WindowList(windows []window.Info)

	// Thumbnail delivers one window's encoded thumbnail.
	Thumbnail(id, thumbnail string)

	// RefreshComplete signals that every capture unit of the current
	// pass has finished.
	RefreshComplete()
}

// Coordinator owns the refresh generation counter. Each Refresh call
// increments it and captures the new value; a pass compares the live
// counter against its captured generation before every costly step and
// before every emission, abandoning its work silently once superseded.
// Cancellation is advisory: a unit already inside a blocking native
// call runs to completion, only its result is discarded.
type Coordinator struct {
	provider window.Provider
	emitter  Emitter
	gen      atomic.Uint64
}

// NewCoordinator returns a coordinator emitting through emitter.
func NewCoordinator(provider window.Provider, emitter Emitter) *Coordinator {
	return &Coordinator{provider: provider, emitter: emitter}
}

// Refresh starts a new refresh pass in the background, superseding any
// pass still in flight.
func (c *Coordinator) Refresh() {
	gen := c.gen.Add(1)
	go c.run(gen)
}

// Generation returns the current generation, for logging.
func (c *Coordinator) Generation() uint64 {
	return c.gen.Load()
}

func (c *Coordinator) stale(gen uint64) bool {
	return c.gen.Load() != gen
}

func (c *Coordinator) run(gen uint64) {
	log := logger.WithComponent("refresh")

	if c.stale(gen) {
		return
	}

	// Enumeration is a blocking native call; the pass may be superseded
	// by the time it returns.
	windows := c.provider.List(false)
	if c.stale(gen) {
		log.Debug().
			Uint64("gen", gen).
			Msg("stale after list fetch")
		return
	}

	c.emitter.WindowList(windows)

	batchStart := time.Now()

	var wg sync.WaitGroup
	for _, win := range windows {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			if c.stale(gen) {
				return
			}

			thumb, err := c.provider.Thumbnail(id)
			if err != nil {
				log.Debug().
					Err(err).
					Str("id", id).
					Uint64("gen", gen).
					Msg("thumbnail capture skipped")
				return
			}

			if c.stale(gen) {
				return
			}
			c.emitter.Thumbnail(id, thumb)
		}(win.ID)
	}
	wg.Wait()

	if c.stale(gen) {
		return
	}

	log.Debug().
		Int("windows", len(windows)).
		Int64("elapsed_ms", time.Since(batchStart).Milliseconds()).
		Uint64("gen", gen).
		Msg("refresh batch complete")
	c.emitter.RefreshComplete()
}
