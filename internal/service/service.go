// Package service fronts the window provider for the transport layers:
// synchronous listing and activation, plus fire-and-forget refreshes
// whose results arrive as events.
package service

import (
	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/refresh"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

// WindowService exposes the provider operations consumed by the CLI
// and the API server.
type WindowService struct {
	provider    window.Provider
	coordinator *refresh.Coordinator
}

// New returns a service over provider, delivering async refresh events
// through emitter.
func New(provider window.Provider, emitter refresh.Emitter) *WindowService {
	return &WindowService{
		provider:    provider,
		coordinator: refresh.NewCoordinator(provider, emitter),
	}
}

// List returns the current on-screen windows. When refreshCache is set
// the provider's cached state is invalidated first so the enumeration
// is fully fresh.
func (s *WindowService) List(refreshCache, captureThumbnails bool) []window.Info {
	logger.WithComponent("service").Debug().
		Bool("refresh_cache", refreshCache).
		Bool("capture_thumbnails", captureThumbnails).
		Msg("list windows")

	if refreshCache {
		s.provider.ClearCache()
	}
	return s.provider.List(captureThumbnails)
}

// Activate brings the window identified by id to the foreground.
func (s *WindowService) Activate(id string) error {
	return s.provider.Activate(id)
}

// StartAsyncRefresh kicks off a background refresh pass. Results are
// emitted as events; a superseded pass emits nothing.
func (s *WindowService) StartAsyncRefresh() {
	s.coordinator.Refresh()
}

// ClearCache invalidates provider-internal cached state.
func (s *WindowService) ClearCache() {
	s.provider.ClearCache()
}

// ScreenRecordingPermitted reports whether the platform allows reading
// window titles and contents.
func (s *WindowService) ScreenRecordingPermitted() bool {
	return window.ScreenRecordingPermitted(s.provider)
}

// WarmUp primes the provider's enumeration path in the background so
// the first hotkey invocation is not paying first-call latency.
func (s *WindowService) WarmUp() {
	go func() {
		windows := s.provider.List(false)
		logger.WithComponent("service").Debug().
			Int("windows", len(windows)).
			Msg("window list warmed up")
	}()
}
