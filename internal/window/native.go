package window

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/thumbnail"
)

// Backend is the narrow surface a platform adapter implements. All
// unsafe native calls are confined behind it; the NativeProvider owns
// filtering, the snapshot cache, thumbnail post-processing and the
// activation strategy.
type Backend interface {
	// Enumerate queries the OS window registry for raw on-screen
	// window records, unfiltered.
	Enumerate() ([]RawRecord, error)

	// CaptureImage grabs a screenshot restricted to the window's
	// bounds. A failed or zero-sized capture returns an error.
	CaptureImage(id string) (image.Image, error)

	// ActivateProcess foregrounds the application owning pid.
	ActivateProcess(pid int64) error

	// ActivateApp foregrounds an application by display name.
	ActivateApp(name string) error

	// RaiseWindow raises the window of pid whose title contains title.
	RaiseWindow(pid int64, title string) error
}

// BackendPermissions is implemented by backends whose platform gates
// capture behind a screen-content permission.
type BackendPermissions interface {
	HasScreenRecordingPermission() bool
}

// NativeProvider implements Provider over a platform Backend.
type NativeProvider struct {
	backend  Backend
	snapshot *Snapshot
	resolver *Resolver
	selfPID  int64
}

// NewNativeProvider wires a provider around backend. selfPID is the
// overlay's own process id, whose windows are filtered out.
func NewNativeProvider(backend Backend, selfPID int64) *NativeProvider {
	p := &NativeProvider{
		backend:  backend,
		snapshot: NewSnapshot(),
		selfPID:  selfPID,
	}
	p.resolver = &Resolver{
		Lookup:          p.snapshot.Find,
		Refresh:         func() { p.enumerate() },
		ActivateProcess: backend.ActivateProcess,
		ActivateApp:     backend.ActivateApp,
		RaiseWindow:     backend.RaiseWindow,
	}
	return p
}

// enumerate performs one registry query, filters the records, and
// replaces the snapshot wholesale. Enumeration failure degrades to an
// empty result with logging; List never fails outright.
func (p *NativeProvider) enumerate() []Entry {
	log := logger.WithComponent("native")
	startedAt := time.Now()

	records, err := p.backend.Enumerate()
	if err != nil {
		log.Error().
			Err(err).
			Int64("elapsed_ms", time.Since(startedAt).Milliseconds()).
			Msg("window enumeration failed")
		p.snapshot.Replace(nil)
		return nil
	}

	entries, stats := Filter(records, p.selfPID)
	p.snapshot.Replace(entries)

	log.Debug().
		Int("total", len(entries)).
		Int("fallback_titles", stats.FallbackTitles).
		Int("skipped_layers", stats.Layers).
		Int("skipped_self", stats.Self).
		Int("skipped_control_center", stats.ControlCenter).
		Int64("elapsed_ms", time.Since(startedAt).Milliseconds()).
		Msg("window enumeration")

	return entries
}

// List implements Provider.
func (p *NativeProvider) List(captureThumbnails bool) []Info {
	entries := p.enumerate()
	infos := Infos(entries)

	if !captureThumbnails {
		return infos
	}

	// Independent unit of work per window; completion order is
	// unspecified, results are slot-correlated by index.
	var wg sync.WaitGroup
	for i := range infos {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			thumb, err := p.Thumbnail(infos[i].ID)
			if err != nil {
				return
			}
			infos[i].Thumbnail = thumb
		}(i)
	}
	wg.Wait()

	return infos
}

// Thumbnail implements Provider.
func (p *NativeProvider) Thumbnail(id string) (string, error) {
	img, err := p.backend.CaptureImage(id)
	if err != nil {
		return "", fmt.Errorf("capture window %s: %w", id, ErrNoThumbnail)
	}
	encoded, err := thumbnail.Encode(img)
	if err != nil {
		return "", fmt.Errorf("encode window %s: %w", id, ErrNoThumbnail)
	}
	return encoded, nil
}

// Activate implements Provider.
func (p *NativeProvider) Activate(id string) error {
	return p.resolver.Activate(id)
}

// ClearCache implements Provider.
func (p *NativeProvider) ClearCache() {
	p.snapshot.Clear()
}

// HasScreenRecordingPermission implements PermissionChecker.
func (p *NativeProvider) HasScreenRecordingPermission() bool {
	if bp, ok := p.backend.(BackendPermissions); ok {
		return bp.HasScreenRecordingPermission()
	}
	return true
}
