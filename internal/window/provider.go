package window

import (
	"errors"
	"fmt"
	"runtime"
)

// Activation failure taxonomy. Activate is the only provider operation
// that fails hard; enumeration and capture degrade with logging instead.
var (
	// ErrNotFound means the id could not be resolved even after one
	// cache-refreshing re-enumeration.
	ErrNotFound = errors.New("window not found")

	// ErrActivation means the OS-level activation call failed.
	ErrActivation = errors.New("activation failed")

	// ErrNoThumbnail means a per-window capture produced no usable image.
	ErrNoThumbnail = errors.New("no thumbnail")
)

// Provider is the capability contract for a window backend. Exactly one
// implementation is selected at process start and injected everywhere
// else; callers never inspect the concrete type.
type Provider interface {
	// List returns the current on-screen windows in discovery order.
	// IDs are unique within one call. When captureThumbnails is set,
	// each entry's capture is attempted independently; a failed capture
	// yields an empty Thumbnail, never an error for the whole call.
	List(captureThumbnails bool) []Info

	// Activate brings the window identified by id to the foreground.
	// Returns an error wrapping ErrNotFound if the id is unknown even
	// after one cache refresh, or ErrActivation on OS-level failure.
	Activate(id string) error

	// Thumbnail captures and encodes a single window's thumbnail as a
	// data URI. Returns an error wrapping ErrNoThumbnail when the
	// window cannot be captured.
	Thumbnail(id string) (string, error)

	// ClearCache invalidates provider-internal cached state so the next
	// List performs a full fresh query. No-op for stateless providers.
	ClearCache()
}

// PermissionChecker is implemented by providers whose platform gates
// window titles and capture behind a screen-content permission.
type PermissionChecker interface {
	HasScreenRecordingPermission() bool
}

// ScreenRecordingPermitted reports the provider's capture permission,
// defaulting to true for platforms without the concept.
func ScreenRecordingPermitted(p Provider) bool {
	if pc, ok := p.(PermissionChecker); ok {
		return pc.HasScreenRecordingPermission()
	}
	return true
}

// NewNativeProviderFunc is set by platform-specific packages via init().
// See internal/window/x11 and internal/window/darwin.
var NewNativeProviderFunc func() (Provider, error)

// NewProvider returns the native provider for the current platform, or
// the deterministic mock when no native backend is registered.
func NewProvider() (Provider, error) {
	if NewNativeProviderFunc == nil {
		return NewMockProvider(), nil
	}
	p, err := NewNativeProviderFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s window provider: %w", runtime.GOOS, err)
	}
	return p, nil
}
