//go:build linux

// Package x11 implements the native window backend over X11/XWayland,
// using EWMH for discovery and activation.
package x11

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

func init() {
	window.NewNativeProviderFunc = func() (window.Provider, error) {
		backend, err := NewBackend()
		if err != nil {
			return nil, err
		}
		return window.NewNativeProvider(backend, int64(os.Getpid())), nil
	}
}

// Backend talks to the X server. It implements window.Backend.
type Backend struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// NewBackend connects to the display server.
func NewBackend() (*Backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &Backend{xu: xu, root: xu.RootWin()}, nil
}

// Close closes the X connection.
func (b *Backend) Close() error {
	b.xu.Conn().Close()
	return nil
}

// Enumerate returns raw records for all client windows, preferring the
// EWMH _NET_CLIENT_LIST and falling back to a QueryTree walk when the
// window manager does not maintain one.
func (b *Backend) Enumerate() ([]window.RawRecord, error) {
	log := logger.WithComponent("x11")

	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil || len(clients) == 0 {
		log.Debug().
			Err(err).
			Msg("_NET_CLIENT_LIST unavailable, falling back to QueryTree")
		tree, err := xproto.QueryTree(b.xu.Conn(), b.root).Reply()
		if err != nil {
			return nil, fmt.Errorf("failed to query window tree: %w", err)
		}
		clients = tree.Children
	}

	records := make([]window.RawRecord, 0, len(clients))
	for _, win := range clients {
		records = append(records, b.describe(win))
	}
	return records, nil
}

// describe collects one window's raw attributes. Missing properties
// degrade to zero values; the filter stage decides what survives.
func (b *Backend) describe(win xproto.Window) window.RawRecord {
	rec := window.RawRecord{Number: int64(win)}

	title, err := ewmh.WmNameGet(b.xu, win)
	if err != nil || title == "" {
		// Older clients only set the ICCCM property.
		title, _ = icccm.WmNameGet(b.xu, win)
	}
	rec.Title = title

	if class, err := icccm.WmClassGet(b.xu, win); err == nil {
		if class.Class != "" {
			rec.OwnerName = class.Class
		} else {
			rec.OwnerName = class.Instance
		}
	}

	if pid, err := ewmh.WmPidGet(b.xu, win); err == nil {
		rec.OwnerPID = int64(pid)
	}

	rec.Layer = b.layerFor(win)
	return rec
}

// layerFor maps the EWMH window type onto stacking layers: normal
// application windows are NormalLayer, docks, desktops, splashes and
// notifications are not switchable targets.
func (b *Backend) layerFor(win xproto.Window) int {
	types, err := ewmh.WmWindowTypeGet(b.xu, win)
	if err != nil || len(types) == 0 {
		// No type set: treat as a normal window.
		return window.NormalLayer
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return window.NormalLayer
		}
	}
	return 1
}

// ActivateProcess activates the first client window owned by pid.
func (b *Backend) ActivateProcess(pid int64) error {
	win, ok := b.findWindow(pid, "")
	if !ok {
		return fmt.Errorf("no client window for pid %d", pid)
	}
	if err := ewmh.ActiveWindowReq(b.xu, win); err != nil {
		return fmt.Errorf("failed to request activation for pid %d: %w", pid, err)
	}
	return nil
}

// ActivateApp activates the first client window whose WM_CLASS matches
// name (case-insensitive).
func (b *Backend) ActivateApp(name string) error {
	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	for _, win := range clients {
		class, err := icccm.WmClassGet(b.xu, win)
		if err != nil {
			continue
		}
		if strings.EqualFold(class.Class, name) || strings.EqualFold(class.Instance, name) {
			if err := ewmh.ActiveWindowReq(b.xu, win); err != nil {
				return fmt.Errorf("failed to activate %q: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no client window for app %q", name)
}

// RaiseWindow activates the window of pid whose title contains title.
func (b *Backend) RaiseWindow(pid int64, title string) error {
	win, ok := b.findWindow(pid, title)
	if !ok {
		return fmt.Errorf("no window of pid %d with title containing %q", pid, title)
	}
	if err := ewmh.ActiveWindowReq(b.xu, win); err != nil {
		return fmt.Errorf("failed to raise window %d: %w", win, err)
	}
	return nil
}

// findWindow scans the client list for a window owned by pid, and when
// titleSubstr is non-empty additionally requires a title match.
func (b *Backend) findWindow(pid int64, titleSubstr string) (xproto.Window, bool) {
	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil {
		return 0, false
	}
	for _, win := range clients {
		winPid, err := ewmh.WmPidGet(b.xu, win)
		if err != nil || int64(winPid) != pid {
			continue
		}
		if titleSubstr == "" {
			return win, true
		}
		title, err := ewmh.WmNameGet(b.xu, win)
		if err != nil || title == "" {
			title, _ = icccm.WmNameGet(b.xu, win)
		}
		if strings.Contains(title, titleSubstr) {
			return win, true
		}
	}
	return 0, false
}
