// Package window defines the window provider abstraction behind the
// switcher overlay: enumeration and filtering of on-screen windows, a
// resolvable identity cache, and multi-strategy activation.
package window

import (
	"strconv"
	"strings"
)

// NormalLayer is the stacking layer of regular application windows.
// Menu bars, docks and system overlays report other layers.
const NormalLayer = 0

// controlCenterOwner is the system surface whose windows are never
// user-switchable targets.
const controlCenterOwner = "Control Center"

// fallbackAppName is used when the OS reports no owner name at all.
const fallbackAppName = "App"

// Info describes one on-screen window as exposed to consumers.
// Values are constructed fresh per List call and never mutated.
type Info struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	AppName         string `json:"appName"`
	IsTitleFallback bool   `json:"isTitleFallback"`
	Thumbnail       string `json:"thumbnail,omitempty"`
}

// Entry is the provider-internal superset of Info used to resolve
// activation without re-enumerating. OwnerPID is 0 when unknown.
type Entry struct {
	ID              string
	Title           string
	AppName         string
	IsTitleFallback bool
	OwnerPID        int64
}

// Info returns the externally visible view of the entry.
func (e Entry) Info() Info {
	return Info{
		ID:              e.ID,
		Title:           e.Title,
		AppName:         e.AppName,
		IsTitleFallback: e.IsTitleFallback,
	}
}

// RawRecord is a single window record as reported by the OS window
// registry, before any filtering.
type RawRecord struct {
	Number    int64  // native window identifier
	Title     string // may be blank without screen-content permission
	OwnerName string // owning application display name
	OwnerPID  int64  // 0 when the registry reports no owner process
	Layer     int    // stacking classification
}

// FilterStats counts records dropped by each filter, for logging.
type FilterStats struct {
	Self           int
	Layers         int
	ControlCenter  int
	FallbackTitles int
}

// Filter turns raw registry records into switchable entries. Records
// owned by selfPID (the overlay itself), records outside the normal
// application layer, and Control Center surfaces are dropped, in that
// order. Title derivation: a non-blank native title is used as-is;
// otherwise the owning application's name stands in and the entry is
// flagged as a fallback so activation skips the per-window raise.
func Filter(records []RawRecord, selfPID int64) ([]Entry, FilterStats) {
	var stats FilterStats
	entries := make([]Entry, 0, len(records))

	for _, rec := range records {
		if rec.OwnerPID != 0 && rec.OwnerPID == selfPID {
			stats.Self++
			continue
		}
		if rec.Layer != NormalLayer {
			stats.Layers++
			continue
		}
		if rec.OwnerName == controlCenterOwner {
			stats.ControlCenter++
			continue
		}

		appName := rec.OwnerName
		if strings.TrimSpace(appName) == "" {
			appName = fallbackAppName
		}

		title := rec.Title
		isFallback := false
		if strings.TrimSpace(title) == "" {
			title = appName
			isFallback = true
			stats.FallbackTitles++
		}

		entries = append(entries, Entry{
			ID:              strconv.FormatInt(rec.Number, 10),
			Title:           title,
			AppName:         appName,
			IsTitleFallback: isFallback,
			OwnerPID:        rec.OwnerPID,
		})
	}

	return entries, stats
}

// Infos maps entries to their external form, without thumbnails.
func Infos(entries []Entry) []Info {
	infos := make([]Info, len(entries))
	for i, e := range entries {
		infos[i] = e.Info()
	}
	return infos
}
