//go:build darwin && cgo

// Package darwin implements the native window backend over Core
// Graphics, AppKit and the Accessibility API. All unsafe framework
// calls are confined to this package; the rest of the system only sees
// window.Backend result types.
package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreGraphics -framework CoreFoundation -framework Foundation
#include <stdlib.h>
#include <string.h>
#include <CoreFoundation/CoreFoundation.h>
#include <CoreGraphics/CoreGraphics.h>

typedef struct {
	int64_t number;
	char   *title;
	char   *owner;
	int64_t pid;
	int     layer;
} RiftholdWindow;

static char *rifthold_copy_cfstring(CFStringRef str) {
	if (str == NULL) {
		return NULL;
	}
	CFIndex length = CFStringGetLength(str);
	CFIndex max = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL || !CFStringGetCString(str, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

static int64_t rifthold_number_for_key(CFDictionaryRef dict, CFStringRef key) {
	CFNumberRef num = CFDictionaryGetValue(dict, key);
	int64_t value = 0;
	if (num != NULL) {
		CFNumberGetValue(num, kCFNumberSInt64Type, &value);
	}
	return value;
}

// rifthold_list_windows snapshots the on-screen window registry,
// excluding desktop elements. Caller frees with rifthold_free_windows.
static int rifthold_list_windows(RiftholdWindow **out, int *count) {
	CFArrayRef list = CGWindowListCopyWindowInfo(
		kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
		kCGNullWindowID);
	if (list == NULL) {
		return -1;
	}

	CFIndex n = CFArrayGetCount(list);
	RiftholdWindow *wins = calloc(n > 0 ? n : 1, sizeof(RiftholdWindow));
	if (wins == NULL) {
		CFRelease(list);
		return -1;
	}

	for (CFIndex i = 0; i < n; i++) {
		CFDictionaryRef dict = CFArrayGetValueAtIndex(list, i);
		wins[i].number = rifthold_number_for_key(dict, kCGWindowNumber);
		wins[i].pid    = rifthold_number_for_key(dict, kCGWindowOwnerPID);
		wins[i].layer  = (int)rifthold_number_for_key(dict, kCGWindowLayer);
		wins[i].owner  = rifthold_copy_cfstring(CFDictionaryGetValue(dict, kCGWindowOwnerName));
		wins[i].title  = rifthold_copy_cfstring(CFDictionaryGetValue(dict, kCGWindowName));
	}

	CFRelease(list);
	*out = wins;
	*count = (int)n;
	return 0;
}

static void rifthold_free_windows(RiftholdWindow *wins, int count) {
	if (wins == NULL) {
		return;
	}
	for (int i = 0; i < count; i++) {
		free(wins[i].title);
		free(wins[i].owner);
	}
	free(wins);
}
*/
import "C"
import (
	"fmt"
	"os"
	"unsafe"

	"github.com/bryanchriswhite/rifthold/internal/window"
)

func init() {
	window.NewNativeProviderFunc = func() (window.Provider, error) {
		return window.NewNativeProvider(NewBackend(), int64(os.Getpid())), nil
	}
}

// Backend implements window.Backend over the macOS frameworks.
type Backend struct{}

// NewBackend returns the Core Graphics backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Enumerate returns raw records for all on-screen windows, desktop
// elements excluded.
func (b *Backend) Enumerate() ([]window.RawRecord, error) {
	var cWins *C.RiftholdWindow
	var cCount C.int

	if C.rifthold_list_windows(&cWins, &cCount) != 0 {
		return nil, fmt.Errorf("failed to query window registry")
	}
	defer C.rifthold_free_windows(cWins, cCount)

	count := int(cCount)
	if count == 0 {
		return []window.RawRecord{}, nil
	}

	cSlice := unsafe.Slice(cWins, count)
	records := make([]window.RawRecord, 0, count)
	for i := 0; i < count; i++ {
		cw := cSlice[i]
		rec := window.RawRecord{
			Number:   int64(cw.number),
			OwnerPID: int64(cw.pid),
			Layer:    int(cw.layer),
		}
		if cw.owner != nil {
			rec.OwnerName = C.GoString(cw.owner)
		}
		if cw.title != nil {
			rec.Title = C.GoString(cw.title)
		}
		records = append(records, rec)
	}
	return records, nil
}
