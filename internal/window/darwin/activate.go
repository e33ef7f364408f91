//go:build darwin && cgo

package darwin

/*
#include <stdlib.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>

// rifthold_activate_pid foregrounds the running application owning pid.
static int rifthold_activate_pid(pid_t pid) {
	NSRunningApplication *app =
		[NSRunningApplication runningApplicationWithProcessIdentifier:pid];
	if (app == nil) {
		return -1;
	}
	return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -2;
}

// rifthold_raise_window walks the AX window list of pid and raises the
// first window whose title contains title_substr.
static int rifthold_raise_window(pid_t pid, const char *title_substr) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (app == NULL) {
		return -1;
	}

	CFTypeRef windows = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, &windows);
	if (err != kAXErrorSuccess || windows == NULL) {
		CFRelease(app);
		return -2;
	}

	CFStringRef needle = CFStringCreateWithCString(
		kCFAllocatorDefault, title_substr, kCFStringEncodingUTF8);
	int rc = -3;

	CFIndex count = CFArrayGetCount(windows);
	for (CFIndex i = 0; i < count; i++) {
		AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
		CFTypeRef title = NULL;
		if (AXUIElementCopyAttributeValue(win, kAXTitleAttribute, &title) != kAXErrorSuccess ||
			title == NULL) {
			continue;
		}

		CFRange found = CFStringFind(title, needle, 0);
		CFRelease(title);
		if (found.location == kCFNotFound) {
			continue;
		}

		if (AXUIElementPerformAction(win, kAXRaiseAction) == kAXErrorSuccess) {
			rc = 0;
		}
		break;
	}

	CFRelease(needle);
	CFRelease(windows);
	CFRelease(app);
	return rc;
}
*/
import "C"
import (
	"fmt"
	"os/exec"
	"unsafe"

	"github.com/bryanchriswhite/rifthold/internal/logger"
)

// ActivateProcess foregrounds the application owning pid via
// NSRunningApplication.
func (b *Backend) ActivateProcess(pid int64) error {
	if rc := C.rifthold_activate_pid(C.pid_t(pid)); rc != 0 {
		return fmt.Errorf("failed to activate pid %d (rc=%d)", pid, int(rc))
	}
	return nil
}

// ActivateApp foregrounds an application by display name. Launch
// Services is preferred because it avoids per-app automation prompts;
// a System Events nudge covers apps `open` cannot resolve.
func (b *Backend) ActivateApp(name string) error {
	if name == "" {
		return fmt.Errorf("missing app name for activation")
	}

	openErr := exec.Command("open", "-a", name).Run()

	script := fmt.Sprintf(
		`tell application "System Events" to if exists process %q then set frontmost of process %q to true`,
		name, name)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		logger.WithComponent("darwin").Debug().
			Err(err).
			Str("app", name).
			Msg("System Events frontmost nudge failed")
	}

	if openErr != nil {
		return fmt.Errorf("open -a %q failed: %w", name, openErr)
	}
	return nil
}

// RaiseWindow raises the window of pid whose title contains title,
// via the Accessibility API.
func (b *Backend) RaiseWindow(pid int64, title string) error {
	cTitle := C.CString(title)
	defer C.free(unsafe.Pointer(cTitle))

	if rc := C.rifthold_raise_window(C.pid_t(pid), cTitle); rc != 0 {
		return fmt.Errorf("window of pid %d not found or could not be raised (rc=%d)", pid, int(rc))
	}
	return nil
}
