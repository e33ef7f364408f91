//go:build darwin && cgo

package darwin

/*
#include <stdlib.h>
#include <CoreGraphics/CoreGraphics.h>

// rifthold_capture_window renders one window into a malloc'd RGBA
// buffer at its native size. Returns NULL when the window cannot be
// captured (gone, fully obscured, or permission denied).
static unsigned char *rifthold_capture_window(uint32_t window_id, size_t *width, size_t *height) {
	CGImageRef image = CGWindowListCreateImage(
		CGRectNull,
		kCGWindowListOptionIncludingWindow,
		window_id,
		kCGWindowImageBoundsIgnoreFraming | kCGWindowImageDefault);
	if (image == NULL) {
		return NULL;
	}

	size_t w = CGImageGetWidth(image);
	size_t h = CGImageGetHeight(image);
	if (w == 0 || h == 0) {
		CGImageRelease(image);
		return NULL;
	}

	unsigned char *buf = malloc(w * h * 4);
	if (buf == NULL) {
		CGImageRelease(image);
		return NULL;
	}

	CGColorSpaceRef colorSpace = CGColorSpaceCreateDeviceRGB();
	CGContextRef ctx = CGBitmapContextCreate(
		buf, w, h, 8, w * 4, colorSpace,
		kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big);
	CGColorSpaceRelease(colorSpace);
	if (ctx == NULL) {
		free(buf);
		CGImageRelease(image);
		return NULL;
	}

	CGContextDrawImage(ctx, CGRectMake(0, 0, w, h), image);
	CGContextRelease(ctx);
	CGImageRelease(image);

	*width = w;
	*height = h;
	return buf;
}

static bool rifthold_preflight_screen_capture(void) {
	return CGPreflightScreenCaptureAccess();
}
*/
import "C"
import (
	"fmt"
	"image"
	"strconv"
	"unsafe"
)

// CaptureImage grabs a screenshot restricted to the window's bounds.
// Downscaling and encoding happen in the shared thumbnail pipeline.
func (b *Backend) CaptureImage(id string) (image.Image, error) {
	num, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid window id %q: %w", id, err)
	}

	var w, h C.size_t
	buf := C.rifthold_capture_window(C.uint32_t(num), &w, &h)
	if buf == nil {
		return nil, fmt.Errorf("failed to capture window %s", id)
	}
	defer C.free(unsafe.Pointer(buf))

	width, height := int(w), int(h)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, C.GoBytes(unsafe.Pointer(buf), C.int(width*height*4)))
	return img, nil
}

// HasScreenRecordingPermission reports whether window titles and
// contents are readable. Without it enumeration still works but every
// title falls back to the app name and captures fail.
func (b *Backend) HasScreenRecordingPermission() bool {
	return bool(C.rifthold_preflight_screen_capture())
}
