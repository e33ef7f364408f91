// Package thumbnail turns captured window images into the encoded form
// carried by window listings: capped-width JPEG wrapped in a data URI.
package thumbnail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

const (
	// MaxWidth caps thumbnail width; height preserves aspect ratio.
	MaxWidth = 500

	// Quality is the fixed JPEG quality setting.
	Quality = 80

	// uriPrefix makes the payload a standards-compliant data URI.
	uriPrefix = "data:image/jpeg;base64,"
)

// TargetSize returns the thumbnail dimensions for a source image:
// width capped at MaxWidth with height rounded to preserve aspect
// ratio, or the native size when it already fits.
func TargetSize(width, height int) (int, int) {
	if width <= MaxWidth {
		return width, height
	}
	ratio := float64(MaxWidth) / float64(width)
	return MaxWidth, int(math.Round(float64(height) * ratio))
}

// Encode scales img down to the target size with Catmull-Rom
// interpolation, drops alpha, and returns the JPEG as a base64 data
// URI. A nil or zero-sized image is an error; callers map it to "no
// thumbnail" for the affected window only.
func Encode(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil capture image")
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", fmt.Errorf("zero-sized capture image (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	width, height := TargetSize(bounds.Dx(), bounds.Dy())

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	// Force opaque pixels: captures arrive with (premultiplied) alpha
	// and JPEG is 3-channel.
	for i := 3; i < len(scaled.Pix); i += 4 {
		scaled.Pix[i] = 0xff
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return uriPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
