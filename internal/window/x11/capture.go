//go:build linux

package x11

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
)

// CaptureImage grabs the window's current contents as RGBA. Obscured
// or unmapped windows may yield an error; callers treat that as "no
// thumbnail" for the affected window only.
func (b *Backend) CaptureImage(id string) (image.Image, error) {
	num, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid window id %q: %w", id, err)
	}
	win := xproto.Window(num)

	geom, err := xproto.GetGeometry(b.xu.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get window geometry: %w", err)
	}
	if geom.Width == 0 || geom.Height == 0 {
		return nil, fmt.Errorf("window %d has zero size", win)
	}

	reply, err := xproto.GetImage(
		b.xu.Conn(),
		xproto.ImageFormatZPixmap,
		xproto.Drawable(win),
		0, 0,
		geom.Width, geom.Height,
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get window image: %w", err)
	}

	return convertImageData(reply.Data, int(geom.Width), int(geom.Height)), nil
}

// convertImageData converts X11 ZPixmap data (BGRA) to RGBA.
func convertImageData(data []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			if i+3 < len(data) {
				img.Set(x, y, color.RGBA{
					R: data[i+2],
					G: data[i+1],
					B: data[i],
					A: 255,
				})
			}
		}
	}
	return img
}
