// Package source produces frames for the renderer: still images decoded
// from disk and video streams decoded by an external ffmpeg process.
package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Frame is one decoded picture of a source.
type Frame struct {
	Index int
	Image image.Image
}

// OpenImage decodes an image file, applying its EXIF orientation.
func OpenImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes an image from r, applying its EXIF orientation.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
