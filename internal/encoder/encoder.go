package encoder

import (
	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/AnyUserName/glyphcam/internal/raster"
)

// Options carries the per-run rendering parameters shared by all encoders.
type Options struct {
	Contrast int         // rasterizer contrast level
	Ramp     raster.Ramp // nil for the default ramp
	Quality  int         // lossy image quality 1-100, 0 for the default
}

// Encoder turns a filtered canvas into the bytes of one output format.
type Encoder interface {
	// Format returns the output format name (e.g. "txt", "html", "png").
	Format() string

	// Encode renders the canvas.
	Encode(buf *pixbuf.Buffer, opts Options) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
