package encoder

import (
	"bytes"
	"image/png"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// PNGEncoder writes the filtered canvas itself, losslessly. Useful for
// checking what the rasterizer saw.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(buf *pixbuf.Buffer, _ Options) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Grow(len(buf.Pix) / 2)

	err := imaging.Encode(&out, buf.NRGBA(), imaging.PNG,
		imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
