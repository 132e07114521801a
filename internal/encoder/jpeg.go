package encoder

import (
	"bytes"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// JPEGEncoder writes the filtered canvas as a JPEG preview.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }

func (e *JPEGEncoder) Encode(buf *pixbuf.Buffer, opts Options) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 82
	}

	var out bytes.Buffer
	out.Grow(len(buf.Pix) / 8)

	err := imaging.Encode(&out, buf.NRGBA(), imaging.JPEG, imaging.JPEGQuality(quality))
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
