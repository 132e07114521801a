package encoder

import (
	"bytes"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/AnyUserName/glyphcam/internal/raster"
)

// GlyphEncoder renders the canvas through the rasterizer.
type GlyphEncoder struct {
	Mode raster.Mode
}

func (e *GlyphEncoder) Format() string {
	switch e.Mode {
	case raster.HTML:
		return "html"
	case raster.ANSI:
		return "ansi"
	default:
		return "txt"
	}
}

func (e *GlyphEncoder) Extension() string { return e.Format() }

func (e *GlyphEncoder) Encode(buf *pixbuf.Buffer, opts Options) ([]byte, error) {
	contrast := opts.Contrast
	s, err := raster.Render(buf, raster.Options{
		Contrast: &contrast,
		Ramp:     opts.Ramp,
		Mode:     e.Mode,
	})
	if err != nil {
		return nil, err
	}
	if e.Mode != raster.HTML {
		return []byte(s), nil
	}

	// Standalone page: the spans go inside a <pre> so rows keep their breaks.
	var b bytes.Buffer
	b.Grow(len(s) + len(htmlHead) + len(htmlTail))
	b.WriteString(htmlHead)
	b.WriteString(s)
	b.WriteString(htmlTail)
	return b.Bytes(), nil
}

const htmlHead = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>glyphcam</title></head>
<body style="background:#000"><pre style="font:8px/8px monospace">
`

const htmlTail = "</pre></body></html>\n"
