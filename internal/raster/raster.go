// Package raster maps a filtered buffer to a grid of glyphs.
package raster

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AnyUserName/glyphcam/internal/filter"
	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

var (
	// ErrInvalidRamp is returned for a ramp with fewer than two glyphs.
	ErrInvalidRamp = errors.New("raster: invalid glyph ramp")

	// ErrUnknownMode is returned by ParseMode for an unknown mode name.
	ErrUnknownMode = errors.New("raster: unknown output mode")
)

// DefaultRamp orders glyphs from the one drawn for the brightest pixels
// (a space) to the one drawn for the darkest.
const DefaultRamp = " .,:;i1tfLCG08@"

// Ramp is an ordered glyph set.
type Ramp []rune

// ParseRamp splits s into glyphs. An empty string selects DefaultRamp.
func ParseRamp(s string) (Ramp, error) {
	if s == "" {
		s = DefaultRamp
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidRamp)
	}
	r := Ramp(s)
	if len(r) < 2 {
		return nil, fmt.Errorf("%w: %q has %d glyphs, need at least 2", ErrInvalidRamp, s, len(r))
	}
	return r, nil
}

// Index returns the ramp position for a brightness in [0,1]:
// (N-1) - round(b*(N-1)), rounding halves up. Brightness 1 maps to 0.
func (r Ramp) Index(brightness float64) int {
	n := len(r) - 1
	return n - int(math.Floor(brightness*float64(n)+0.5))
}

// Mode selects the output markup.
type Mode int

const (
	// Text emits one glyph per pixel.
	Text Mode = iota
	// HTML wraps each glyph in a span colored with the source pixel.
	HTML
	// ANSI prefixes each glyph with a 24-bit foreground escape.
	ANSI
)

var modeNames = [...]string{Text: "text", HTML: "html", ANSI: "ansi"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode maps "text", "html" or "ansi" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "plain":
		return Text, nil
	case "html":
		return HTML, nil
	case "ansi":
		return ANSI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Options configures Render. Contrast is applied to the brightness
// estimate only; a nil Contrast selects filter.DefaultContrast and a nil
// Ramp selects DefaultRamp.
type Options struct {
	Contrast *int
	Ramp     Ramp
	Mode     Mode
}

// Render converts buf to one line of glyphs per row. Each row ends with
// a newline.
func Render(buf *pixbuf.Buffer, opts Options) (string, error) {
	if err := buf.Validate(); err != nil {
		return "", err
	}
	level := filter.DefaultContrast
	if opts.Contrast != nil {
		level = *opts.Contrast
	}
	factor, err := filter.ContrastFactor(level)
	if err != nil {
		return "", err
	}
	ramp := opts.Ramp
	if ramp == nil {
		ramp, _ = ParseRamp(DefaultRamp)
	}
	if len(ramp) < 2 {
		return "", fmt.Errorf("%w: %d glyphs", ErrInvalidRamp, len(ramp))
	}

	var sb strings.Builder
	sb.Grow(buf.Height * (buf.Width*bytesPerCell(opts.Mode) + 8))

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			glyph := ramp[ramp.Index(Brightness(c, factor))]
			switch opts.Mode {
			case HTML:
				writeSpan(&sb, c, glyph)
			case ANSI:
				writeANSI(&sb, c, glyph)
			default:
				sb.WriteRune(glyph)
			}
		}
		if opts.Mode == ANSI {
			sb.WriteString("\x1b[0m")
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Brightness applies the contrast remap to c and returns
// (0.299R + 0.587G + 0.114B) / 255.
func Brightness(c pixbuf.Color, factor float64) float64 {
	r := float64(filter.ContrastChannel(c.R, factor))
	g := float64(filter.ContrastChannel(c.G, factor))
	b := float64(filter.ContrastChannel(c.B, factor))
	return (0.299*r + 0.587*g + 0.114*b) / 255
}

func bytesPerCell(m Mode) int {
	switch m {
	case HTML:
		return 48
	case ANSI:
		return 20
	default:
		return 1
	}
}

// writeSpan emits <span style="color: rgba(r, g, b, a)">glyph</span> with
// the pixel's unmodified color.
func writeSpan(sb *strings.Builder, c pixbuf.Color, glyph rune) {
	sb.WriteString(`<span style="color: rgba(`)
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(c.A)))
	sb.WriteString(`)">`)
	sb.WriteString(html.EscapeString(string(glyph)))
	sb.WriteString("</span>")
}

func writeANSI(sb *strings.Builder, c pixbuf.Color, glyph rune) {
	sb.WriteString("\x1b[38;2;")
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteByte('m')
	sb.WriteRune(glyph)
}
