package pipeline

import (
	"fmt"
	"image"

	"github.com/AnyUserName/glyphcam/internal/canvas"
	"github.com/AnyUserName/glyphcam/internal/encoder"
	"github.com/AnyUserName/glyphcam/internal/filter"
	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/AnyUserName/glyphcam/internal/profile"
	"github.com/AnyUserName/glyphcam/internal/raster"
)

// Renderer turns decoded images into encoded glyph art for one profile.
// It is safe for concurrent use.
type Renderer struct {
	Profile profile.Profile
	Chain   filter.Chain
	Method  canvas.Method
	Options encoder.Options
	// Formats are the resolved output formats, in profile order.
	Formats []string

	registry *encoder.Registry
}

// NewRenderer validates prof and prepares its filter chain. workers is
// the number of goroutines each convolution is split across.
func NewRenderer(prof profile.Profile, workers int) (*Renderer, error) {
	chain, err := prof.Chain()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", prof.Name, err)
	}
	chain.Processor.Engine.Workers = workers

	method, err := canvas.ParseMethod(prof.Resample)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", prof.Name, err)
	}
	ramp, err := raster.ParseRamp(prof.Ramp)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", prof.Name, err)
	}
	if _, err := filter.ContrastFactor(prof.Contrast); err != nil {
		return nil, fmt.Errorf("profile %s: contrast: %w", prof.Name, err)
	}
	if prof.Width <= 0 || prof.Height <= 0 {
		return nil, fmt.Errorf("profile %s: invalid canvas %dx%d", prof.Name, prof.Width, prof.Height)
	}

	reg := encoder.NewRegistry()
	return &Renderer{
		Profile:  prof,
		Chain:    chain,
		Method:   method,
		Options:  encoder.Options{Contrast: prof.Contrast, Ramp: ramp},
		Formats:  reg.ResolveFormats(prof.Formats),
		registry: reg,
	}, nil
}

// Canvas samples img onto the profile's canvas and runs the filter chain.
func (r *Renderer) Canvas(img image.Image) (*pixbuf.Buffer, error) {
	b := img.Bounds()
	w, h := r.Profile.CanvasSize(b.Dx(), b.Dy())
	buf, err := canvas.Sample(img, w, h, r.Method)
	if err != nil {
		return nil, err
	}
	if err := r.Chain.Run(buf); err != nil {
		return nil, fmt.Errorf("filters: %w", err)
	}
	return buf, nil
}

// Encoder returns the encoder for format, or nil if unknown.
func (r *Renderer) Encoder(format string) encoder.Encoder {
	return r.registry.Get(format)
}

// Render runs Canvas and encodes the result as format.
func (r *Renderer) Render(img image.Image, format string) ([]byte, error) {
	enc := r.Encoder(format)
	if enc == nil {
		return nil, fmt.Errorf("unknown format %q (have %v)", format, r.registry.Available())
	}
	buf, err := r.Canvas(img)
	if err != nil {
		return nil, err
	}
	return enc.Encode(buf, r.Options)
}
