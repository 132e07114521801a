package filter

import (
	"fmt"
	"math"

	"github.com/AnyUserName/glyphcam/internal/convolve"
	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

// Processor applies filters using its convolution engine.
// The zero value runs convolutions serially.
type Processor struct {
	Engine convolve.Engine
}

// Apply runs f over buf with a serial engine. See Processor.Apply.
func Apply(buf *pixbuf.Buffer, f Filter) (*pixbuf.Buffer, error) {
	return Processor{}.Apply(buf, f)
}

// Apply returns a new buffer holding f applied to buf. buf is not modified.
func (p Processor) Apply(buf *pixbuf.Buffer, f Filter) (*pixbuf.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := check(f); err != nil {
		return nil, err
	}
	out := pixbuf.New(buf.Width, buf.Height)
	if err := p.apply(buf, out, f); err != nil {
		return nil, err
	}
	return out, nil
}

// Field evaluates the unsigned convolution of buf. The returned field is
// owned by the caller.
func (p Processor) Field(buf *pixbuf.Buffer, f ConvoluteUnsigned) (*convolve.Field, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	k, err := f.kernel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KindConvoluteUnsigned, err)
	}
	out := convolve.NewField(buf.Width, buf.Height)
	if err := p.unsigned(buf, k, f.Opaque, out); err != nil {
		return nil, err
	}
	return out, nil
}

func check(f Filter) error {
	if f == nil {
		return fmt.Errorf("%w: nil filter", ErrUnknownFilter)
	}
	if f.Kind() == KindConvoluteUnsigned {
		return fmt.Errorf("%w: %s", ErrIntermediate, f.Kind())
	}
	if err := f.validate(); err != nil {
		return fmt.Errorf("%s: %w", f.Kind(), err)
	}
	return nil
}

// apply writes f(src) into dst. src and dst must be distinct buffers of
// the same shape and f must have passed check.
func (p Processor) apply(src, dst *pixbuf.Buffer, f Filter) error {
	switch f := f.(type) {
	case Grayscale:
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			avg := uint8((float64(r) + float64(g) + float64(b)) / 3)
			return avg, avg, avg
		})
	case Luminance:
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			l := convolve.ClampByte(BT709(r, g, b))
			return l, l, l
		})
	case Brightness:
		adj := f.Adjustment
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			return uint8(int(r) + adj), uint8(int(g) + adj), uint8(int(b) + adj)
		})
	case Threshold:
		level := float64(f.Level)
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			if BT709(r, g, b) >= level {
				return 255, 255, 255
			}
			return 0, 0, 0
		})
	case Negative:
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			return 255 - r, 255 - g, 255 - b
		})
	case Contrast:
		factor, err := ContrastFactor(f.Level)
		if err != nil {
			return err
		}
		mapPixels(src, dst, func(r, g, b uint8) (uint8, uint8, uint8) {
			return ContrastChannel(r, factor), ContrastChannel(g, factor), ContrastChannel(b, factor)
		})
	case Convolute:
		k, err := f.kernel()
		if err != nil {
			return err
		}
		return p.Engine.Convolve(src, k, f.Opaque, dst)
	case Sobel:
		return p.sobel(src, dst)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownFilter, f)
	}
	return nil
}

// mapPixels applies fn to the color channels and copies alpha unchanged.
func mapPixels(src, dst *pixbuf.Buffer, fn func(r, g, b uint8) (uint8, uint8, uint8)) {
	s, d := src.Pix, dst.Pix
	for off := 0; off+3 < len(s); off += 4 {
		d[off], d[off+1], d[off+2] = fn(s[off], s[off+1], s[off+2])
		d[off+3] = s[off+3]
	}
}

func (p Processor) unsigned(src *pixbuf.Buffer, k convolve.Kernel, opaque bool, dst *convolve.Field) error {
	if err := p.Engine.Accumulate(src, k, dst); err != nil {
		return err
	}
	if opaque {
		for i := 3; i < len(dst.Data); i += 4 {
			dst.Data[i] += 255 - dst.Data[i]
		}
	}
	return nil
}

var (
	sobelX = convolve.MustKernel(convolve.SobelHorizontal)
	sobelY = convolve.MustKernel(convolve.SobelVertical)
	sharp  = convolve.MustKernel(convolve.Sharpen)
)

// sobel sharpens src, takes both gradients of the red channel of the
// sharpened image and writes h, v and sqrt(h²+v²)/4 with opaque alpha.
func (p Processor) sobel(src, dst *pixbuf.Buffer) error {
	base := getScratch(src.Width, src.Height)
	defer putScratch(base)
	if err := p.Engine.Convolve(src, sharp, false, base); err != nil {
		return err
	}

	horizontal := convolve.GetField(src.Width, src.Height)
	defer convolve.PutField(horizontal)
	vertical := convolve.GetField(src.Width, src.Height)
	defer convolve.PutField(vertical)
	if err := p.unsigned(base, sobelX, false, horizontal); err != nil {
		return err
	}
	if err := p.unsigned(base, sobelY, false, vertical); err != nil {
		return err
	}

	for i := 0; i < len(dst.Pix); i += 4 {
		h := math.Abs(horizontal.Data[i])
		v := math.Abs(vertical.Data[i])
		dst.Pix[i] = convolve.ClampByte(h)
		dst.Pix[i+1] = convolve.ClampByte(v)
		dst.Pix[i+2] = convolve.ClampByte(math.Sqrt(h*h+v*v) / 4)
		dst.Pix[i+3] = 255
	}
	return nil
}
