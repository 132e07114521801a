package convolve

import (
	"fmt"
	"sync"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

// minRowsPerBand keeps tiny images on the calling goroutine.
const minRowsPerBand = 16

// Engine runs convolutions. The zero value is a serial engine.
type Engine struct {
	// Workers is the number of goroutines rows are split across.
	// Values <= 1 run on the calling goroutine.
	Workers int
}

// Accumulate writes the raw weighted sums of src under k into dst.
func (e Engine) Accumulate(src *pixbuf.Buffer, k Kernel, dst *Field) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := checkKernel(k); err != nil {
		return err
	}
	if dst == nil || !dst.sameShape(src) {
		return fmt.Errorf("%w: field does not match %dx%d source",
			pixbuf.ErrInvalidShape, src.Width, src.Height)
	}

	e.rows(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				s := sumAt(src, k, x, y)
				off := (y*src.Width + x) * 4
				dst.Data[off] = s[0]
				dst.Data[off+1] = s[1]
				dst.Data[off+2] = s[2]
				dst.Data[off+3] = s[3]
			}
		}
	})
	return nil
}

// Convolve writes the byte-clamped convolution of src into dst. When
// opaque is set the convolved alpha is pushed to 255:
// a' = a + 1*(255-a); otherwise a' = a.
func (e Engine) Convolve(src *pixbuf.Buffer, k Kernel, opaque bool, dst *pixbuf.Buffer) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := checkKernel(k); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if !dst.SameShape(src) {
		return fmt.Errorf("%w: destination %dx%d, source %dx%d",
			pixbuf.ErrInvalidShape, dst.Width, dst.Height, src.Width, src.Height)
	}
	alphaFactor := 0.0
	if opaque {
		alphaFactor = 1
	}

	e.rows(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				s := sumAt(src, k, x, y)
				off := (y*src.Width + x) * 4
				dst.Pix[off] = ClampByte(s[0])
				dst.Pix[off+1] = ClampByte(s[1])
				dst.Pix[off+2] = ClampByte(s[2])
				dst.Pix[off+3] = ClampByte(s[3] + alphaFactor*(255-s[3]))
			}
		}
	})
	return nil
}

// sumAt accumulates the kernel around (x, y), skipping out-of-range terms.
func sumAt(src *pixbuf.Buffer, k Kernel, x, y int) [4]float64 {
	var r, g, b, a float64
	w := src.Width
	for ky := 0; ky < k.Side; ky++ {
		sy := y + ky - k.Half
		if sy < 0 || sy >= src.Height {
			continue
		}
		row := ky * k.Side
		for kx := 0; kx < k.Side; kx++ {
			sx := x + kx - k.Half
			if sx < 0 || sx >= w {
				continue
			}
			wt := k.Weights[row+kx]
			off := (sy*w + sx) * 4
			r += float64(src.Pix[off]) * wt
			g += float64(src.Pix[off+1]) * wt
			b += float64(src.Pix[off+2]) * wt
			a += float64(src.Pix[off+3]) * wt
		}
	}
	return [4]float64{r, g, b, a}
}

// rows calls fn over [0,height) in contiguous bands, concurrently when
// the engine has more than one worker. It returns after every band ran.
func (e Engine) rows(height int, fn func(y0, y1 int)) {
	workers := e.Workers
	if workers > height/minRowsPerBand {
		workers = height / minRowsPerBand
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	band := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

func checkKernel(k Kernel) error {
	if k.Side <= 0 || len(k.Weights) != k.Side*k.Side || k.Half != k.Side/2 {
		return fmt.Errorf("%w: side %d with %d weights", ErrMalformedKernel, k.Side, len(k.Weights))
	}
	return nil
}

// ClampByte bounds v to [0,255] and truncates toward zero, the way a
// float stored into a byte channel behaves.
func ClampByte(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
