// Package canvas samples arbitrary images into the fixed-size RGBA
// buffer the filters run on.
//
// The default area sampler averages every source pixel covered by a
// canvas cell:
//   - integer accumulation, one rounding per cell
//   - fast paths for NRGBA, RGBA (un-premultiplied), YCbCr and Gray
//   - LUT-based YCbCr→RGB, no per-pixel floating point
//
// The interpolating methods delegate to disintegration/imaging.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when the source or the canvas has no pixels.
var ErrEmptyImage = errors.New("canvas: empty image")

// Method selects how source pixels are mapped onto canvas cells.
type Method int

const (
	Area Method = iota
	Nearest
	Box
	Linear
	CatmullRom
	Lanczos
)

var methodNames = [...]string{
	Area:       "area",
	Nearest:    "nearest",
	Box:        "box",
	Linear:     "linear",
	CatmullRom: "catmullrom",
	Lanczos:    "lanczos",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a method name to a Method. An empty name selects Area.
func ParseMethod(name string) (Method, error) {
	if name == "" {
		return Area, nil
	}
	n := strings.ToLower(name)
	for i, mn := range methodNames {
		if mn == n {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown resample method %q", name)
}

func (m Method) imagingFilter() imaging.ResampleFilter {
	switch m {
	case Nearest:
		return imaging.NearestNeighbor
	case Box:
		return imaging.Box
	case Linear:
		return imaging.Linear
	case CatmullRom:
		return imaging.CatmullRom
	default:
		return imaging.Lanczos
	}
}

// Sample draws img onto a width x height canvas, stretching it to fill
// the canvas the way a 2D context drawImage does.
func Sample(img image.Image, width, height int, m Method) (*pixbuf.Buffer, error) {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: source %dx%d, canvas %dx%d", ErrEmptyImage, srcW, srcH, width, height)
	}

	dst := pixbuf.New(width, height)
	if m != Area {
		resized := imaging.Resize(img, width, height, m.imagingFilter())
		for y := 0; y < height; y++ {
			copy(dst.Pix[y*width*4:(y+1)*width*4], resized.Pix[y*resized.Stride:])
		}
		return dst, nil
	}

	switch src := img.(type) {
	case *image.NRGBA:
		sampleNRGBA(src, bounds, dst)
	case *image.RGBA:
		sampleRGBA(src, bounds, dst)
	case *image.YCbCr:
		sampleYCbCr(src, bounds, dst)
	case *image.Gray:
		sampleGray(src, bounds, dst)
	default:
		sampleGeneric(img, bounds, dst)
	}
	return dst, nil
}

// Fit returns the largest canvas no bigger than maxW x maxH that keeps
// the source aspect ratio, with cell height scaled by cellAspect (a
// terminal glyph is about twice as tall as it is wide, so 0.5 halves the
// row count). Each side is at least 1.
func Fit(srcW, srcH, maxW, maxH int, cellAspect float64) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if cellAspect <= 0 {
		cellAspect = 1
	}
	scale := math.Min(float64(maxW)/float64(srcW), float64(maxH)/(float64(srcH)*cellAspect))
	w := max(1, int(math.Round(float64(srcW)*scale)))
	h := max(1, int(math.Round(float64(srcH)*cellAspect*scale)))
	return min(w, maxW), min(h, maxH)
}

// span returns the source range [s0,s1) covered by canvas cell d.
// Upscaling repeats source pixels.
func span(d, dstSize, srcSize int) (int, int) {
	s0 := d * srcSize / dstSize
	s1 := (d + 1) * srcSize / dstSize
	if s1 <= s0 {
		s1 = s0 + 1
	}
	if s1 > srcSize {
		s1 = srcSize
	}
	return s0, s1
}

func avg(sum, n uint32) uint8 {
	return uint8((sum + n/2) / n)
}
