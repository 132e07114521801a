package convolve

import (
	"fmt"
	"sync"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

// Field holds raw, unclamped RGBA accumulations in the same layout as a
// pixbuf.Buffer. Values may be negative or exceed 255.
type Field struct {
	Width  int
	Height int
	Data   []float64
}

// NewField allocates a zeroed field.
func NewField(width, height int) *Field {
	return &Field{Width: width, Height: height, Data: make([]float64, width*height*4)}
}

// At returns the four channel sums of pixel (x, y).
func (f *Field) At(x, y int) [4]float64 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		panic(fmt.Sprintf("convolve: field (%d,%d) out of range %dx%d", x, y, f.Width, f.Height))
	}
	off := (y*f.Width + x) * 4
	return [4]float64{f.Data[off], f.Data[off+1], f.Data[off+2], f.Data[off+3]}
}

func (f *Field) sameShape(b *pixbuf.Buffer) bool {
	return f.Width == b.Width && f.Height == b.Height && len(f.Data) == len(b.Pix)
}

var fieldPool = sync.Pool{New: func() any { return new(Field) }}

// GetField returns a scratch field of the given size from a shared pool.
// Its contents are unspecified; Accumulate overwrites every element.
func GetField(width, height int) *Field {
	f := fieldPool.Get().(*Field)
	n := width * height * 4
	if cap(f.Data) < n {
		f.Data = make([]float64, n)
	}
	f.Data = f.Data[:n]
	f.Width, f.Height = width, height
	return f
}

// PutField hands a scratch field back to the pool. The caller must not
// use f afterwards.
func PutField(f *Field) {
	if f != nil {
		fieldPool.Put(f)
	}
}
