// Package pixbuf holds the fixed-size RGBA byte buffer every filter and
// the rasterizer operate on.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidShape is returned when the pixel slice length does not match
// width*height*4.
var ErrInvalidShape = errors.New("pixbuf: invalid buffer shape")

// Color is one RGBA pixel.
type Color struct {
	R, G, B, A uint8
}

// Buffer is a row-major RGBA buffer, four interleaved bytes per pixel.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (transparent black) buffer.
func New(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("pixbuf: negative dimensions %dx%d", width, height))
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// FromPix wraps an existing RGBA slice without copying.
func FromPix(width, height int, pix []byte) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Pix: pix}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the len(Pix) == Width*Height*4 invariant.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidShape)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidShape, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d",
			ErrInvalidShape, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// Offset returns the byte offset of pixel (x, y). It panics when the
// coordinate lies outside the buffer: every engine loop is bounded by
// Width/Height, so an out-of-range access is a bug in the caller.
func (b *Buffer) Offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic(fmt.Sprintf("pixbuf: (%d,%d) out of range %dx%d", x, y, b.Width, b.Height))
	}
	return (y*b.Width + x) * 4
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) Color {
	off := b.Offset(x, y)
	p := b.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set writes the pixel at (x, y).
func (b *Buffer) Set(x, y int, c Color) {
	off := b.Offset(x, y)
	p := b.Pix[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	for off := 0; off < len(b.Pix); off += 4 {
		b.Pix[off] = c.R
		b.Pix[off+1] = c.G
		b.Pix[off+2] = c.B
		b.Pix[off+3] = c.A
	}
}

// SameShape reports whether o has the same dimensions as b.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// CopyFrom overwrites b with the pixels of src. Both must have the same
// dimensions.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !b.SameShape(src) {
		return fmt.Errorf("%w: copy %dx%d into %dx%d",
			ErrInvalidShape, src.Width, src.Height, b.Width, b.Height)
	}
	copy(b.Pix, src.Pix)
	return nil
}

// NRGBA exposes the buffer as an image.NRGBA sharing the same pixels.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
