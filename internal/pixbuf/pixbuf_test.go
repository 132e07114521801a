package pixbuf

import (
	"errors"
	"testing"
)

func TestFromPix_Shape(t *testing.T) {
	tests := []struct {
		name    string
		w, h, n int
		wantErr bool
	}{
		{"exact", 3, 2, 24, false},
		{"empty", 0, 0, 0, false},
		{"short", 3, 2, 23, true},
		{"long", 1, 1, 8, true},
		{"negative", -1, 2, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromPix(tt.w, tt.h, make([]byte, tt.n))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidShape) {
					t.Fatalf("got %v, want ErrInvalidShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAtSet(t *testing.T) {
	b := New(4, 3)
	c := Color{R: 10, G: 20, B: 30, A: 40}
	b.Set(2, 1, c)

	if got := b.At(2, 1); got != c {
		t.Errorf("At(2,1) = %+v, want %+v", got, c)
	}
	off := (1*4 + 2) * 4
	if b.Pix[off] != 10 || b.Pix[off+3] != 40 {
		t.Errorf("raw bytes at %d = %v", off, b.Pix[off:off+4])
	}
	if got := b.At(0, 0); got != (Color{}) {
		t.Errorf("untouched pixel = %+v", got)
	}
}

func TestAt_OutOfRangePanics(t *testing.T) {
	b := New(2, 2)
	for _, pt := range [][2]int{{-1, 0}, {2, 0}, {0, 2}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d,%d) did not panic", pt[0], pt[1])
				}
			}()
			b.At(pt[0], pt[1])
		}()
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(2, 1)
	b.Fill(Color{1, 2, 3, 4})
	c := b.Clone()
	c.Set(0, 0, Color{9, 9, 9, 9})
	if b.At(0, 0) != (Color{1, 2, 3, 4}) {
		t.Error("clone shares pixels with source")
	}
}

func TestCopyFrom_ShapeMismatch(t *testing.T) {
	dst := New(2, 2)
	if err := dst.CopyFrom(New(2, 3)); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("got %v, want ErrInvalidShape", err)
	}
}

func TestNRGBASharesPixels(t *testing.T) {
	b := New(2, 2)
	img := b.NRGBA()
	b.Set(1, 1, Color{255, 0, 0, 255})
	if r, _, _, a := img.At(1, 1).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("NRGBA view does not reflect buffer: r=%d a=%d", r>>8, a>>8)
	}
}
