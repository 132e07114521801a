package raster

import (
	"errors"
	"strings"
	"testing"

	"github.com/AnyUserName/glyphcam/internal/filter"
	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

func solid(w, h int, c pixbuf.Color) *pixbuf.Buffer {
	b := pixbuf.New(w, h)
	b.Fill(c)
	return b
}

func intPtr(v int) *int { return &v }

func TestRender_WhiteIsSpace(t *testing.T) {
	out, err := Render(solid(4, 2, pixbuf.Color{R: 255, G: 255, B: 255, A: 255}), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := "    \n    \n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRender_BlackIsDarkestGlyph(t *testing.T) {
	out, err := Render(solid(3, 1, pixbuf.Color{R: 0, G: 0, B: 0, A: 255}), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := "@@@\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRender_GrayscaleBlackWhite(t *testing.T) {
	buf := pixbuf.New(2, 1)
	buf.Set(0, 0, pixbuf.Color{R: 0, G: 0, B: 0, A: 255})
	buf.Set(1, 0, pixbuf.Color{R: 255, G: 255, B: 255, A: 255})

	gray, err := filter.Apply(buf, filter.Grayscale{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(gray, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	ramp := Ramp(DefaultRamp)
	left := strings.IndexRune(DefaultRamp, []rune(lines[0])[0])
	right := strings.IndexRune(DefaultRamp, []rune(lines[0])[1])
	if left <= right {
		t.Errorf("dark pixel index %d not above bright pixel index %d (%q)", left, right, lines[0])
	}
	if left != len(ramp)-1 || right != 0 {
		t.Errorf("got %q, want %q", lines[0], "@ ")
	}
}

func TestRender_ContrastAffectsGlyphOnly(t *testing.T) {
	mid := solid(1, 1, pixbuf.Color{R: 100, G: 100, B: 100, A: 255})

	neutral, err := Render(mid, Options{Contrast: intPtr(0)})
	if err != nil {
		t.Fatal(err)
	}
	boosted, err := Render(mid, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// 100/255 -> index 14-round(5.49)=9 ('L'); contrast 128 pulls it to
	// 44/255 -> 14-round(2.4)=12 ('0').
	if neutral != "L\n" || boosted != "0\n" {
		t.Errorf("neutral=%q boosted=%q", neutral, boosted)
	}
}

func TestRender_HTMLUsesOriginalColor(t *testing.T) {
	buf := solid(2, 1, pixbuf.Color{R: 100, G: 128, B: 200, A: 50})
	out, err := Render(buf, Options{Mode: HTML})
	if err != nil {
		t.Fatal(err)
	}
	span := `<span style="color: rgba(100, 128, 200, 50)">`
	if strings.Count(out, span) != 2 {
		t.Errorf("expected two spans with the source color, got %q", out)
	}
	if !strings.HasSuffix(out, "</span>\n") {
		t.Errorf("row not terminated by newline: %q", out)
	}
}

func TestRender_HTMLEscapesGlyphs(t *testing.T) {
	ramp, err := ParseRamp("<&")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(solid(1, 1, pixbuf.Color{R: 255, G: 255, B: 255, A: 255}), Options{Mode: HTML, Ramp: ramp})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ">&lt;</span>") {
		t.Errorf("glyph not escaped: %q", out)
	}
}

func TestRender_ANSI(t *testing.T) {
	out, err := Render(solid(1, 2, pixbuf.Color{R: 1, G: 2, B: 3, A: 255}), Options{Mode: ANSI})
	if err != nil {
		t.Fatal(err)
	}
	want := "\x1b[38;2;1;2;3m@\x1b[0m\n"
	if out != want+want {
		t.Errorf("got %q", out)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(solid(1, 1, pixbuf.Color{}), Options{Contrast: intPtr(259)}); !errors.Is(err, filter.ErrOptionOutOfRange) {
		t.Errorf("contrast 259: got %v", err)
	}
	if _, err := Render(solid(1, 1, pixbuf.Color{}), Options{Ramp: Ramp("x")}); !errors.Is(err, ErrInvalidRamp) {
		t.Errorf("single glyph ramp: got %v", err)
	}
	bad := &pixbuf.Buffer{Width: 1, Height: 1}
	if _, err := Render(bad, Options{}); !errors.Is(err, pixbuf.ErrInvalidShape) {
		t.Errorf("bad buffer: got %v", err)
	}
}

func TestRampIndex(t *testing.T) {
	r := Ramp(DefaultRamp)
	tests := []struct {
		b    float64
		want int
	}{
		{1, 0},
		{0, 14},
		{0.5, 7},
		{0.25, 10}, // 3.5 steps rounds up to 4
	}
	for _, tt := range tests {
		if got := r.Index(tt.b); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.b, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"text": Text, "HTML": HTML, "ansi": ANSI, "txt": Text} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("svg"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(svg): got %v", err)
	}
}

func BenchmarkRender_300x200(b *testing.B) {
	buf := pixbuf.New(300, 200)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 7)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Render(buf, Options{})
	}
}
