//go:build ignore

// gen_fixtures creates small test images for the batch smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "shapes"), 0o755); err != nil {
		panic(err)
	}

	// Horizontal ramp: every glyph of the default ramp appears once per row.
	writeJPEG(filepath.Join(dir, "ramp.jpg"), ramp(300, 200))

	// Hard edges for sobel and threshold.
	writePNG(filepath.Join(dir, "shapes", "disc.png"), disc(160, 160))
	writePNG(filepath.Join(dir, "shapes", "stripes.png"), stripes(160, 90, 10))

	// Transparent background: convolution output alpha is forced opaque.
	writePNG(filepath.Join(dir, "logo.png"), alphaDisc(100, 100))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 fixtures in %s\n", dir)
}

func ramp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func disc(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy, r := float64(w)/2, float64(h)/2, float64(min(w, h))/3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 240, G: 240, B: 240, A: 255}
			if math.Hypot(float64(x)-cx, float64(y)-cy) < r {
				c = color.NRGBA{R: 30, G: 60, B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func stripes(w, h, period int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			if (x/period)%2 == 0 {
				c = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaDisc(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / cx
			a := uint8(255 * math.Max(0, 1-d))
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: a})
		}
	}
	return img
}

func writePNG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		panic(err)
	}
}
