package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/glyphcam/internal/hasher"
	"github.com/AnyUserName/glyphcam/internal/profile"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testProfile() profile.Profile {
	return profile.Profile{
		Name:     "test",
		Width:    4,
		Height:   2,
		Contrast: 0,
		Formats:  []string{"txt", "png", "bogus"},
		Resample: "area",
	}
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestScanImages(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 2, 2, white)
	writePNG(t, filepath.Join(in, "sub", "b.PNG"), 2, 2, white)
	writePNG(t, filepath.Join(in, ".hidden", "c.png"), 2, 2, white)
	writePNG(t, filepath.Join(in, "out", "d.png"), 2, 2, white)
	os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0o644)

	sources, err := ScanImages(in, filepath.Join(in, "out"))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key)
	}
	if got := strings.Join(keys, ","); got != "a,sub/b" {
		t.Fatalf("keys = %s", got)
	}
	if sources[1].Format != "png" || sources[1].RelPath != "sub/b.PNG" {
		t.Errorf("source = %+v", sources[1])
	}
	if sources[0].Size <= 0 {
		t.Errorf("size = %d", sources[0].Size)
	}
}

func TestPipeline_Run(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "white.png"), 8, 4, white)
	writePNG(t, filepath.Join(in, "nested", "black.png"), 8, 4, black)

	p, err := New(Config{
		InputDir:  in,
		OutputDir: out,
		Profile:   testProfile(),
		Workers:   2,
		Log:       io.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	if m.Stats.TotalAssets != 2 || m.Stats.TotalOutputs != 4 {
		t.Fatalf("stats = %+v", m.Stats)
	}
	if m.Stats.TotalCells != 16 {
		t.Errorf("total cells = %d", m.Stats.TotalCells)
	}
	if m.RenderInfo == nil || m.RenderInfo.Resample != "area" || m.RenderInfo.Filters != "" {
		t.Errorf("render info = %+v", m.RenderInfo)
	}

	want := map[string]string{
		"white":        "    \n    \n",
		"nested/black": "@@@@\n@@@@\n",
	}
	for key, text := range want {
		a, ok := m.Assets[key]
		if !ok {
			t.Fatalf("asset %s missing", key)
		}
		if a.CanvasWidth != 4 || a.CanvasHeight != 2 {
			t.Errorf("%s canvas = %dx%d", key, a.CanvasWidth, a.CanvasHeight)
		}
		if a.Source.Width != 8 || a.Source.Format != "png" {
			t.Errorf("%s source = %+v", key, a.Source)
		}
		if len(a.Outputs) != 2 || a.Outputs[0].Format != "txt" || a.Outputs[1].Format != "png" {
			t.Fatalf("%s outputs = %+v", key, a.Outputs)
		}

		txt := a.Outputs[0]
		if !strings.HasPrefix(txt.Path, key+".") || !strings.HasSuffix(txt.Path, ".txt") {
			t.Errorf("%s path = %s", key, txt.Path)
		}
		data, err := os.ReadFile(filepath.Join(out, txt.Path))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != text {
			t.Errorf("%s text = %q, want %q", key, data, text)
		}
		if txt.Hash != hasher.ContentHash(data, hasher.ManifestLen) {
			t.Errorf("%s hash mismatch", key)
		}
		if !strings.Contains(txt.Path, txt.Hash[:hasher.NameLen]) {
			t.Errorf("%s name %s does not carry hash %s", key, txt.Path, txt.Hash)
		}
	}
}

func TestPipeline_PartialFailure(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), 4, 4, white)
	os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0o644)

	var log strings.Builder
	p, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: testProfile(), Log: &log})
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Assets) != 1 {
		t.Errorf("assets = %d", len(m.Assets))
	}
	if !strings.Contains(log.String(), "1 of 2 images had errors") {
		t.Errorf("log = %q", log.String())
	}
}

func TestPipeline_Errors(t *testing.T) {
	in := t.TempDir()

	p, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: testProfile(), Log: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(); err == nil || !strings.Contains(err.Error(), "no images") {
		t.Errorf("empty dir: err = %v", err)
	}

	os.WriteFile(filepath.Join(in, "broken.png"), []byte("x"), 0o644)
	if _, err := p.Run(); err == nil || !strings.Contains(err.Error(), "all 1 images failed") {
		t.Errorf("all failed: err = %v", err)
	}
}

func TestNewRenderer_RejectsBadProfile(t *testing.T) {
	tests := []struct {
		name string
		edit func(*profile.Profile)
	}{
		{"filter", func(p *profile.Profile) { p.Filters = []string{"blur"} }},
		{"resample", func(p *profile.Profile) { p.Resample = "bicubic" }},
		{"ramp", func(p *profile.Profile) { p.Ramp = "@" }},
		{"contrast", func(p *profile.Profile) { p.Contrast = 259 }},
		{"canvas", func(p *profile.Profile) { p.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := testProfile()
			tt.edit(&prof)
			if _, err := NewRenderer(prof, 1); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	prof := testProfile()
	prof.Filters = []string{"negative"}
	r, err := NewRenderer(prof, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.Formats, ","); got != "txt,png" {
		t.Errorf("formats = %s", got)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	data, err := r.Render(img, "txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "@@@@\n@@@@\n" {
		t.Errorf("negated white = %q", data)
	}
	if _, err := r.Render(img, "gif"); err == nil {
		t.Error("expected unknown format error")
	}
}
