package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOpenImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, encodePNG(t, 5, 3, color.NRGBA{R: 9, A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := OpenImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := OpenImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file decoded")
	}
}

func TestDecodeStream(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(encodePNG(t, 2, 2, color.NRGBA{R: 1, A: 255}))
	stream.Write(encodePNG(t, 2, 2, color.NRGBA{R: 2, A: 255}))
	stream.Write(encodePNG(t, 2, 2, color.NRGBA{R: 3, A: 255}))

	var got []uint8
	err := decodeStream(context.Background(), &stream, func(f Frame) error {
		if f.Index != len(got) {
			t.Errorf("frame index %d, want %d", f.Index, len(got))
		}
		r, _, _, _ := f.Image.At(0, 0).RGBA()
		got = append(got, uint8(r>>8))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []uint8{1, 2, 3}) {
		t.Errorf("frames = %v", got)
	}
}

func TestDecodeStream_StopsOnCallbackError(t *testing.T) {
	var stream bytes.Buffer
	for i := 0; i < 3; i++ {
		stream.Write(encodePNG(t, 1, 1, color.NRGBA{A: 255}))
	}
	stop := errors.New("stop")
	calls := 0
	err := decodeStream(context.Background(), &stream, func(Frame) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestDecodeStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := decodeStream(ctx, bytes.NewReader(encodePNG(t, 1, 1, color.NRGBA{})), func(Frame) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestDecodeStream_Truncated(t *testing.T) {
	data := encodePNG(t, 4, 4, color.NRGBA{A: 255})
	err := decodeStream(context.Background(), bytes.NewReader(data[:len(data)/2]), func(Frame) error { return nil })
	if err == nil {
		t.Error("truncated frame decoded")
	}
}

func TestParseProbe(t *testing.T) {
	raw := `{"streams":[
		{"codec_type":"audio","avg_frame_rate":"0/0"},
		{"codec_type":"video","width":640,"height":360,"nb_frames":"250","avg_frame_rate":"25/1"}
	]}`
	info, err := parseProbe(raw)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 640 || info.Height != 360 || info.Frames != 250 || info.FrameRate != 25 {
		t.Errorf("info = %+v", info)
	}

	info, err = parseProbe(`{"streams":[{"codec_type":"video","avg_frame_rate":"30000/1001"}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if info.Frames != 0 || info.FrameRate < 29.9 || info.FrameRate > 30 {
		t.Errorf("info = %+v", info)
	}

	if _, err := parseProbe(`{"streams":[{"codec_type":"audio"}]}`); err == nil {
		t.Error("audio-only probe accepted")
	}
}
