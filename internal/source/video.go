package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Video streams frames of a video file (or any ffmpeg input) as PNGs
// over a pipe.
type Video struct {
	Path string
	// FPS is the output frame rate; <= 0 keeps ffmpeg's default of 1.
	FPS int
	// Width and Height scale frames inside ffmpeg; 0 keeps the source size.
	Width, Height int
	// Stderr receives ffmpeg's log output. Nil discards it.
	Stderr io.Writer
}

// VideoInfo is the subset of ffprobe output the renderer uses.
type VideoInfo struct {
	Width     int
	Height    int
	FrameRate float64
	Frames    int
}

// Frames decodes frames in order and calls fn for each one. It returns
// when the stream ends, ctx is cancelled or fn returns an error; the
// ffmpeg process is stopped in every case.
func (v Video) Frames(ctx context.Context, fn func(Frame) error) error {
	fps := v.FPS
	if fps <= 0 {
		fps = 1
	}
	scale := "scale=iw:ih"
	if v.Width > 0 && v.Height > 0 {
		scale = fmt.Sprintf("scale=%d:%d", v.Width, v.Height)
	} else if v.Width > 0 {
		scale = fmt.Sprintf("scale=%d:-1", v.Width)
	}
	stderr := v.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, w := io.Pipe()
	cmd := ffmpeg.Input(v.Path).
		Output("pipe:1", ffmpeg.KwArgs{
			"format": "image2pipe",
			"vcodec": "png",
			"r":      strconv.Itoa(fps),
			"vf":     scale,
		}).
		WithOutput(w).
		WithErrorOutput(stderr)
	cmd.Context = ctx

	runErr := make(chan error, 1)
	go func() {
		err := cmd.Run()
		w.CloseWithError(err)
		runErr <- err
	}()

	decErr := decodeStream(ctx, r, fn)
	// Unblock ffmpeg if we stopped reading early.
	r.CloseWithError(io.ErrClosedPipe)
	cancel()
	err := <-runErr

	if decErr != nil {
		return decErr
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("ffmpeg %s: %w", v.Path, err)
	}
	return nil
}

// decodeStream reads concatenated PNG images from r.
func decodeStream(ctx context.Context, r io.Reader, fn func(Frame) error) error {
	br := bufio.NewReader(r)
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := br.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read frame %d: %w", index, err)
		}
		img, err := png.Decode(br)
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", index, err)
		}
		if err := fn(Frame{Index: index, Image: img}); err != nil {
			return err
		}
	}
}

// ProbeVideo asks ffprobe for the first video stream's geometry and rate.
func ProbeVideo(path string) (VideoInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(out)
}

type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		NbFrames     string `json:"nb_frames"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

func parseProbe(raw string) (VideoInfo, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	for _, s := range p.Streams {
		if s.CodecType != "video" {
			continue
		}
		info := VideoInfo{Width: s.Width, Height: s.Height, FrameRate: parseRate(s.AvgFrameRate)}
		// nb_frames is a string and missing for some containers.
		if n, err := strconv.Atoi(s.NbFrames); err == nil {
			info.Frames = n
		}
		return info, nil
	}
	return VideoInfo{}, errors.New("no video stream found")
}

func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
