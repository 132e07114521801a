package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/AnyUserName/glyphcam/internal/pipeline"
	"github.com/AnyUserName/glyphcam/internal/source"
	"github.com/spf13/cobra"
)

var (
	streamFlagSet renderFlags
	streamFPS     int
	streamFrames  int
	streamNoClear bool
)

// clearScreen homes the cursor and clears the terminal before a frame.
const clearScreen = "\x1b[H\x1b[2J"

var errFrameLimit = errors.New("frame limit reached")

var streamCmd = &cobra.Command{
	Use:   "stream <video>",
	Short: "Play a video (or any ffmpeg input) as glyph art",
	Long: `Decodes frames with ffmpeg, renders each one through the profile's
filter chain and redraws the terminal at the requested frame rate.
Anything ffmpeg can open works as input, including capture devices.

Only txt and ansi formats can be streamed. Stop with Ctrl-C.`,
	Example: `  glyphcam stream clip.mp4 -p terminal
  glyphcam stream clip.mp4 --fps 24 -f grayscale -f sobel --format txt`,
	Args: cobra.ExactArgs(1),
	RunE: runStream,
}

func init() {
	streamFlagSet.bind(streamCmd)
	streamCmd.Flags().IntVar(&streamFPS, "fps", 0, "frames per second (0 = profile)")
	streamCmd.Flags().IntVar(&streamFrames, "frames", 0, "stop after this many frames (0 = all)")
	streamCmd.Flags().BoolVar(&streamNoClear, "no-clear", false, "append frames instead of redrawing")
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	path := args[0]
	prof := streamFlagSet.resolve(cmd)

	fps := prof.FPS
	if streamFPS > 0 {
		fps = streamFPS
	}
	if fps <= 0 {
		fps = 10
	}

	// Let ffmpeg scale to the final canvas; the renderer then samples 1:1.
	width, height := prof.Width, prof.Height
	if info, err := source.ProbeVideo(path); err == nil {
		logVerbose("source:  %s (%dx%d, %.2f fps, %d frames)",
			path, info.Width, info.Height, info.FrameRate, info.Frames)
		width, height = prof.CanvasSize(info.Width, info.Height)
	} else {
		logVerbose("probe failed, using profile canvas: %v", err)
	}
	prof.Width, prof.Height, prof.Fit = width, height, false

	workers := streamFlagSet.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	r, err := pipeline.NewRenderer(prof, workers)
	if err != nil {
		return err
	}
	format := r.Formats[0]
	if format != "txt" && format != "ansi" {
		return fmt.Errorf("format %s cannot be streamed, use txt or ansi", format)
	}
	enc := r.Encoder(format)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var ffmpegLog io.Writer
	if verbose {
		ffmpegLog = os.Stderr
	}
	video := source.Video{Path: path, FPS: fps, Width: width, Height: height, Stderr: ffmpegLog}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	out := cmd.OutOrStdout()
	rendered := 0
	err = video.Frames(ctx, func(f source.Frame) error {
		buf, err := r.Canvas(f.Image)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f.Index, err)
		}
		data, err := enc.Encode(buf, r.Options)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f.Index, err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}

		if !streamNoClear {
			io.WriteString(out, clearScreen)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}

		rendered++
		if streamFrames > 0 && rendered >= streamFrames {
			return errFrameLimit
		}
		return nil
	})

	logVerbose("rendered %d frames", rendered)
	switch {
	case errors.Is(err, errFrameLimit), errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}
