package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "glyphcam",
	Short: "Render images and video as glyph art",
	Long: `glyphcam turns pictures into text: every source is sampled onto a
small canvas, run through a chain of pixel filters (grayscale, contrast,
thresholds, convolutions, Sobel edges) and rasterized with a glyph ramp.

Output is plain text, colored HTML or 24-bit ANSI for terminals. Videos
and webcams are streamed through ffmpeg.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"glyphcam %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[glyphcam] "+format+"\n", args...)
	}
}
