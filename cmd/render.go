package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/AnyUserName/glyphcam/internal/pipeline"
	"github.com/AnyUserName/glyphcam/internal/source"
	"github.com/spf13/cobra"
)

var (
	renderFlagSet renderFlags
	renderOut     string
)

var renderCmd = &cobra.Command{
	Use:   "render <image|->",
	Short: "Render one image as glyph art",
	Long: `Decodes an image (png, jpeg, gif, webp, bmp, tiff; "-" reads stdin),
samples it onto the profile canvas, applies the filter chain and prints
the first output format to stdout.

With --out, every requested format is written next to the given path:
--out art.txt --format txt,html writes art.txt and art.html.`,
	Example: `  glyphcam render photo.jpg
  glyphcam render photo.jpg -p terminal --format ansi
  glyphcam render photo.jpg -f grayscale -f sobel -f negative --contrast 0
  glyphcam render photo.jpg -f "convolute:weights=0 -1 0 -1 5 -1 0 -1 0" -o art.html --format html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderFlagSet.bind(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()
	prof := renderFlagSet.resolve(cmd)

	workers := renderFlagSet.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	r, err := pipeline.NewRenderer(prof, workers)
	if err != nil {
		return err
	}

	img, err := openInput(args[0])
	if err != nil {
		return err
	}
	b := img.Bounds()
	logVerbose("source:  %s (%dx%d)", args[0], b.Dx(), b.Dy())

	buf, err := r.Canvas(img)
	if err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	logVerbose("canvas:  %dx%d, filters: %q", buf.Width, buf.Height, r.Chain.String())

	formats := r.Formats
	if renderOut == "" {
		if len(formats) > 1 {
			logVerbose("stdout takes one format, using %s", formats[0])
		}
		formats = formats[:1]
	}

	for _, format := range formats {
		enc := r.Encoder(format)
		data, err := enc.Encode(buf, r.Options)
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}

		if renderOut == "" {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			continue
		}

		path := outputPath(renderOut, enc.Extension(), len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logVerbose("wrote:   %s (%s)", path, formatBytes(int64(len(data))))
	}

	logVerbose("time:    %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// openInput decodes a file, or stdin for "-".
func openInput(path string) (image.Image, error) {
	if path == "-" {
		return source.DecodeImage(os.Stdin)
	}
	return source.OpenImage(path)
}

// outputPath swaps the extension of out for ext when several formats
// share one --out value.
func outputPath(out, ext string, multi bool) string {
	if !multi {
		return out
	}
	return strings.TrimSuffix(out, filepath.Ext(out)) + "." + ext
}
