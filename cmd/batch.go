package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/glyphcam/internal/manifest"
	"github.com/AnyUserName/glyphcam/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	batchFlagSet renderFlags
	batchOutDir  string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Render every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
renders each one with the selected profile in every requested format, and
writes a manifest file describing the outputs.

Output filenames are content-addressed: <key>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchFlagSet.bind(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./glyphcam_out", "output directory")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := batchFlagSet.resolve(cmd)
	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   batchFlagSet.workers,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBatchReport(m, time.Since(start))
	return nil
}

func printBatchReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              glyphcam batch complete             ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Outputs:     %d\n", stats.TotalOutputs)
	fmt.Printf("  Cells:       %d\n", stats.TotalCells)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if ri := m.RenderInfo; ri != nil {
		filters := ri.Filters
		if filters == "" {
			filters = "(none)"
		}
		fmt.Printf("  Workers:     %d\n", ri.Workers)
		fmt.Printf("  Filters:     %s\n", filters)
	}
	fmt.Println()

	// Largest canvases first.
	if len(m.Assets) > 0 {
		type assetCells struct {
			key    string
			w, h   int
			output int64
		}
		var items []assetCells
		for key, a := range m.Assets {
			var outSum int64
			for _, o := range a.Outputs {
				outSum += o.Size
			}
			items = append(items, assetCells{key, a.CanvasWidth, a.CanvasHeight, outSum})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].output != items[j].output {
				return items[i].output > items[j].output
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d heaviest (canvas, output):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %4dx%-4d %8s\n",
				truncKey(it.key, 40), it.w, it.h, formatBytes(it.output))
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			set[o.Format] = true
		}
	}
	var out []string
	for _, f := range []string{"txt", "html", "ansi", "png", "jpeg"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
