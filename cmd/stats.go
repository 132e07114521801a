package cmd

import (
	"fmt"
	"sort"

	"github.com/AnyUserName/glyphcam/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a batch output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	m, _, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if ri := m.RenderInfo; ri != nil {
		fmt.Printf("  Workers:          %d\n", ri.Workers)
		fmt.Printf("  Filters:          %q\n", ri.Filters)
		fmt.Printf("  Contrast:         %d\n", ri.Contrast)
		fmt.Printf("  Ramp:             %q\n", ri.Ramp)
		fmt.Printf("  Resample:         %s\n", ri.Resample)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Printf("  Total cells:      %d\n", s.TotalCells)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalCells > 0 {
		fmt.Printf("  Bytes per cell:   %.2f\n", float64(s.TotalOutputBytes)/float64(s.TotalCells))
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range []string{"txt", "html", "ansi", "png", "jpeg"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Per-canvas breakdown.
	canvasStats := map[string]int{}
	for _, a := range m.Assets {
		canvasStats[fmt.Sprintf("%dx%d", a.CanvasWidth, a.CanvasHeight)]++
	}
	var sizes []string
	for s := range canvasStats {
		sizes = append(sizes, s)
	}
	sort.Strings(sizes)
	fmt.Println("  Canvas breakdown:")
	for _, s := range sizes {
		fmt.Printf("    %9s  %4d assets\n", s, canvasStats[s])
	}

	var warnings []string
	for key, a := range m.Assets {
		if len(a.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no outputs", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
