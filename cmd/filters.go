package cmd

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/glyphcam/internal/encoder"
	"github.com/AnyUserName/glyphcam/internal/filter"
	"github.com/AnyUserName/glyphcam/internal/profile"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List filters with their defaults, profiles and output formats",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

var kindHelp = map[filter.Kind]string{
	filter.KindGrayscale:         "channel average",
	filter.KindLuminance:         "BT.709 luminance",
	filter.KindBrightness:        "add to every channel, wraps past 255",
	filter.KindThreshold:         "white at or above level, black below",
	filter.KindNegative:          "invert colors",
	filter.KindContrast:          "contrast remap, level -255..255",
	filter.KindConvolute:         "square kernel, clamped to bytes",
	filter.KindConvoluteUnsigned: "raw float field, not chainable",
	filter.KindSobel:             "edge magnitude (R=h, G=v, B=|g|/4)",
}

func runFilters(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println("  Filters (default options):")
	for _, k := range filter.Kinds() {
		f, err := filter.New(k, filter.Options{})
		if err != nil {
			return err
		}
		fmt.Printf("    %-56s %s\n", truncKey(f.String(), 56), kindHelp[k])
	}
	fmt.Println()

	fmt.Println("  Profiles:")
	for _, name := range profile.Names() {
		p := profile.Get(name)
		filters := strings.Join(p.Filters, " | ")
		if filters == "" {
			filters = "-"
		}
		fmt.Printf("    %-10s %4dx%-4d %-28s %s\n", name, p.Width, p.Height, filters, strings.Join(p.Formats, ","))
	}
	fmt.Println()

	fmt.Printf("  %s\n", encoder.NewRegistry())
	fmt.Println()
	return nil
}
