package cmd

import (
	"github.com/AnyUserName/glyphcam/internal/profile"
	"github.com/spf13/cobra"
)

// renderFlags are the profile overrides shared by render, stream and batch.
type renderFlags struct {
	profile  string
	filters  []string
	contrast int
	width    int
	height   int
	fit      bool
	formats  []string
	ramp     string
	resample string
	workers  int
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.profile, "profile", "p", profile.DefaultName, "rendering profile")
	fl.StringArrayVarP(&f.filters, "filter", "f", nil,
		`filter spec "name:key=value,..." (repeatable, replaces profile filters)`)
	fl.IntVar(&f.contrast, "contrast", 0, "rasterizer contrast level -255..255")
	fl.IntVar(&f.width, "width", 0, "canvas width in cells (0 = profile)")
	fl.IntVar(&f.height, "height", 0, "canvas height in rows (0 = profile)")
	fl.BoolVar(&f.fit, "fit", false, "shrink the canvas to the source aspect ratio")
	fl.StringSliceVar(&f.formats, "format", nil, "output formats: txt, html, ansi, png, jpeg")
	fl.StringVar(&f.ramp, "ramp", "", "glyph ramp from brightest to darkest")
	fl.StringVar(&f.resample, "resample", "", "canvas sampling: area, nearest, box, linear, catmullrom, lanczos")
	fl.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
}

// resolve loads the named profile and applies every flag the user set.
func (f *renderFlags) resolve(cmd *cobra.Command) profile.Profile {
	if !profile.Known(f.profile) {
		logVerbose("unknown profile %q, using %s defaults", f.profile, profile.DefaultName)
	}
	prof := profile.Get(f.profile)

	fl := cmd.Flags()
	if fl.Changed("filter") {
		prof.Filters = f.filters
	}
	if fl.Changed("contrast") {
		prof.Contrast = f.contrast
	}
	if f.width > 0 {
		prof.Width = f.width
	}
	if f.height > 0 {
		prof.Height = f.height
	}
	if fl.Changed("fit") {
		prof.Fit = f.fit
		if prof.Fit && prof.CellAspect == 0 {
			prof.CellAspect = 0.5
		}
	}
	if fl.Changed("format") {
		prof.Formats = f.formats
	}
	if fl.Changed("ramp") {
		prof.Ramp = f.ramp
	}
	if f.resample != "" {
		prof.Resample = f.resample
	}

	logVerbose("profile: %s (canvas=%dx%d fit=%v filters=%v contrast=%d formats=%v)",
		prof.Name, prof.Width, prof.Height, prof.Fit, prof.Filters, prof.Contrast, prof.Formats)
	return prof
}
