package profile

import (
	"sort"

	"github.com/AnyUserName/glyphcam/internal/canvas"
	"github.com/AnyUserName/glyphcam/internal/filter"
)

// Profile defines canvas and rendering parameters for a target display.
type Profile struct {
	Name       string
	Width      int      // canvas width in cells
	Height     int      // canvas height in cells
	Fit        bool     // shrink the canvas to keep the source aspect ratio
	CellAspect float64  // glyph width/height ratio applied when fitting
	Filters    []string // filter specs applied in order
	Contrast   int      // rasterizer contrast level
	Ramp       string   // glyph ramp, empty for the default
	Formats    []string // output formats in priority order
	Resample   string   // canvas sampling method
	FPS        int      // frame rate for streams
}

// DefaultName is the profile used when none is requested.
const DefaultName = "webcam"

// Built-in profiles.
var profiles = map[string]Profile{
	"webcam": {
		Name:     "webcam",
		Width:    300,
		Height:   200,
		Contrast: filter.DefaultContrast,
		Formats:  []string{"txt"},
		Resample: "area",
		FPS:      10,
	},
	"terminal": {
		Name:       "terminal",
		Width:      120,
		Height:     60,
		Fit:        true,
		CellAspect: 0.5,
		Contrast:   filter.DefaultContrast,
		Formats:    []string{"ansi", "txt"},
		Resample:   "area",
		FPS:        10,
	},
	"edges": {
		Name:       "edges",
		Width:      160,
		Height:     80,
		Fit:        true,
		CellAspect: 0.5,
		Filters:    []string{"grayscale", "sobel", "negative"},
		Contrast:   0,
		Formats:    []string{"txt", "png"},
		Resample:   "area",
		FPS:        10,
	},
	"poster": {
		Name:       "poster",
		Width:      160,
		Height:     80,
		Fit:        true,
		CellAspect: 0.5,
		Filters:    []string{"optGrayscale", "threshold"},
		Contrast:   0,
		Formats:    []string{"txt"},
		Resample:   "area",
		FPS:        10,
	},
	"web": {
		Name:       "web",
		Width:      200,
		Height:     100,
		Fit:        true,
		CellAspect: 0.5,
		Filters:    []string{"convolute"},
		Contrast:   filter.DefaultContrast,
		Formats:    []string{"html", "txt", "png"},
		Resample:   "lanczos",
		FPS:        10,
	},
}

// Get returns a profile by name. Falls back to the default profile if
// unknown, keeping the requested name.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p.clone()
	}
	p := profiles[DefaultName].clone()
	if name != "" {
		p.Name = name
	}
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names lists the built-in profiles alphabetically.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Chain parses the profile's filter specs.
func (p Profile) Chain() (filter.Chain, error) {
	fs, err := filter.ParseSpecs(p.Filters)
	if err != nil {
		return filter.Chain{}, err
	}
	return filter.Chain{Filters: fs}, nil
}

// CanvasSize returns the canvas dimensions for a source of srcW x srcH.
func (p Profile) CanvasSize(srcW, srcH int) (int, int) {
	if !p.Fit {
		return p.Width, p.Height
	}
	return canvas.Fit(srcW, srcH, p.Width, p.Height, p.CellAspect)
}

// clone copies slices so callers can override fields freely.
func (p Profile) clone() Profile {
	p.Filters = append([]string(nil), p.Filters...)
	p.Formats = append([]string(nil), p.Formats...)
	return p
}
