// Package pipeline renders whole directories of images into glyph art
// and collects the results into a manifest.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/glyphcam/internal/manifest"
	"github.com/AnyUserName/glyphcam/internal/profile"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Verbose   bool
	// Log receives progress and error lines. Nil means os.Stderr.
	Log io.Writer
}

// Pipeline orchestrates batch rendering.
type Pipeline struct {
	cfg      Config
	renderer *Renderer
}

// New creates a configured pipeline. It fails when the profile does not
// describe a valid render.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	// Images are the unit of parallelism; each convolution stays serial.
	r, err := NewRenderer(cfg.Profile, 1)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, renderer: r}, nil
}

// Run executes the full batch and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.logf("formats: %v, filters: %q", p.renderer.Formats, p.renderer.Chain.String())

	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images", len(sources))

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.logf("rendering: %s", s.Key)
			results[idx] = p.processImage(s)
			if results[idx].err == nil {
				p.logf("done: %s (%dx%d cells, %d outputs)", s.Key,
					results[idx].asset.CanvasWidth, results[idx].asset.CanvasHeight,
					len(results[idx].asset.Outputs))
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures are reported, not fatal.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(p.cfg.Log, "[glyphcam] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to render", len(errs))
		}
		fmt.Fprintf(p.cfg.Log, "[glyphcam] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.RenderInfo = &manifest.RenderInfo{
		Workers:  p.cfg.Workers,
		Filters:  p.renderer.Chain.String(),
		Contrast: p.cfg.Profile.Contrast,
		Ramp:     string(p.renderer.Options.Ramp),
		Resample: p.renderer.Method.String(),
	}
	m.ComputeStats()
	return m, nil
}

// logf writes a progress line when verbose output is on.
func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Log, "[glyphcam] "+format+"\n", args...)
	}
}
