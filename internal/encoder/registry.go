package encoder

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/glyphcam/internal/raster"
)

// priority is the canonical format order used for listing.
var priority = []string{"txt", "html", "ansi", "png", "jpeg"}

// Registry holds all encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&GlyphEncoder{Mode: raster.Text},
		&GlyphEncoder{Mode: raster.HTML},
		&GlyphEncoder{Mode: raster.ANSI},
		&PNGEncoder{},
		&JPEGEncoder{},
	}
	for _, enc := range all {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
// "text" and "jpg" are accepted as aliases.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalize(format)]
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to known ones, dropping
// duplicates, and falls back to plain text when nothing is left.
func (r *Registry) ResolveFormats(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}

	for _, f := range requested {
		f = normalize(f)
		if _, ok := r.encoders[f]; ok && !seen[f] {
			resolved = append(resolved, f)
			seen[f] = true
		}
	}

	if len(resolved) == 0 {
		resolved = append(resolved, "txt")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

func normalize(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "text", "plain":
		return "txt"
	case "jpg":
		return "jpeg"
	}
	return f
}
