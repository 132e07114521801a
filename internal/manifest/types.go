package manifest

// FileName is the manifest file written at the root of a batch output.
const FileName = "glyphcam.manifest.json"

// Manifest is the top-level output of a glyphcam batch run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	RenderInfo  *RenderInfo      `json:"render_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// RenderInfo captures the parameters every asset was rendered with.
type RenderInfo struct {
	Workers  int    `json:"workers"`
	Filters  string `json:"filters"` // chain description, "" for none
	Contrast int    `json:"contrast"`
	Ramp     string `json:"ramp"`
	Resample string `json:"resample"`
}

// Asset describes a single source image and all its rendered outputs.
type Asset struct {
	Source       SourceInfo `json:"source"`
	CanvasWidth  int        `json:"canvas_width"`  // cells per row
	CanvasHeight int        `json:"canvas_height"` // rows
	Outputs      []Output   `json:"outputs"`
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Output is one encoded rendering of an asset.
type Output struct {
	Format string `json:"format"` // "txt", "html", "ansi", "png", "jpeg"
	Size   int64  `json:"size"`   // bytes on disk
	Hash   string `json:"hash"`   // first 16 hex chars of xxhash64
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates batch metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalOutputs     int   `json:"total_outputs"`
	TotalCells       int64 `json:"total_cells"` // glyph cells across all canvases
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
