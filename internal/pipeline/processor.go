package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/glyphcam/internal/hasher"
	"github.com/AnyUserName/glyphcam/internal/manifest"
	"github.com/AnyUserName/glyphcam/internal/source"
)

// processResult holds the result of rendering a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, sample, filter,
// encode every format and write the outputs.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	img, err := source.OpenImage(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	bounds := img.Bounds()

	buf, err := p.renderer.Canvas(img)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Source: manifest.SourceInfo{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: src.Format,
			Size:   src.Size,
		},
		CanvasWidth:  buf.Width,
		CanvasHeight: buf.Height,
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	for _, format := range p.renderer.Formats {
		enc := p.renderer.Encoder(format)
		if enc == nil {
			continue
		}

		data, err := enc.Encode(buf, p.renderer.Options)
		if err != nil {
			p.logf("warn: encode %s as %s: %v", src.Key, format, err)
			continue
		}

		contentHash := hasher.ContentHash(data, hasher.ManifestLen)

		// Content-addressed name: key.hash.ext
		fileName := fmt.Sprintf("%s.%s.%s",
			filepath.Base(src.Key), contentHash[:hasher.NameLen], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		outPath := filepath.Join(p.cfg.OutputDir, relPath)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			result.err = fmt.Errorf("write %s: %w", relPath, err)
			return result
		}

		result.asset.Outputs = append(result.asset.Outputs, manifest.Output{
			Format: format,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}

	if len(result.asset.Outputs) == 0 {
		result.err = fmt.Errorf("%s: no output could be encoded", src.RelPath)
	}
	return result
}
