package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/glyphcam/internal/hasher"
	"github.com/AnyUserName/glyphcam/internal/manifest"
	"github.com/spf13/cobra"
)

var validateHashes bool

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a glyphcam manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateHashes, "hashes", false, "re-hash every output and compare")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	m, path, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	errors := validateManifest(m, filepath.Dir(path), validateHashes)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d outputs, all files present\n", m.Stats.TotalAssets, m.Stats.TotalOutputs)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string, checkHashes bool) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]
		if asset.Source.Width <= 0 || asset.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, asset.Source.Width, asset.Source.Height))
		}
		if asset.CanvasWidth <= 0 || asset.CanvasHeight <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid canvas %dx%d",
				key, asset.CanvasWidth, asset.CanvasHeight))
		}
		if len(asset.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no outputs", key))
		}

		seenPaths := map[string]bool{}
		for i, o := range asset.Outputs {
			if o.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: empty format", key, i))
			}
			if o.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: missing hash", key, i))
			}
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: missing path", key, i))
				continue
			}

			if seenPaths[o.Path] {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: duplicate path %q", key, i, o.Path))
			}
			seenPaths[o.Path] = true

			fullPath := filepath.Join(baseDir, o.Path)
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: file not found: %s", key, i, o.Path))
				continue
			}
			if o.Size > 0 && info.Size() != o.Size {
				errs = append(errs, fmt.Sprintf("asset %q output[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, o.Size, info.Size()))
			}
			if checkHashes && o.Hash != "" {
				got, err := hasher.ContentHashFile(fullPath, len(o.Hash))
				if err != nil {
					errs = append(errs, fmt.Sprintf("asset %q output[%d]: hash: %v", key, i, err))
				} else if got != o.Hash {
					errs = append(errs, fmt.Sprintf("asset %q output[%d]: hash mismatch: manifest=%s, disk=%s",
						key, i, o.Hash, got))
				}
			}
		}
	}

	// Verify stats consistency.
	outputCount := 0
	for _, a := range m.Assets {
		outputCount += len(a.Outputs)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	return errs
}
