package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Source.Size
		s.TotalOutputs += len(a.Outputs)
		s.TotalCells += int64(a.CanvasWidth) * int64(a.CanvasHeight)
		for _, o := range a.Outputs {
			s.TotalOutputBytes += o.Size
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Load reads a manifest from path. A directory is resolved to the
// manifest file inside it.
func Load(path string) (*Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", fmt.Errorf("parse manifest: %w", err)
	}
	if m.Assets == nil {
		m.Assets = make(map[string]Asset)
	}
	return &m, path, nil
}
