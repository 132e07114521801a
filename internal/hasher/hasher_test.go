package hasher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContentHash_Length(t *testing.T) {
	data := []byte(" .,:;i1tfLCG08@")
	tests := []struct {
		hexLen int
		want   int
	}{
		{0, 16},
		{NameLen, 8},
		{ManifestLen, 16},
		{32, 16},
	}
	for _, tt := range tests {
		if got := ContentHash(data, tt.hexLen); len(got) != tt.want {
			t.Errorf("ContentHash(len=%d) = %q, want %d chars", tt.hexLen, got, tt.want)
		}
	}
}

func TestContentHash_Prefix(t *testing.T) {
	data := []byte("glyph")
	full := ContentHash(data, 0)
	if short := ContentHash(data, NameLen); !strings.HasPrefix(full, short) {
		t.Errorf("short hash %q is not a prefix of %q", short, full)
	}
}

func TestContentHash_KnownValue(t *testing.T) {
	// xxHash64 of the empty input.
	if got := ContentHash(nil, 0); got != "ef46db3751d8e999" {
		t.Errorf("ContentHash(nil) = %q", got)
	}
}

func TestContentHashReader_MatchesBytes(t *testing.T) {
	data := []byte(strings.Repeat("@08GCLft1i;:,. \n", 500))
	got, err := ContentHashReader(strings.NewReader(string(data)), ManifestLen)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash(data, ManifestLen); got != want {
		t.Errorf("reader hash %q != bytes hash %q", got, want)
	}
}

func TestContentHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.txt")
	data := []byte("@@@\n...\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ContentHashFile(path, ManifestLen)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash(data, ManifestLen); got != want {
		t.Errorf("file hash %q != bytes hash %q", got, want)
	}

	if _, err := ContentHashFile(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}
