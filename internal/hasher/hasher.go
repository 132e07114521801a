package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// NameLen is the hash prefix length used in output file names.
const NameLen = 8

// ManifestLen is the hash length recorded in manifests.
const ManifestLen = 16

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 keeps all 16 chars).
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// ContentHashFile hashes the file at path.
func ContentHashFile(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ContentHashReader(f, hexLen)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
