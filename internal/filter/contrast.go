package filter

import (
	"fmt"
	"math"
)

// ContrastFactor returns (259*(c+255)) / (255*(259-c)). Levels outside
// [-255,255] are rejected; 259 in particular has no finite factor.
func ContrastFactor(level int) (float64, error) {
	if level < -255 || level > 255 {
		return 0, fmt.Errorf("%w: contrast %d not in [-255,255]", ErrOptionOutOfRange, level)
	}
	return (259 * float64(level+255)) / (255 * float64(259-level)), nil
}

// ContrastChannel remaps one channel: bound(floor((c-128)*factor)+128).
func ContrastChannel(c uint8, factor float64) uint8 {
	v := math.Floor((float64(c)-128)*factor) + 128
	return uint8(max(0, min(255, v)))
}

// BT709 is the luminance used by the luminance, threshold and gradient filters.
func BT709(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}
