package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the filter package.
var (
	// ErrUnknownFilter is returned for a filter name with no kind.
	ErrUnknownFilter = errors.New("filter: unknown filter")

	// ErrOptionOutOfRange is returned when an option value would make the
	// filter arithmetic undefined (e.g. contrast 259 divides by zero).
	ErrOptionOutOfRange = errors.New("filter: option out of range")

	// ErrInvalidOption is returned when an option value cannot be parsed.
	ErrInvalidOption = errors.New("filter: invalid option value")

	// ErrIntermediate is returned when a filter that produces raw
	// unclamped values is applied where a byte buffer is expected.
	ErrIntermediate = errors.New("filter: intermediate filter cannot produce a buffer")
)

// Kind identifies a filter.
type Kind int

const (
	KindGrayscale Kind = iota
	KindLuminance
	KindBrightness
	KindThreshold
	KindNegative
	KindContrast
	KindConvolute
	KindConvoluteUnsigned
	KindSobel
)

var kindNames = [...]string{
	KindGrayscale:         "grayscale",
	KindLuminance:         "optGrayscale",
	KindBrightness:        "brightness",
	KindThreshold:         "threshold",
	KindNegative:          "negative",
	KindContrast:          "contrast",
	KindConvolute:         "convolute",
	KindConvoluteUnsigned: "convoluteUnsigned",
	KindSobel:             "sobel",
}

// aliases maps lower-cased accepted names to kinds.
var aliases = map[string]Kind{
	"luminancegrayscale": KindLuminance,
	"luminance":          KindLuminance,
	"edges":              KindSobel,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every filter kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a filter name to its kind. Matching ignores case.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, kn := range kindNames {
		if strings.ToLower(kn) == n {
			return Kind(i), nil
		}
	}
	if k, ok := aliases[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}
