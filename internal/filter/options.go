package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/glyphcam/internal/convolve"
)

// Defaults used when an option is absent.
const (
	DefaultAdjustment = 40
	DefaultThreshold  = 100
	DefaultContrast   = 128
)

// Options is the loosely typed option record accepted at the boundary.
// A nil field means "not set" and selects the default; zero is a real
// value (Threshold: 0 keeps every pixel white).
type Options struct {
	Adjustment *int
	Threshold  *int
	Contrast   *int
	Weights    []float64
	Opaque     *bool
}

// Filter is one configured filter. The set of implementations is closed.
type Filter interface {
	Kind() Kind
	String() string
	validate() error
}

// Grayscale writes (R+G+B)/3 into every color channel.
type Grayscale struct{}

// Luminance writes the BT.709 luminance into every color channel.
type Luminance struct{}

// Brightness adds Adjustment to every color channel. Results wrap around
// the byte range instead of saturating.
type Brightness struct{ Adjustment int }

// Threshold turns pixels with BT.709 luminance >= Level white, others black.
type Threshold struct{ Level int }

// Negative inverts every color channel.
type Negative struct{}

// Contrast remaps channels around 128. Level must lie in [-255,255].
// Level 128 is not neutral; Level 0 is.
type Contrast struct{ Level int }

// Convolute convolves all four channels and stores clamped bytes.
type Convolute struct {
	Weights []float64
	Opaque  bool
}

// ConvoluteUnsigned convolves like Convolute but keeps raw sums. It can
// only be evaluated with Processor.Field.
type ConvoluteUnsigned struct {
	Weights []float64
	Opaque  bool
}

// Sobel writes |Gx| into R, |Gy| into G and the scaled magnitude into B.
type Sobel struct{}

func (Grayscale) Kind() Kind         { return KindGrayscale }
func (Luminance) Kind() Kind         { return KindLuminance }
func (Brightness) Kind() Kind        { return KindBrightness }
func (Threshold) Kind() Kind         { return KindThreshold }
func (Negative) Kind() Kind          { return KindNegative }
func (Contrast) Kind() Kind          { return KindContrast }
func (Convolute) Kind() Kind         { return KindConvolute }
func (ConvoluteUnsigned) Kind() Kind { return KindConvoluteUnsigned }
func (Sobel) Kind() Kind             { return KindSobel }

func (Grayscale) String() string { return KindGrayscale.String() }
func (Luminance) String() string { return KindLuminance.String() }
func (Negative) String() string  { return KindNegative.String() }
func (Sobel) String() string     { return KindSobel.String() }

func (f Brightness) String() string {
	return fmt.Sprintf("%s:adjustment=%d", KindBrightness, f.Adjustment)
}

func (f Threshold) String() string {
	return fmt.Sprintf("%s:threshold=%d", KindThreshold, f.Level)
}

func (f Contrast) String() string {
	return fmt.Sprintf("%s:contrast=%d", KindContrast, f.Level)
}

func (f Convolute) String() string {
	return fmt.Sprintf("%s:weights=%s,opaque=%t", KindConvolute, formatWeights(f.Weights), f.Opaque)
}

func (f ConvoluteUnsigned) String() string {
	return fmt.Sprintf("%s:weights=%s,opaque=%t", KindConvoluteUnsigned, formatWeights(f.Weights), f.Opaque)
}

func (Grayscale) validate() error  { return nil }
func (Luminance) validate() error  { return nil }
func (Brightness) validate() error { return nil }
func (Threshold) validate() error  { return nil }
func (Negative) validate() error   { return nil }
func (Sobel) validate() error      { return nil }

func (f Contrast) validate() error {
	_, err := ContrastFactor(f.Level)
	return err
}

func (f Convolute) validate() error {
	_, err := f.kernel()
	return err
}

func (f ConvoluteUnsigned) validate() error {
	_, err := f.kernel()
	return err
}

// kernel builds the convolution kernel; nil weights select the default.
func (f Convolute) kernel() (convolve.Kernel, error) {
	if f.Weights == nil {
		return convolve.NewKernel(convolve.Sharpen)
	}
	return convolve.NewKernel(f.Weights)
}

func (f ConvoluteUnsigned) kernel() (convolve.Kernel, error) {
	if f.Weights == nil {
		return convolve.NewKernel(convolve.SharpenSymmetric)
	}
	return convolve.NewKernel(f.Weights)
}

// New builds the filter of the given kind, substituting defaults for
// absent options and ignoring options the kind does not use.
func New(kind Kind, opts Options) (Filter, error) {
	var f Filter
	switch kind {
	case KindGrayscale:
		f = Grayscale{}
	case KindLuminance:
		f = Luminance{}
	case KindBrightness:
		f = Brightness{Adjustment: intOr(opts.Adjustment, DefaultAdjustment)}
	case KindThreshold:
		f = Threshold{Level: intOr(opts.Threshold, DefaultThreshold)}
	case KindNegative:
		f = Negative{}
	case KindContrast:
		f = Contrast{Level: intOr(opts.Contrast, DefaultContrast)}
	case KindConvolute:
		f = Convolute{Weights: weightsOr(opts.Weights, convolve.Sharpen), Opaque: boolOr(opts.Opaque, false)}
	case KindConvoluteUnsigned:
		f = ConvoluteUnsigned{Weights: weightsOr(opts.Weights, convolve.SharpenSymmetric), Opaque: boolOr(opts.Opaque, false)}
	case KindSobel:
		f = Sobel{}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFilter, kind)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return f, nil
}

// ParseSpec parses "name" or "name:key=value,key=value". Weights are
// given as space-separated numbers: "convolute:weights=0 -1 0 -1 5 -1 0 -1 0".
// Unrecognized keys are ignored.
func ParseSpec(spec string) (Filter, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(spec), ":")
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}

	var opts Options
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, pair := range strings.Split(rest, ",") {
			key, val, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("%w: %q in %q has no value", ErrInvalidOption, pair, spec)
			}
			key = strings.ToLower(strings.TrimSpace(key))
			val = strings.TrimSpace(val)
			if err := opts.set(key, val); err != nil {
				return nil, fmt.Errorf("%s: %w", spec, err)
			}
		}
	}
	return New(kind, opts)
}

// ParseSpecs parses each spec in order.
func ParseSpecs(specs []string) ([]Filter, error) {
	out := make([]Filter, 0, len(specs))
	for _, s := range specs {
		f, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (o *Options) set(key, val string) error {
	switch key {
	case "adjustment":
		n, err := parseInt(key, val)
		if err != nil {
			return err
		}
		o.Adjustment = &n
	case "threshold":
		n, err := parseInt(key, val)
		if err != nil {
			return err
		}
		o.Threshold = &n
	case "contrast":
		n, err := parseInt(key, val)
		if err != nil {
			return err
		}
		o.Contrast = &n
	case "opaque":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: opaque=%q", ErrInvalidOption, val)
		}
		o.Opaque = &b
	case "weights":
		fields := strings.Fields(val)
		w := make([]float64, 0, len(fields))
		for _, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%w: weight %q", ErrInvalidOption, s)
			}
			w = append(w, v)
		}
		o.Weights = w
	}
	return nil
}

func parseInt(key, val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidOption, key, val)
	}
	return n, nil
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

func weightsOr(w, def []float64) []float64 {
	src := def
	if w != nil {
		src = w
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

func formatWeights(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
