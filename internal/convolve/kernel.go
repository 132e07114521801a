// Package convolve implements 2D spatial convolution over pixbuf buffers.
//
// Terms whose source coordinate falls outside the image are skipped, not
// zero-padded or clamped to the edge, so border pixels receive a partial
// sum of the kernel.
package convolve

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedKernel is returned when the weights do not form a square
// matrix of finite values.
var ErrMalformedKernel = errors.New("convolve: malformed kernel")

// Well-known kernels.
var (
	// Sharpen is the default kernel of the signed convolution filter.
	// The right-hand neighbour weight is 0, so the kernel is asymmetric.
	Sharpen = []float64{
		0, -1, 0,
		-1, 5, 0,
		0, -1, 0,
	}

	// SharpenSymmetric is the default of the unsigned variant.
	SharpenSymmetric = []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}

	Identity = []float64{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}

	SobelHorizontal = []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}

	SobelVertical = []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

// Kernel is a square weight matrix stored row-major.
type Kernel struct {
	Side    int
	Half    int
	Weights []float64
}

// NewKernel validates weights and derives the side length. The slice is
// copied so later edits by the caller do not leak into the kernel.
func NewKernel(weights []float64) (Kernel, error) {
	n := len(weights)
	if n == 0 {
		return Kernel{}, fmt.Errorf("%w: no weights", ErrMalformedKernel)
	}
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return Kernel{}, fmt.Errorf("%w: %d weights is not a perfect square", ErrMalformedKernel, n)
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Kernel{}, fmt.Errorf("%w: weight %d is %v", ErrMalformedKernel, i, w)
		}
	}
	w := make([]float64, n)
	copy(w, weights)
	return Kernel{Side: side, Half: side / 2, Weights: w}, nil
}

// MustKernel is NewKernel for package-level kernels known to be valid.
func MustKernel(weights []float64) Kernel {
	k, err := NewKernel(weights)
	if err != nil {
		panic(err)
	}
	return k
}
