// Package filter provides the pixel filters applied to a canvas before
// rasterization.
//
// Filters form a closed set of kinds, each with its own typed options:
//   - Grayscale, Luminance: channel averaging (mean or BT.709 weights)
//   - Brightness, Threshold, Negative, Contrast: point operations
//   - Convolute, ConvoluteUnsigned: spatial convolution (see package convolve)
//   - Sobel: edge magnitude built from the two convolutions
//
// Names are only parsed at the boundary (ParseKind, ParseSpec); inside
// the engine filters are dispatched by type.
//
// Apply never mutates its input. Chain.Run mutates the caller's buffer
// only after every step succeeded.
package filter
