package canvas

import (
	"image"
	"math"

	"github.com/AnyUserName/glyphcam/internal/pixbuf"
)

// YCbCr → RGB lookup tables, JFIF coefficients.
var (
	ycbcrCrR [256]int32 // R = Y + ycbcrCrR[Cr]
	ycbcrCbG [256]int32 // G = Y - ycbcrCbG[Cb] - ycbcrCrG[Cr]
	ycbcrCrG [256]int32
	ycbcrCbB [256]int32 // B = Y + ycbcrCbB[Cb]
)

func init() {
	for i := 0; i < 256; i++ {
		v := float64(i) - 128.0
		ycbcrCrR[i] = int32(math.Round(1.40200 * v))
		ycbcrCbG[i] = int32(math.Round(0.34414 * v))
		ycbcrCrG[i] = int32(math.Round(0.71414 * v))
		ycbcrCbB[i] = int32(math.Round(1.77200 * v))
	}
}

func sampleNRGBA(src *image.NRGBA, bounds image.Rectangle, dst *pixbuf.Buffer) {
	pix, stride := src.Pix, src.Stride
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for dy := 0; dy < dst.Height; dy++ {
		sy0, sy1 := span(dy, dst.Height, srcH)
		for dx := 0; dx < dst.Width; dx++ {
			sx0, sx1 := span(dx, dst.Width, srcW)

			var rS, gS, bS, aS uint32
			for sy := sy0; sy < sy1; sy++ {
				off := (bY+sy)*stride + bX4 + sx0*4
				for range sx1 - sx0 {
					rS += uint32(pix[off])
					gS += uint32(pix[off+1])
					bS += uint32(pix[off+2])
					aS += uint32(pix[off+3])
					off += 4
				}
			}

			n := uint32((sy1 - sy0) * (sx1 - sx0))
			di := (dy*dst.Width + dx) * 4
			dst.Pix[di] = avg(rS, n)
			dst.Pix[di+1] = avg(gS, n)
			dst.Pix[di+2] = avg(bS, n)
			dst.Pix[di+3] = avg(aS, n)
		}
	}
}

// sampleRGBA averages premultiplied pixels, then un-premultiplies once
// per cell.
func sampleRGBA(src *image.RGBA, bounds image.Rectangle, dst *pixbuf.Buffer) {
	pix, stride := src.Pix, src.Stride
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for dy := 0; dy < dst.Height; dy++ {
		sy0, sy1 := span(dy, dst.Height, srcH)
		for dx := 0; dx < dst.Width; dx++ {
			sx0, sx1 := span(dx, dst.Width, srcW)

			var rS, gS, bS, aS uint32
			for sy := sy0; sy < sy1; sy++ {
				off := (bY+sy)*stride + bX4 + sx0*4
				for range sx1 - sx0 {
					rS += uint32(pix[off])
					gS += uint32(pix[off+1])
					bS += uint32(pix[off+2])
					aS += uint32(pix[off+3])
					off += 4
				}
			}

			n := uint32((sy1 - sy0) * (sx1 - sx0))
			di := (dy*dst.Width + dx) * 4
			if aS > 0 {
				dst.Pix[di] = uint8(min(255, (rS*255+aS/2)/aS))
				dst.Pix[di+1] = uint8(min(255, (gS*255+aS/2)/aS))
				dst.Pix[di+2] = uint8(min(255, (bS*255+aS/2)/aS))
			}
			dst.Pix[di+3] = avg(aS, n)
		}
	}
}

func sampleYCbCr(src *image.YCbCr, bounds image.Rectangle, dst *pixbuf.Buffer) {
	yData, cbData, crData := src.Y, src.Cb, src.Cr
	minX, minY := bounds.Min.X, bounds.Min.Y
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for dy := 0; dy < dst.Height; dy++ {
		sy0, sy1 := span(dy, dst.Height, srcH)
		for dx := 0; dx < dst.Width; dx++ {
			sx0, sx1 := span(dx, dst.Width, srcW)

			var rS, gS, bS int32
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					y := int32(yData[src.YOffset(minX+sx, minY+sy)])
					ci := src.COffset(minX+sx, minY+sy)
					cr, cb := crData[ci], cbData[ci]

					rS += clamp255(y + ycbcrCrR[cr])
					gS += clamp255(y - ycbcrCbG[cb] - ycbcrCrG[cr])
					bS += clamp255(y + ycbcrCbB[cb])
				}
			}

			n := uint32((sy1 - sy0) * (sx1 - sx0))
			di := (dy*dst.Width + dx) * 4
			dst.Pix[di] = avg(uint32(rS), n)
			dst.Pix[di+1] = avg(uint32(gS), n)
			dst.Pix[di+2] = avg(uint32(bS), n)
			dst.Pix[di+3] = 255
		}
	}
}

func sampleGray(src *image.Gray, bounds image.Rectangle, dst *pixbuf.Buffer) {
	pix, stride := src.Pix, src.Stride
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX := bounds.Min.X - src.Rect.Min.X
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for dy := 0; dy < dst.Height; dy++ {
		sy0, sy1 := span(dy, dst.Height, srcH)
		for dx := 0; dx < dst.Width; dx++ {
			sx0, sx1 := span(dx, dst.Width, srcW)

			var vS uint32
			for sy := sy0; sy < sy1; sy++ {
				off := (bY+sy)*stride + bX + sx0
				for range sx1 - sx0 {
					vS += uint32(pix[off])
					off++
				}
			}

			v := avg(vS, uint32((sy1-sy0)*(sx1-sx0)))
			di := (dy*dst.Width + dx) * 4
			dst.Pix[di] = v
			dst.Pix[di+1] = v
			dst.Pix[di+2] = v
			dst.Pix[di+3] = 255
		}
	}
}

// sampleGeneric goes through image.At for every source pixel. Colors are
// averaged premultiplied in 16-bit space and un-premultiplied per cell.
func sampleGeneric(img image.Image, bounds image.Rectangle, dst *pixbuf.Buffer) {
	minX, minY := bounds.Min.X, bounds.Min.Y
	srcW, srcH := bounds.Dx(), bounds.Dy()

	for dy := 0; dy < dst.Height; dy++ {
		sy0, sy1 := span(dy, dst.Height, srcH)
		for dx := 0; dx < dst.Width; dx++ {
			sx0, sx1 := span(dx, dst.Width, srcW)

			var rS, gS, bS, aS uint64
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					cr, cg, cb, ca := img.At(minX+sx, minY+sy).RGBA()
					rS += uint64(cr)
					gS += uint64(cg)
					bS += uint64(cb)
					aS += uint64(ca)
				}
			}

			n := uint64((sy1 - sy0) * (sx1 - sx0))
			di := (dy*dst.Width + dx) * 4
			if aS > 0 {
				dst.Pix[di] = uint8(min(255, (rS*255+aS/2)/aS))
				dst.Pix[di+1] = uint8(min(255, (gS*255+aS/2)/aS))
				dst.Pix[di+2] = uint8(min(255, (bS*255+aS/2)/aS))
			}
			dst.Pix[di+3] = uint8((aS/n + 128) / 257)
		}
	}
}

func clamp255(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
