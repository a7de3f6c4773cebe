package yuv

import (
	"fmt"
	"math"

	"github.com/gogpu/pixelmap/internal/color"
	"github.com/gogpu/pixelmap/internal/image"
)

// NewCodec returns the YUV codec for a format in a color space.
func NewCodec(f image.Format, s color.Space) color.Codec {
	return color.NewCodec(s.Matrix, s.Range, f.BitsPerComponent())
}

// checkBGRA verifies that p is a packed BGRA plane of the frame's size.
func checkBGRA(p *image.PlaneBuf, f Frame) error {
	if p.Channels() != 4 || p.SampleBytes() != 1 {
		return fmt.Errorf("%w: intermediate plane is not 4x8-bit", ErrAlgorithm)
	}
	if p.Width() != f.Layout.Width || p.Height() != f.Layout.Height {
		return fmt.Errorf("%w: intermediate plane %dx%d, frame %dx%d",
			ErrAlgorithm, p.Width(), p.Height(), f.Layout.Width, f.Layout.Height)
	}
	return nil
}

// ToBGRA decodes src into the packed BGRA_8888 plane dst. Chroma is taken
// from the 2x2 block covering each pixel; alpha is set opaque.
func ToBGRA(dst *image.PlaneBuf, src Frame, codec color.Codec) error {
	planes, err := src.planes()
	if err != nil {
		return err
	}
	if err := checkBGRA(dst, src); err != nil {
		return err
	}

	shift := codeShift(src.Layout.Format)
	luma := planes[0]
	cb, cr := chromaPlanes(src.Layout.Format, planes)

	for y := range src.Layout.Height {
		row := dst.Row(y)
		for x := range src.Layout.Width {
			yc := luma.Sample(x, y, 0) >> shift
			u := cb.plane.Sample(x/2, y/2, cb.c) >> shift
			v := cr.plane.Sample(x/2, y/2, cr.c) >> shift

			r, g, b := codec.Decode(yc, u, v)
			off := x * 4
			row[off] = unit8(b)
			row[off+1] = unit8(g)
			row[off+2] = unit8(r)
			row[off+3] = 0xFF
		}
	}
	return nil
}

// FromBGRA encodes the packed BGRA_8888 plane src into dst. Luma is encoded
// per pixel; chroma is the average over each 2x2 block. Alpha is dropped.
func FromBGRA(dst Frame, src *image.PlaneBuf, codec color.Codec) error {
	planes, err := dst.planes()
	if err != nil {
		return err
	}
	if err := checkBGRA(src, dst); err != nil {
		return err
	}

	shift := codeShift(dst.Layout.Format)
	luma := planes[0]
	cb, cr := chromaPlanes(dst.Layout.Format, planes)
	w, h := dst.Layout.Width, dst.Layout.Height
	cw, ch := image.ChromaSize(w, h)

	for cy := range ch {
		for cx := range cw {
			var sumU, sumV, n int
			for y := cy * 2; y < min(cy*2+2, h); y++ {
				row := src.Row(y)
				for x := cx * 2; x < min(cx*2+2, w); x++ {
					off := x * 4
					yc, u, v := codec.Encode(
						float64(row[off+2])/255,
						float64(row[off+1])/255,
						float64(row[off])/255,
					)
					luma.PutSample(x, y, 0, yc<<shift)
					sumU += int(u)
					sumV += int(v)
					n++
				}
			}
			cb.plane.PutSample(cx, cy, cb.c, uint16((sumU+n/2)/n)<<shift)
			cr.plane.PutSample(cx, cy, cr.c, uint16((sumV+n/2)/n)<<shift)
		}
	}
	return nil
}

// unit8 converts a normalized value to a byte with rounding.
func unit8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
