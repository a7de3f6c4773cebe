package yuv

import (
	stdimage "image"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixelmap/internal/image"
)

// Filter selects the resampling kernel used by Scale.
type Filter uint8

const (
	// FilterNearest picks the nearest source sample.
	FilterNearest Filter = iota

	// FilterApproxBiLinear mixes nearest neighbor and bilinear sampling.
	FilterApproxBiLinear

	// FilterBiLinear uses the tent kernel.
	FilterBiLinear

	// FilterCatmullRom uses the Catmull-Rom cubic kernel.
	FilterCatmullRom
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterApproxBiLinear:
		return "ApproxBiLinear"
	case FilterBiLinear:
		return "BiLinear"
	case FilterCatmullRom:
		return "CatmullRom"
	default:
		return "Unknown"
	}
}

// interpolator returns the x/image/draw kernel for 8-bit planes.
func (f Filter) interpolator() draw.Interpolator {
	switch f {
	case FilterApproxBiLinear:
		return draw.ApproxBiLinear
	case FilterBiLinear:
		return draw.BiLinear
	case FilterCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// mode returns the in-package sampler used for 16-bit planes.
func (f Filter) mode() image.InterpolationMode {
	switch f {
	case FilterApproxBiLinear, FilterBiLinear:
		return image.InterpBilinear
	case FilterCatmullRom:
		return image.InterpBicubic
	default:
		return image.InterpNearest
	}
}

// Scale resamples every plane of src into dst. Both frames must hold the
// same format; dst dimensions define the target size.
func Scale(dst, src Frame, filter Filter) error {
	dp, sp, err := pair(dst, src)
	if err != nil {
		return err
	}
	shift := codeShift(dst.Layout.Format)
	for i := range sp {
		scalePlane(dp[i], sp[i], filter, shift)
	}
	return nil
}

func scalePlane(dst, src *image.PlaneBuf, filter Filter, shift uint) {
	switch {
	case filter == FilterNearest:
		scaleNearest(dst, src)
	case src.SampleBytes() == 2:
		scaleSampled(dst, src, filter.mode(), shift)
	case src.Channels() == 1:
		d, s := grayView(dst), grayView(src)
		filter.interpolator().Scale(d, d.Rect, s, s.Rect, draw.Src, nil)
	default:
		// Interleaved 8-bit chroma is split so the kernel never mixes Cb and Cr.
		interp := filter.interpolator()
		for c := range src.Channels() {
			s := extractChannel(src, c)
			d := stdimage.NewGray(stdimage.Rect(0, 0, dst.Width(), dst.Height()))
			interp.Scale(d, d.Rect, s, s.Rect, draw.Src, nil)
			insertChannel(dst, d, c)
		}
	}
}

// scaleNearest maps every destination element to source element
// (x*sw/dw, y*sh/dh) and copies it whole.
func scaleNearest(dst, src *image.PlaneBuf) {
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()
	eb := src.ElemBytes()

	for y := range dh {
		srow := src.Row(y * sh / dh)
		drow := dst.Row(y)
		for x := range dw {
			sx := x * sw / dw
			copy(drow[x*eb:(x+1)*eb], srow[sx*eb:(sx+1)*eb])
		}
	}
}

// scaleSampled resamples 16-bit planes with the in-package samplers. Code
// values sit in the high bits of each word, so results are rounded back to
// a multiple of 1<<shift.
func scaleSampled(dst, src *image.PlaneBuf, mode image.InterpolationMode, shift uint) {
	xr := float64(src.Width()) / float64(dst.Width())
	yr := float64(src.Height()) / float64(dst.Height())
	for y := range dst.Height() {
		fy := (float64(y) + 0.5) * yr
		for x := range dst.Width() {
			fx := (float64(x) + 0.5) * xr
			for c := range src.Channels() {
				dst.PutSample(x, y, c, snapCode(image.Sample(src, fx, fy, c, mode), shift))
			}
		}
	}
}

// snapCode rounds a storage word to the nearest code value that fits in
// 16-shift bits and returns it shifted back into place.
func snapCode(v uint16, shift uint) uint16 {
	if shift == 0 {
		return v
	}
	maxCode := uint32(1)<<(16-shift) - 1
	code := (uint32(v) + uint32(1)<<(shift-1)) >> shift
	return uint16(min(code, maxCode) << shift)
}

// grayView wraps a single-channel 8-bit plane as *image.Gray without copying.
func grayView(p *image.PlaneBuf) *stdimage.Gray {
	return &stdimage.Gray{
		Pix:    p.Data(),
		Stride: p.Stride(),
		Rect:   stdimage.Rect(0, 0, p.Width(), p.Height()),
	}
}

func extractChannel(p *image.PlaneBuf, c int) *stdimage.Gray {
	g := stdimage.NewGray(stdimage.Rect(0, 0, p.Width(), p.Height()))
	n := p.Channels()
	for y := range p.Height() {
		row := p.Row(y)
		out := g.Pix[y*g.Stride:]
		for x := range p.Width() {
			out[x] = row[x*n+c]
		}
	}
	return g
}

func insertChannel(p *image.PlaneBuf, g *stdimage.Gray, c int) {
	n := p.Channels()
	for y := range p.Height() {
		row := p.Row(y)
		in := g.Pix[y*g.Stride:]
		for x := range p.Width() {
			row[x*n+c] = in[x]
		}
	}
}
