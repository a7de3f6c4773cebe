package pixelmap

import (
	"fmt"
	"math"

	"github.com/gogpu/pixelmap/internal/yuv"
)

// Scale resamples the image by independent horizontal and vertical
// factors. Target dimensions are floor(size*factor + 0.5).
//
// Factors must be finite and positive. A target whose sample count does not
// fit in int32 is rejected with ErrDimensionOverflow before any memory is
// allocated. Scaling a non-YUV buffer is a no-op.
func (pb *PixelBuffer) Scale(xScale, yScale float64, aa AntiAliasing) error {
	if !validFactor(xScale) || !validFactor(yScale) {
		return fmt.Errorf("%w: scale factors %g, %g", ErrInvalidArgument, xScale, yScale)
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}
	w := math.Floor(float64(cur.info.Size.Width)*xScale + 0.5)
	h := math.Floor(float64(cur.info.Size.Height)*yScale + 0.5)
	return pb.resize(cur, w, h, aa)
}

// Resize resamples the image to dstWidth x dstHeight.
func (pb *PixelBuffer) Resize(dstWidth, dstHeight int32, aa AntiAliasing) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}
	return pb.resize(cur, float64(dstWidth), float64(dstHeight), aa)
}

// ScaleDefault is Scale with AntiAliasNone.
func (pb *PixelBuffer) ScaleDefault(xScale, yScale float64) error {
	return pb.Scale(xScale, yScale, AntiAliasNone)
}

// ResizeDefault is Resize with AntiAliasNone.
func (pb *PixelBuffer) ResizeDefault(dstWidth, dstHeight int32) error {
	return pb.Resize(dstWidth, dstHeight, AntiAliasNone)
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// resize is shared by Scale and Resize. Targets arrive as float64 so that
// products of huge factors are range checked before any integer conversion.
func (pb *PixelBuffer) resize(cur *state, w, h float64, aa AntiAliasing) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: target size %gx%g", ErrInvalidArgument, w, h)
	}

	format := cur.info.PixelFormat
	if !format.IsYUV() {
		Logger().Warn("pixelmap: scale skipped", "format", format.String())
		return nil
	}

	limit := float64(math.MaxInt32 / format.BytesPerSample())
	if w*h > limit {
		return fmt.Errorf("%w: target %gx%g", ErrDimensionOverflow, w, h)
	}

	src := cur.info.Size
	level := pb.effectiveLevel(src, aa)
	filter := level.filter()

	target, err := pb.layoutFor(format, int(w), int(h))
	if err != nil {
		return err
	}

	Logger().Debug("pixelmap: scale",
		"from", src.String(), "to", Size{Width: int32(w), Height: int32(h)}.String(),
		"quality", level.String())

	return pb.transform("scale", cur, target, cur.colorSpace, func(dst, src yuv.Frame) error {
		return yuv.Scale(dst, src, filter)
	})
}

// effectiveLevel applies the quality switch: small sources are resampled
// at least bilinearly when anti-aliasing is enabled.
func (pb *PixelBuffer) effectiveLevel(src Size, aa AntiAliasing) AntiAliasing {
	if !pb.opts.antiAliasing || aa >= AntiAliasMedium {
		return aa
	}
	th := pb.opts.aaThreshold
	if src.Width <= th && src.Height <= th {
		return AntiAliasMedium
	}
	return aa
}
