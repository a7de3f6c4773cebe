package pixelmap

import (
	"fmt"
	"math"

	"github.com/gogpu/pixelmap/internal/color"
	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// Named color spaces.
var (
	SRGB         = color.SRGB
	LinearSRGB   = color.LinearSRGB
	DisplayP3    = color.DisplayP3
	DCIP3        = color.DCIP3
	AdobeRGB     = color.AdobeRGB
	BT601Limited = color.BT601Limited
	BT709Limited = color.BT709Limited
	BT2020HLG    = color.BT2020HLG
	BT2020PQ     = color.BT2020PQ
)

// MatrixTransformer is the default ColorTransformer.
type MatrixTransformer = color.MatrixTransformer

// LookupColorSpace finds a named color space, ignoring case and punctuation.
func LookupColorSpace(name string) (ColorSpace, bool) {
	return color.Lookup(name)
}

// ColorSpaceFromType unpacks a color space type word as stored on hardware
// surfaces and in parcels.
func ColorSpaceFromType(t uint32) ColorSpace {
	return color.SpaceFromType(t)
}

// ApplyColorSpace converts the pixels to the target color space.
//
// Only YUV buffers can be converted; other formats return
// ErrUnsupportedFormat. If the current space already has the target's
// primaries, transfer, matrix and range, only the name is updated and the
// version is unchanged. Otherwise the image is decoded with the current
// matrix and range, passed through the buffer's ColorTransformer and
// encoded into a new handle with the target matrix and range.
func (pb *PixelBuffer) ApplyColorSpace(target ColorSpace) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}

	format := cur.info.PixelFormat
	if !format.IsYUV() {
		return fmt.Errorf("%w: color space conversion of %s", ErrUnsupportedFormat, format)
	}

	if cur.colorSpace.Equal(target) {
		if cur.colorSpace.Name != target.Name {
			next := *cur
			next.colorSpace = target
			pb.state.Store(&next)
		}
		return nil
	}

	w, h := cur.layout.Width, cur.layout.Height
	if int64(w)*int64(h)*4 > math.MaxInt32 {
		return fmt.Errorf("%w: %dx%d BGRA intermediate", ErrDimensionOverflow, w, h)
	}

	decoded, err := image.GetFromDefault(w, h, image.FormatBGRA8888)
	if err != nil {
		return err
	}
	defer image.PutToDefault(decoded, image.FormatBGRA8888)

	converted, err := image.GetFromDefault(w, h, image.FormatBGRA8888)
	if err != nil {
		return err
	}
	defer image.PutToDefault(converted, image.FormatBGRA8888)

	if err := yuv.ToBGRA(decoded, cur.frame(), yuv.NewCodec(format, cur.colorSpace)); err != nil {
		Logger().Warn("pixelmap: colorspace decode failed", "err", err)
		return err
	}
	if err := pb.opts.transformer.Transform(converted.Data(), decoded.Data(), w, h, cur.colorSpace, target); err != nil {
		Logger().Warn("pixelmap: colorspace transform failed",
			"from", cur.colorSpace.String(), "to", target.String(), "err", err)
		return fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}

	dstLayout, err := pb.layoutFor(format, w, h)
	if err != nil {
		return err
	}
	codec := yuv.NewCodec(format, target)
	return pb.transform("colorspace", cur, dstLayout, target, func(dst, _ yuv.Frame) error {
		return yuv.FromBGRA(dst, converted, codec)
	})
}
