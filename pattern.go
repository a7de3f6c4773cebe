package pixelmap

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// FillPattern replaces the image with a synthetic pattern. Like every
// mutation it writes into a new handle and bumps the version.
func (pb *PixelBuffer) FillPattern(p Pattern) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}
	format := cur.info.PixelFormat
	if !format.IsYUV() {
		return fmt.Errorf("%w: pattern fill of %s", ErrUnsupportedFormat, format)
	}

	target, err := pb.layoutFor(format, cur.layout.Width, cur.layout.Height)
	if err != nil {
		return err
	}
	return pb.transform("fill", cur, target, cur.colorSpace, func(dst, _ yuv.Frame) error {
		return yuv.Fill(dst, p)
	})
}

// Pixels returns channel c of plane i as a dense slice of samples, row by
// row, without stride padding. For semi-planar chroma, channel 0 is the
// first sample of each pair.
func (pb *PixelBuffer) Pixels(plane, channel int) ([]uint16, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return nil, err
	}
	if plane < 0 || plane >= len(cur.layout.Planes) {
		return nil, fmt.Errorf("%w: plane %d of %d", ErrInvalidArgument, plane, len(cur.layout.Planes))
	}
	if channel < 0 || channel >= cur.layout.Planes[plane].Channels {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidArgument, channel)
	}
	return yuv.PlaneSamples(cur.frame(), plane, channel)
}

// CreateBufferFromImage creates a buffer in format from a decoded image.
// YUV formats are encoded with the color space set by WithColorSpace;
// RGBA_8888 and BGRA_8888 are copied. Other formats return
// ErrUnsupportedFormat.
func CreateBufferFromImage(img stdimage.Image, format PixelFormat, kind AllocatorKind, tag string, opts ...Option) (*PixelBuffer, error) {
	if format != FormatRGBA8888 && format != FormatBGRA8888 && !format.IsYUV() {
		return nil, fmt.Errorf("%w: cannot encode image as %s", ErrUnsupportedFormat, format)
	}

	rgba, err := image.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	w, h := rgba.Width(), rgba.Height()

	pb, err := CreateBuffer(format, int32(w), int32(h), kind, tag, opts...)
	if err != nil {
		return nil, err
	}
	st := pb.state.Load()

	if format == FormatRGBA8888 {
		err = copyPacked(st, rgba)
	} else {
		bgra, gerr := image.GetFromDefault(w, h, image.FormatBGRA8888)
		if gerr != nil {
			_ = pb.Release()
			return nil, gerr
		}
		defer image.PutToDefault(bgra, image.FormatBGRA8888)
		swapRB(bgra, rgba)

		if format == FormatBGRA8888 {
			err = copyPacked(st, bgra)
		} else {
			err = yuv.FromBGRA(st.frame(), bgra, yuv.NewCodec(format, st.colorSpace))
		}
	}
	if err != nil {
		_ = pb.Release()
		return nil, err
	}
	return pb, nil
}

// copyPacked copies a packed plane into plane 0 of st.
func copyPacked(st *state, src *image.PlaneBuf) error {
	dst, err := st.layout.Plane(st.handle.Data(), 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}
	return dst.CopyFrom(src)
}

// swapRB converts RGBA_8888 to BGRA_8888.
func swapRB(dst, src *image.PlaneBuf) {
	for y := range src.Height() {
		s, d := src.Row(y), dst.Row(y)
		for x := 0; x+3 < len(s); x += 4 {
			d[x], d[x+1], d[x+2], d[x+3] = s[x+2], s[x+1], s[x], s[x+3]
		}
	}
}
