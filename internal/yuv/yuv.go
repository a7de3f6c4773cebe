// Package yuv implements the plane-level algorithms behind pixel buffer
// transforms: resampling, axis-aligned rotation, flipping and conversion
// between 4:2:0 YUV and packed BGRA.
//
// Every routine reads the source and writes the destination through their
// own layouts. Strides of the two frames are independent and never assumed
// to equal the tight row width. Routines never allocate the destination;
// the caller owns both frames.
package yuv

import (
	"errors"
	"fmt"

	"github.com/gogpu/pixelmap/internal/image"
)

// Errors returned by the plane algorithms.
var (
	// ErrAlgorithm is returned when a plane routine cannot produce valid
	// output, e.g. a malformed stride or a buffer shorter than its layout.
	ErrAlgorithm = errors.New("yuv: algorithm failure")

	// ErrUnsupportedFormat is returned for formats outside the YUV 4:2:0 family.
	ErrUnsupportedFormat = errors.New("yuv: unsupported format")
)

// Frame is pixel memory together with the layout describing it.
type Frame struct {
	Layout image.Layout
	Data   []byte
}

// planes returns views of every plane of a YUV frame.
func (f Frame) planes() ([]*image.PlaneBuf, error) {
	if !f.Layout.Format.IsYUV() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Layout.Format)
	}
	views, err := f.Layout.Views(f.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}
	return views, nil
}

// pair returns the plane views of dst and src after checking that both
// frames hold the same format.
func pair(dst, src Frame) ([]*image.PlaneBuf, []*image.PlaneBuf, error) {
	if dst.Layout.Format != src.Layout.Format {
		return nil, nil, fmt.Errorf("%w: format mismatch %s -> %s",
			ErrAlgorithm, src.Layout.Format, dst.Layout.Format)
	}
	sp, err := src.planes()
	if err != nil {
		return nil, nil, err
	}
	dp, err := dst.planes()
	if err != nil {
		return nil, nil, err
	}
	return dp, sp, nil
}

// codeShift returns how far a code value is shifted left inside its
// storage word (6 for 10-bit samples in 16-bit words).
func codeShift(f image.Format) uint {
	if f.BytesPerSample() == 2 {
		return uint(16 - f.BitsPerComponent())
	}
	return 0
}

// chromaRef addresses one chroma channel inside a plane.
type chromaRef struct {
	plane *image.PlaneBuf
	c     int
}

// chromaPlanes resolves where Cb and Cr live for a format.
func chromaPlanes(f image.Format, planes []*image.PlaneBuf) (cb, cr chromaRef) {
	vu := f.ChromaOrder() == image.ChromaVU
	if f.Family() == image.FamilySemiPlanar {
		if vu {
			return chromaRef{planes[1], 1}, chromaRef{planes[1], 0}
		}
		return chromaRef{planes[1], 0}, chromaRef{planes[1], 1}
	}
	if vu {
		return chromaRef{planes[2], 0}, chromaRef{planes[1], 0}
	}
	return chromaRef{planes[1], 0}, chromaRef{planes[2], 0}
}
