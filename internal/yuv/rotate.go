package yuv

import (
	"fmt"

	"github.com/gogpu/pixelmap/internal/image"
)

// Rotate rotates every plane of src clockwise by degrees (90, 180 or 270)
// into dst. For 90 and 270 dst must have width and height swapped.
// Interleaved chroma pairs move as one element.
func Rotate(dst, src Frame, degrees int) error {
	if degrees != 90 && degrees != 180 && degrees != 270 {
		return fmt.Errorf("%w: unsupported rotation %d", ErrAlgorithm, degrees)
	}
	dp, sp, err := pair(dst, src)
	if err != nil {
		return err
	}
	for i := range sp {
		if err := rotatePlane(dp[i], sp[i], degrees); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}

func rotatePlane(dst, src *image.PlaneBuf, degrees int) error {
	w, h := src.Width(), src.Height()
	wantW, wantH := w, h
	if degrees != 180 {
		wantW, wantH = h, w
	}
	if dst.Width() != wantW || dst.Height() != wantH || dst.ElemBytes() != src.ElemBytes() {
		return fmt.Errorf("%w: destination %dx%d, want %dx%d",
			ErrAlgorithm, dst.Width(), dst.Height(), wantW, wantH)
	}

	eb := src.ElemBytes()
	ds := dst.Stride()
	d := dst.Data()
	for y := range h {
		srow := src.Row(y)
		for x := range w {
			var dx, dy int
			switch degrees {
			case 90:
				dx, dy = h-1-y, x
			case 180:
				dx, dy = w-1-x, h-1-y
			default:
				dx, dy = y, w-1-x
			}
			off := dy*ds + dx*eb
			copy(d[off:off+eb], srow[x*eb:(x+1)*eb])
		}
	}
	return nil
}
