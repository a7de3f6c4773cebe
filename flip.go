package pixelmap

import (
	"github.com/gogpu/pixelmap/internal/yuv"
)

// Flip mirrors the image. flipY reverses the columns of every row
// (horizontal mirror), flipX reverses the row order (vertical flip), and
// both together rotate the image by 180 degrees. With both false, or on a
// non-YUV buffer, Flip is a no-op.
func (pb *PixelBuffer) Flip(flipX, flipY bool) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}
	if !flipX && !flipY {
		return nil
	}

	format := cur.info.PixelFormat
	if !format.IsYUV() {
		Logger().Warn("pixelmap: flip skipped", "format", format.String())
		return nil
	}

	target, err := pb.layoutFor(format, cur.layout.Width, cur.layout.Height)
	if err != nil {
		return err
	}

	return pb.transform("flip", cur, target, cur.colorSpace, func(dst, src yuv.Frame) error {
		return yuv.Flip(dst, src, flipY, flipX)
	})
}
