package pixelmap

import (
	"math"

	"github.com/gogpu/pixelmap/internal/yuv"
)

// rotationTolerance is how far, in degrees, an angle may be from a
// multiple of 90 and still be treated as that multiple.
const rotationTolerance = 0.01

// Rotate turns the image clockwise by degrees. Only multiples of 90 are
// supported. The angle is normalized into [0, 360); an angle that is not
// within rotationTolerance of a multiple of 90, or that resolves to 0, is
// a no-op. 90 and 270 swap width and height.
func (pb *PixelBuffer) Rotate(degrees float64) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}

	quarter, ok := quantizeRotation(degrees)
	if !ok || quarter == 0 {
		Logger().Debug("pixelmap: rotate skipped", "degrees", degrees)
		return nil
	}

	format := cur.info.PixelFormat
	if !format.IsYUV() {
		Logger().Warn("pixelmap: rotate skipped", "format", format.String())
		return nil
	}

	w, h := cur.layout.Width, cur.layout.Height
	if quarter%180 != 0 {
		w, h = h, w
	}
	target, err := pb.layoutFor(format, w, h)
	if err != nil {
		return err
	}

	return pb.transform("rotate", cur, target, cur.colorSpace, func(dst, src yuv.Frame) error {
		return yuv.Rotate(dst, src, quarter)
	})
}

// quantizeRotation maps degrees to 0, 90, 180 or 270. It reports false
// for non-finite angles and angles too far from a multiple of 90.
func quantizeRotation(degrees float64) (int, bool) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0, false
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	q := math.Round(d / 90)
	if math.Abs(d-q*90) > rotationTolerance {
		return 0, false
	}
	return int(q) % 4 * 90, true
}
