package yuv

import (
	"fmt"

	"github.com/gogpu/pixelmap/internal/image"
)

// Flip writes src into dst mirrored. mirror reverses the column order of
// every row; vertical reverses the row order. Both together produce a
// point mirror. The routine is chosen by the format's FlipPath.
func Flip(dst, src Frame, mirror, vertical bool) error {
	dp, sp, err := pair(dst, src)
	if err != nil {
		return err
	}

	legacy := src.Layout.Format.FlipPath() == image.FlipLegacy
	for i := range sp {
		d, s := dp[i], sp[i]
		if d.Width() != s.Width() || d.Height() != s.Height() {
			return fmt.Errorf("%w: plane %d size mismatch", ErrAlgorithm, i)
		}
		if legacy {
			flipSamples(d, s, mirror, vertical)
		} else {
			flipRows(d, s, mirror, vertical)
		}
	}
	return nil
}

// flipRows copies whole rows and reverses elements within a row.
func flipRows(dst, src *image.PlaneBuf, mirror, vertical bool) {
	w, h := src.Width(), src.Height()
	eb := src.ElemBytes()
	for y := range h {
		sy := y
		if vertical {
			sy = h - 1 - y
		}
		srow := src.Row(sy)
		drow := dst.Row(y)
		if !mirror {
			copy(drow, srow)
			continue
		}
		for x := range w {
			sx := w - 1 - x
			copy(drow[x*eb:(x+1)*eb], srow[sx*eb:(sx+1)*eb])
		}
	}
}

// flipSamples is the generic routine: it moves one sample at a time.
func flipSamples(dst, src *image.PlaneBuf, mirror, vertical bool) {
	w, h := src.Width(), src.Height()
	for y := range h {
		sy := y
		if vertical {
			sy = h - 1 - y
		}
		for x := range w {
			sx := x
			if mirror {
				sx = w - 1 - x
			}
			for c := range src.Channels() {
				dst.PutSample(x, y, c, src.Sample(sx, sy, c))
			}
		}
	}
}
