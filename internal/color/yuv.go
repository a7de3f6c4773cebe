package color

import "math"

// IsValid returns true for a known matrix.
func (m Matrix) IsValid() bool {
	return m >= MatrixBT709 && m <= MatrixAdobeRGB
}

// Coefficients returns the luma weights Kr and Kb of the matrix.
// Unknown matrices use BT.601.
func (m Matrix) Coefficients() (kr, kb float64) {
	switch m {
	case MatrixBT709:
		return 0.2126, 0.0722
	case MatrixBT2020:
		return 0.2627, 0.0593
	default:
		return 0.299, 0.114
	}
}

// quant describes how normalized Y'CbCr maps to integer code values.
type quant struct {
	yOff, yScale, cOff, cScale, max float64
}

func quantFor(r Range, bits int) quant {
	shift := float64(int(1) << (bits - 8))
	maxCode := float64(int(1)<<bits - 1)
	if r == RangeLimited {
		return quant{
			yOff: 16 * shift, yScale: 219 * shift,
			cOff: 128 * shift, cScale: 224 * shift,
			max: maxCode,
		}
	}
	return quant{
		yOff: 0, yScale: maxCode,
		cOff: float64(int(1) << (bits - 1)), cScale: maxCode,
		max: maxCode,
	}
}

// Codec converts between gamma-encoded RGB and integer YUV code values for
// one matrix, range and bit depth.
type Codec struct {
	kr, kb, kg float64
	q          quant
}

// NewCodec returns a codec for the given matrix, range and sample bit depth
// (8 or 10).
func NewCodec(m Matrix, r Range, bits int) Codec {
	kr, kb := m.Coefficients()
	return Codec{kr: kr, kb: kb, kg: 1 - kr - kb, q: quantFor(r, bits)}
}

// Encode converts normalized R'G'B' in [0,1] to Y, Cb, Cr code values.
func (c Codec) Encode(r, g, b float64) (y, cb, cr uint16) {
	yn := c.kr*r + c.kg*g + c.kb*b
	cbn := (b - yn) / (2 * (1 - c.kb))
	crn := (r - yn) / (2 * (1 - c.kr))
	return c.code(c.q.yOff + c.q.yScale*yn),
		c.code(c.q.cOff + c.q.cScale*cbn),
		c.code(c.q.cOff + c.q.cScale*crn)
}

// Decode converts Y, Cb, Cr code values to normalized R'G'B' clamped to [0,1].
func (c Codec) Decode(y, cb, cr uint16) (r, g, b float64) {
	yn := (float64(y) - c.q.yOff) / c.q.yScale
	cbn := (float64(cb) - c.q.cOff) / c.q.cScale
	crn := (float64(cr) - c.q.cOff) / c.q.cScale

	r = yn + 2*(1-c.kr)*crn
	b = yn + 2*(1-c.kb)*cbn
	g = (yn - c.kr*r - c.kb*b) / c.kg
	return clamp01(r), clamp01(g), clamp01(b)
}

func (c Codec) code(v float64) uint16 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > c.q.max {
		return uint16(c.q.max)
	}
	return uint16(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
