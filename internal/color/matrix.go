package color

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := range 3 {
		for j := range 3 {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// Apply returns m * (a, b, c).
func (m Mat3) Apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// Inverse returns the inverse of m and false if m is singular.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if det == 0 {
		return Mat3{}, false
	}
	inv := 1 / det
	return Mat3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}, true
}

// chromaticities holds CIE xy coordinates of the primaries and white point.
type chromaticities struct {
	rx, ry, gx, gy, bx, by, wx, wy float64
}

const d65x, d65y = 0.3127, 0.3290

var primariesTable = map[Primaries]chromaticities{
	PrimariesBT709:    {0.640, 0.330, 0.300, 0.600, 0.150, 0.060, d65x, d65y},
	PrimariesBT601P:   {0.640, 0.330, 0.290, 0.600, 0.150, 0.060, d65x, d65y},
	PrimariesBT601N:   {0.630, 0.340, 0.310, 0.595, 0.155, 0.070, d65x, d65y},
	PrimariesBT2020:   {0.708, 0.292, 0.170, 0.797, 0.131, 0.046, d65x, d65y},
	PrimariesP3DCI:    {0.680, 0.320, 0.265, 0.690, 0.150, 0.060, 0.314, 0.351},
	PrimariesP3D65:    {0.680, 0.320, 0.265, 0.690, 0.150, 0.060, d65x, d65y},
	PrimariesAdobeRGB: {0.640, 0.330, 0.210, 0.710, 0.150, 0.060, d65x, d65y},
}

// RGBToXYZ returns the matrix taking linear RGB in the given primaries to
// CIE XYZ, normalized so that white maps to Y = 1.
func RGBToXYZ(p Primaries) (Mat3, bool) {
	c, ok := primariesTable[p]
	if !ok {
		return Mat3{}, false
	}

	xyz := func(x, y float64) (float64, float64, float64) {
		return x / y, 1, (1 - x - y) / y
	}
	rX, rY, rZ := xyz(c.rx, c.ry)
	gX, gY, gZ := xyz(c.gx, c.gy)
	bX, bY, bZ := xyz(c.bx, c.by)
	wX, wY, wZ := xyz(c.wx, c.wy)

	prim := Mat3{{rX, gX, bX}, {rY, gY, bY}, {rZ, gZ, bZ}}
	inv, ok := prim.Inverse()
	if !ok {
		return Mat3{}, false
	}
	sr, sg, sb := inv.Apply(wX, wY, wZ)

	return Mat3{
		{rX * sr, gX * sg, bX * sb},
		{rY * sr, gY * sg, bY * sb},
		{rZ * sr, gZ * sg, bZ * sb},
	}, true
}

// ConversionMatrix returns the matrix taking linear RGB in primaries from
// to linear RGB in primaries to. White points are not adapted.
func ConversionMatrix(from, to Primaries) (Mat3, bool) {
	if from == to {
		return Identity3, true
	}
	src, ok := RGBToXYZ(from)
	if !ok {
		return Mat3{}, false
	}
	dst, ok := RGBToXYZ(to)
	if !ok {
		return Mat3{}, false
	}
	dstInv, ok := dst.Inverse()
	if !ok {
		return Mat3{}, false
	}
	return dstInv.Mul(src), true
}
