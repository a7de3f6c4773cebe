package image

import "math"

// InterpolationMode defines how plane sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest sample (no interpolation).
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring samples.
	InterpBilinear

	// InterpBicubic performs Catmull-Rom interpolation over a 4x4 neighborhood.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Sample samples channel c of a plane at continuous element coordinates
// (fx, fy), where (0.5, 0.5) is the center of the top-left element.
// Out-of-bounds coordinates are clamped to the edge.
func Sample(p *PlaneBuf, fx, fy float64, c int, mode InterpolationMode) uint16 {
	switch mode {
	case InterpNearest:
		return SampleNearest(p, fx, fy, c)
	case InterpBilinear:
		return SampleBilinear(p, fx, fy, c)
	case InterpBicubic:
		return SampleBicubic(p, fx, fy, c)
	default:
		return 0
	}
}

// SampleNearest returns the sample of the element containing (fx, fy).
func SampleNearest(p *PlaneBuf, fx, fy float64, c int) uint16 {
	x := clamp(int(math.Floor(fx)), 0, p.width-1)
	y := clamp(int(math.Floor(fy)), 0, p.height-1)
	return p.Sample(x, y, c)
}

// SampleBilinear interpolates between the 4 elements surrounding (fx, fy).
func SampleBilinear(p *PlaneBuf, fx, fy float64, c int) uint16 {
	fx -= 0.5
	fy -= 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, p.width-1)
	y1 := clamp(y0+1, 0, p.height-1)
	x0 = clamp(x0, 0, p.width-1)
	y0 = clamp(y0, 0, p.height-1)

	v := lerp2D(
		float64(p.Sample(x0, y0, c)), float64(p.Sample(x1, y0, c)),
		float64(p.Sample(x0, y1, c)), float64(p.Sample(x1, y1, c)),
		tx, ty)
	return uint16(clampFloat(math.Round(v), 0, p.maxSample()))
}

// SampleBicubic performs Catmull-Rom interpolation around (fx, fy).
func SampleBicubic(p *PlaneBuf, fx, fy float64, c int) uint16 {
	fx -= 0.5
	fy -= 0.5

	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := fx - float64(x)
	ty := fy - float64(y)

	var vals [4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := clamp(x+dx, 0, p.width-1)
			py := clamp(y+dy, 0, p.height-1)
			vals[dy+1][dx+1] = float64(p.Sample(px, py, c))
		}
	}

	return uint16(clampFloat(math.Round(bicubicInterp(vals, tx, ty)), 0, p.maxSample()))
}

// maxSample returns the largest value a sample can hold.
func (b *PlaneBuf) maxSample() float64 {
	if b.sampleBytes == 2 {
		return math.MaxUint16
	}
	return math.MaxUint8
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float64{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float64
	for i := range 4 {
		for j := range 4 {
			//nolint:gosec // G602: False positive - arrays are fixed size [4][4] and loop is bounded by 4
			result += vals[i][j] * wx[j] * wy[i]
		}
	}

	return result
}
