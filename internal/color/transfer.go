package color

import "math"

// SMPTE ST 2084 (PQ) constants.
const (
	pqM1 = 2610.0 / 16384.0
	pqM2 = 2523.0 / 4096.0 * 128.0
	pqC1 = 3424.0 / 4096.0
	pqC2 = 2413.0 / 4096.0 * 32.0
	pqC3 = 2392.0 / 4096.0 * 32.0
)

// ARIB STD-B67 (HLG) constants.
const (
	hlgA = 0.17883277
	hlgB = 1 - 4*hlgA
	hlgC = 0.55991073
)

// adobeGamma is the Adobe RGB (1998) gamma, 563/256.
const adobeGamma = 563.0 / 256.0

// IsValid returns true for a known transfer function.
func (t Transfer) IsValid() bool {
	return t >= TransferBT709 && t <= TransferGamma24
}

// ToLinear decodes a normalized code value in [0,1] to relative linear light.
// PQ decodes to a fraction of 10000 cd/m²; no tone mapping is applied.
func (t Transfer) ToLinear(v float64) float64 {
	switch t {
	case TransferSRGB:
		return float64(SRGBToLinear(float32(v)))
	case TransferBT709:
		if v < 0.081 {
			return v / 4.5
		}
		return math.Pow((v+0.099)/1.099, 1/0.45)
	case TransferPQ:
		np := math.Pow(math.Max(v, 0), 1/pqM2)
		return math.Pow(math.Max(np-pqC1, 0)/(pqC2-pqC3*np), 1/pqM1)
	case TransferHLG:
		if v <= 0.5 {
			return v * v / 3
		}
		return (math.Exp((v-hlgC)/hlgA) + hlgB) / 12
	case TransferAdobeRGB:
		return math.Pow(math.Max(v, 0), adobeGamma)
	case TransferGamma22:
		return math.Pow(math.Max(v, 0), 2.2)
	case TransferGamma24:
		return math.Pow(math.Max(v, 0), 2.4)
	default:
		return v
	}
}

// FromLinear encodes relative linear light in [0,1] to a normalized code value.
func (t Transfer) FromLinear(l float64) float64 {
	l = math.Max(l, 0)
	switch t {
	case TransferSRGB:
		return float64(LinearToSRGB(float32(l)))
	case TransferBT709:
		if l < 0.018 {
			return 4.5 * l
		}
		return 1.099*math.Pow(l, 0.45) - 0.099
	case TransferPQ:
		lm := math.Pow(l, pqM1)
		return math.Pow((pqC1+pqC2*lm)/(1+pqC3*lm), pqM2)
	case TransferHLG:
		if l <= 1.0/12 {
			return math.Sqrt(3 * l)
		}
		return hlgA*math.Log(12*l-hlgB) + hlgC
	case TransferAdobeRGB:
		return math.Pow(l, 1/adobeGamma)
	case TransferGamma22:
		return math.Pow(l, 1/2.2)
	case TransferGamma24:
		return math.Pow(l, 1/2.4)
	default:
		return l
	}
}

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}
