package color

// Lookup tables replace per-pixel math.Pow calls with array lookups.
// Decode tables map an 8-bit code value to linear float32; encode tables
// map linear light quantized to 12 bits back to an 8-bit code value.

// encodeLUTSize gives 12-bit precision, sufficient for 8-bit output.
const encodeLUTSize = 4096

var (
	decodeLUTs [TransferGamma24 + 1][256]float32
	encodeLUTs [TransferGamma24 + 1][encodeLUTSize]uint8
)

func init() {
	for t := TransferUnknown; t <= TransferGamma24; t++ {
		for i := range 256 {
			decodeLUTs[t][i] = float32(t.ToLinear(float64(i) / 255.0))
		}
		for i := range encodeLUTSize {
			encodeLUTs[t][i] = toByte(t.FromLinear(float64(i) / (encodeLUTSize - 1)))
		}
	}
}

// ToLinearFast decodes an 8-bit code value to linear light using a lookup table.
// Unknown transfer functions decode linearly.
func (t Transfer) ToLinearFast(v uint8) float32 {
	if t > TransferGamma24 {
		t = TransferUnknown
	}
	return decodeLUTs[t][v]
}

// FromLinearFast encodes linear light to an 8-bit code value using a lookup table.
// Input is clamped to [0.0, 1.0].
func (t Transfer) FromLinearFast(l float32) uint8 {
	if t > TransferGamma24 {
		t = TransferUnknown
	}
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*(encodeLUTSize-1) + 0.5)
	if index > encodeLUTSize-1 {
		index = encodeLUTSize - 1
	}
	return encodeLUTs[t][index]
}

// toByte clamps a normalized value to [0,1] and rounds it to [0,255].
func toByte(v float64) uint8 {
	b := int(v*255.0 + 0.5)
	if b < 0 {
		b = 0
	}
	if b > 255 {
		b = 255
	}
	//nolint:gosec // G115: b is clamped to [0,255] range
	return uint8(b)
}
