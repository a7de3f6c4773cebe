package color

import (
	"errors"
	"fmt"
)

// Transformer errors.
var (
	// ErrUnsupportedSpace is returned when a space has unknown components.
	ErrUnsupportedSpace = errors.New("color: unsupported color space")

	// ErrBufferSize is returned when a pixel buffer is shorter than width*height*4.
	ErrBufferSize = errors.New("color: buffer too small")
)

// Transformer converts tightly packed BGRA_8888 pixels from one color space
// to another. Implementations must not retain dst or src.
type Transformer interface {
	Transform(dst, src []byte, width, height int, from, to Space) error
}

// MatrixTransformer is the default Transformer. For every pixel it decodes
// the source transfer function, maps linear RGB through CIE XYZ into the
// target primaries and encodes with the target transfer function. Alpha is
// copied unchanged. No gamut mapping or tone mapping is performed; out of
// range values are clipped.
type MatrixTransformer struct{}

// Transform implements Transformer.
func (MatrixTransformer) Transform(dst, src []byte, width, height int, from, to Space) error {
	if !from.IsValid() {
		return fmt.Errorf("%w: source %s", ErrUnsupportedSpace, from)
	}
	if !to.IsValid() {
		return fmt.Errorf("%w: target %s", ErrUnsupportedSpace, to)
	}
	n := width * height * 4
	if width <= 0 || height <= 0 || len(src) < n || len(dst) < n {
		return ErrBufferSize
	}

	m, ok := ConversionMatrix(from.Primaries, to.Primaries)
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrUnsupportedSpace, from, to)
	}

	dec := from.Transfer
	enc := to.Transfer
	for i := 0; i < n; i += 4 {
		// BGRA order
		b := float64(dec.ToLinearFast(src[i]))
		g := float64(dec.ToLinearFast(src[i+1]))
		r := float64(dec.ToLinearFast(src[i+2]))

		r, g, b = m.Apply(r, g, b)

		dst[i] = enc.FromLinearFast(float32(b))
		dst[i+1] = enc.FromLinearFast(float32(g))
		dst[i+2] = enc.FromLinearFast(float32(r))
		dst[i+3] = src[i+3]
	}
	return nil
}
