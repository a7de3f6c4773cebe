package image

import (
	"encoding/binary"
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when sample coordinates are outside plane bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrDimensionOverflow is returned when a size computation does not fit in int32.
	ErrDimensionOverflow = errors.New("image: dimensions overflow")

	// ErrInvalidAlignment is returned for a non-positive stride alignment.
	ErrInvalidAlignment = errors.New("image: invalid stride alignment")
)

// PlaneBuf is a strided view over the samples of one plane.
//
// PlaneBuf never owns its memory: it slices into the handle data of a
// pixel buffer (or a scratch buffer) and is only valid as long as that
// memory is. An element is the group of samples stored for one position:
// one luma sample, one interleaved chroma pair, or one packed pixel.
//
// Thread safety: PlaneBuf is safe for concurrent read access. Writes require
// external synchronization.
type PlaneBuf struct {
	data        []byte
	width       int
	height      int
	stride      int
	channels    int
	sampleBytes int
}

// FromRaw creates a PlaneBuf over existing data without copying.
// Stride must be at least width*channels*sampleBytes and data must hold the
// last row in full. The final row may be shorter than stride.
func FromRaw(data []byte, width, height, stride, channels, sampleBytes int) (*PlaneBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if channels <= 0 || (sampleBytes != 1 && sampleBytes != 2) {
		return nil, ErrInvalidFormat
	}

	rowBytes := width * channels * sampleBytes
	if stride < rowBytes {
		return nil, ErrInvalidStride
	}

	required := stride*(height-1) + rowBytes
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &PlaneBuf{
		data:        data[:required],
		width:       width,
		height:      height,
		stride:      stride,
		channels:    channels,
		sampleBytes: sampleBytes,
	}, nil
}

// NewPackedBuf allocates a tightly packed single-plane buffer for a packed format.
func NewPackedBuf(width, height int, format Format) (*PlaneBuf, error) {
	if format.Family() != FamilyPacked || !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if err := CheckDimensions(format, width, height); err != nil {
		return nil, err
	}
	layout, err := NewLayout(format, width, height)
	if err != nil {
		return nil, err
	}
	return layout.Plane(make([]byte, layout.Size), 0)
}

// Width returns the plane width in elements.
func (b *PlaneBuf) Width() int {
	return b.width
}

// Height returns the plane height in rows.
func (b *PlaneBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes between the starts of consecutive rows.
func (b *PlaneBuf) Stride() int {
	return b.stride
}

// Channels returns the number of samples per element.
func (b *PlaneBuf) Channels() int {
	return b.channels
}

// SampleBytes returns the storage size of one sample.
func (b *PlaneBuf) SampleBytes() int {
	return b.sampleBytes
}

// ElemBytes returns the storage size of one element.
func (b *PlaneBuf) ElemBytes() int {
	return b.channels * b.sampleBytes
}

// Data returns the underlying bytes, starting at the first row.
func (b *PlaneBuf) Data() []byte {
	return b.data
}

// Row returns the used bytes of row y, excluding stride padding.
// Returns nil if y is out of bounds.
func (b *PlaneBuf) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*b.ElemBytes()]
}

// ElemOffset returns the byte offset of the element at (x, y).
// Returns -1 if coordinates are out of bounds.
func (b *PlaneBuf) ElemOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.ElemBytes()
}

// Sample returns channel c of the element at (x, y).
// Two-byte samples are read little-endian. Out of bounds reads return 0.
func (b *PlaneBuf) Sample(x, y, c int) uint16 {
	off := b.ElemOffset(x, y)
	if off < 0 || c < 0 || c >= b.channels {
		return 0
	}
	off += c * b.sampleBytes
	if b.sampleBytes == 2 {
		return binary.LittleEndian.Uint16(b.data[off:])
	}
	return uint16(b.data[off])
}

// SetSample writes channel c of the element at (x, y).
func (b *PlaneBuf) SetSample(x, y, c int, v uint16) error {
	off := b.ElemOffset(x, y)
	if off < 0 || c < 0 || c >= b.channels {
		return ErrOutOfBounds
	}
	off += c * b.sampleBytes
	if b.sampleBytes == 2 {
		binary.LittleEndian.PutUint16(b.data[off:], v)
		return nil
	}
	b.data[off] = byte(v)
	return nil
}

// PutSample writes channel c of the element at (x, y) without a bounds
// check. It is for loops that iterate inside the plane; out of range
// coordinates panic like any slice index.
func (b *PlaneBuf) PutSample(x, y, c int, v uint16) {
	off := y*b.stride + x*b.ElemBytes() + c*b.sampleBytes
	if b.sampleBytes == 2 {
		binary.LittleEndian.PutUint16(b.data[off:], v)
		return
	}
	b.data[off] = byte(v)
}

// Elem returns the raw bytes of the element at (x, y), or nil if out of bounds.
func (b *PlaneBuf) Elem(x, y int) []byte {
	off := b.ElemOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.ElemBytes()]
}

// Clear zeroes every row, padding included.
func (b *PlaneBuf) Clear() {
	clear(b.data)
}

// Fill sets every sample of channel c to v.
func (b *PlaneBuf) Fill(c int, v uint16) {
	for y := range b.height {
		for x := range b.width {
			b.PutSample(x, y, c, v)
		}
	}
}

// CopyFrom copies the samples of src row by row, honoring both strides.
// Planes must have equal geometry.
func (b *PlaneBuf) CopyFrom(src *PlaneBuf) error {
	if src.width != b.width || src.height != b.height || src.ElemBytes() != b.ElemBytes() {
		return ErrInvalidDimensions
	}
	for y := range b.height {
		copy(b.Row(y), src.Row(y))
	}
	return nil
}
