package image

import "math"

// Plane describes where one plane lives inside a pixel buffer.
type Plane struct {
	// Offset is the byte offset of the first row from the start of the buffer.
	Offset int

	// Stride is the number of bytes between the starts of consecutive rows.
	Stride int

	// Width is the number of elements per row.
	Width int

	// Height is the number of rows.
	Height int

	// Channels is the number of samples per element
	// (2 for an interleaved chroma plane).
	Channels int

	// SampleBytes is the storage size of one sample.
	SampleBytes int
}

// ElemBytes returns the storage size of one element.
func (p Plane) ElemBytes() int {
	return p.Channels * p.SampleBytes
}

// RowBytes returns the number of used bytes in one row.
func (p Plane) RowBytes() int {
	return p.Width * p.ElemBytes()
}

// Bytes returns the number of bytes the plane occupies, padding included.
func (p Plane) Bytes() int {
	return p.Stride * p.Height
}

// Layout maps a format and dimensions to per-plane offsets and strides.
// A Layout is a value; it does not reference pixel memory.
type Layout struct {
	Format Format
	Width  int
	Height int
	Planes []Plane

	// Size is the total number of bytes needed to hold every plane.
	Size int
}

// ChromaSize returns the chroma plane dimensions for 4:2:0 subsampling.
func ChromaSize(width, height int) (int, int) {
	return (width + 1) / 2, (height + 1) / 2
}

// CheckDimensions validates width, height and format and verifies that the
// pixel count and the pixel count times the sample size fit in int32.
func CheckDimensions(format Format, width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	pixels := int64(width) * int64(height)
	if pixels > math.MaxInt32 || pixels*int64(format.BytesPerSample()) > math.MaxInt32 {
		return ErrDimensionOverflow
	}
	return nil
}

// NewLayout computes a tightly packed layout (alignment 1).
func NewLayout(format Format, width, height int) (Layout, error) {
	return NewAlignedLayout(format, width, height, 1)
}

// NewAlignedLayout computes a layout whose row strides are rounded up to a
// multiple of align bytes. Planes are stored back to back in plane order.
func NewAlignedLayout(format Format, width, height, align int) (Layout, error) {
	if align <= 0 {
		return Layout{}, ErrInvalidAlignment
	}
	if err := CheckDimensions(format, width, height); err != nil {
		return Layout{}, err
	}

	planes := planeShapes(format, width, height)
	strides := make([]int, len(planes))
	for i, p := range planes {
		row := int64(p.RowBytes())
		a := int64(align)
		stride := (row + a - 1) / a * a
		if stride > math.MaxInt32 {
			return Layout{}, ErrDimensionOverflow
		}
		strides[i] = int(stride)
	}
	return buildLayout(format, width, height, planes, strides)
}

// NewLayoutWithStrides computes a layout with caller supplied row strides,
// one per plane. It is used for memory whose pitch is imposed externally.
func NewLayoutWithStrides(format Format, width, height int, strides []int) (Layout, error) {
	if err := CheckDimensions(format, width, height); err != nil {
		return Layout{}, err
	}
	planes := planeShapes(format, width, height)
	if len(strides) != len(planes) {
		return Layout{}, ErrInvalidStride
	}
	for i, p := range planes {
		if strides[i] < p.RowBytes() {
			return Layout{}, ErrInvalidStride
		}
	}
	return buildLayout(format, width, height, planes, strides)
}

func buildLayout(format Format, width, height int, planes []Plane, strides []int) (Layout, error) {
	var offset int64
	for i := range planes {
		planes[i].Offset = int(offset)
		planes[i].Stride = strides[i]
		offset += int64(strides[i]) * int64(planes[i].Height)
		if offset > math.MaxInt32 {
			return Layout{}, ErrDimensionOverflow
		}
	}
	return Layout{
		Format: format,
		Width:  width,
		Height: height,
		Planes: planes,
		Size:   int(offset),
	}, nil
}

// planeShapes returns the planes of a format with Width, Height, Channels
// and SampleBytes filled in.
func planeShapes(format Format, width, height int) []Plane {
	info := format.Info()
	if info.Family == FamilyPacked {
		return []Plane{{
			Width:       width,
			Height:      height,
			Channels:    info.Channels,
			SampleBytes: info.BytesPerSample / info.Channels,
		}}
	}

	bps := info.BytesPerSample
	cw, ch := ChromaSize(width, height)
	luma := Plane{Width: width, Height: height, Channels: 1, SampleBytes: bps}
	if info.Family == FamilySemiPlanar {
		return []Plane{luma, {Width: cw, Height: ch, Channels: 2, SampleBytes: bps}}
	}
	chroma := Plane{Width: cw, Height: ch, Channels: 1, SampleBytes: bps}
	return []Plane{luma, chroma, chroma}
}

// Strides returns the row stride of every plane.
func (l Layout) Strides() []int {
	s := make([]int, len(l.Planes))
	for i, p := range l.Planes {
		s[i] = p.Stride
	}
	return s
}

// Validate reports whether a buffer of dataLen bytes can hold every plane.
func (l Layout) Validate(dataLen int) error {
	if len(l.Planes) == 0 {
		return ErrInvalidFormat
	}
	for _, p := range l.Planes {
		if p.Stride < p.RowBytes() {
			return ErrInvalidStride
		}
		end := int64(p.Offset) + int64(p.Stride)*int64(p.Height-1) + int64(p.RowBytes())
		if p.Offset < 0 || end > int64(dataLen) {
			return ErrDataTooSmall
		}
	}
	return nil
}

// Plane returns a view of plane i inside data.
func (l Layout) Plane(data []byte, i int) (*PlaneBuf, error) {
	if i < 0 || i >= len(l.Planes) {
		return nil, ErrOutOfBounds
	}
	p := l.Planes[i]
	if p.Offset < 0 || p.Offset > len(data) {
		return nil, ErrDataTooSmall
	}
	return FromRaw(data[p.Offset:], p.Width, p.Height, p.Stride, p.Channels, p.SampleBytes)
}

// Views returns a view of every plane inside data.
func (l Layout) Views(data []byte) ([]*PlaneBuf, error) {
	if err := l.Validate(len(data)); err != nil {
		return nil, err
	}
	views := make([]*PlaneBuf, len(l.Planes))
	for i := range l.Planes {
		v, err := l.Plane(data, i)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

// Equal reports whether two layouts describe the same geometry.
func (l Layout) Equal(o Layout) bool {
	if l.Format != o.Format || l.Width != o.Width || l.Height != o.Height ||
		l.Size != o.Size || len(l.Planes) != len(o.Planes) {
		return false
	}
	for i := range l.Planes {
		if l.Planes[i] != o.Planes[i] {
			return false
		}
	}
	return true
}
