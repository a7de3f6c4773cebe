package pixelmap

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/image"
)

// Parcel wire format, big endian:
//
//	magic      uint32  "PXMP"
//	version    uint16
//	format     uint8
//	alpha      uint8
//	width      int32
//	height     int32
//	colorSpace uint32  packed type word
//	nameLen    uint16
//	name       [nameLen]byte
//	planes     uint8
//	per plane: offset uint32, stride uint32
//	size       uint32  bytes in use
//	fd         int32
const (
	parcelMagic   uint32 = 0x50584d50
	parcelVersion uint16 = 1

	// parcelFixed is the length of every field except the name and planes.
	parcelFixed = 4 + 2 + 1 + 1 + 4 + 4 + 4 + 2 + 1 + 4 + 4
)

// Marshal encodes a shared memory buffer for another process. The parcel
// carries the metadata, plane layout and color space; the descriptor number
// it records must be passed alongside, e.g. as SCM_RIGHTS ancillary data.
//
// Only SharedMemoryAllocator buffers can be marshaled.
func (pb *PixelBuffer) Marshal() ([]byte, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	st, err := pb.current()
	if err != nil {
		return nil, err
	}
	region, ok := st.handle.Extended().(*alloc.SharedRegion)
	if !ok || st.info.Allocator != SharedMemoryAllocator {
		return nil, fmt.Errorf("%w: %s buffer cannot be marshaled", ErrUnsupportedKind, st.info.Allocator)
	}
	if region.Fd() < 0 {
		return nil, fmt.Errorf("%w: invalid descriptor", ErrInvalidParcel)
	}

	name := st.colorSpace.Name
	if len(name) > math.MaxUint16 {
		name = name[:math.MaxUint16]
	}

	l := st.layout
	b := make([]byte, 0, parcelFixed+len(name)+8*len(l.Planes))
	b = binary.BigEndian.AppendUint32(b, parcelMagic)
	b = binary.BigEndian.AppendUint16(b, parcelVersion)
	b = append(b, byte(st.info.PixelFormat), byte(st.info.AlphaType))
	b = binary.BigEndian.AppendUint32(b, uint32(st.info.Size.Width))
	b = binary.BigEndian.AppendUint32(b, uint32(st.info.Size.Height))
	b = binary.BigEndian.AppendUint32(b, st.colorSpace.Type())
	b = binary.BigEndian.AppendUint16(b, uint16(len(name)))
	b = append(b, name...)
	b = append(b, byte(len(l.Planes)))
	for _, p := range l.Planes {
		b = binary.BigEndian.AppendUint32(b, uint32(p.Offset))
		b = binary.BigEndian.AppendUint32(b, uint32(p.Stride))
	}
	b = binary.BigEndian.AppendUint32(b, uint32(l.Size))
	b = binary.BigEndian.AppendUint32(b, uint32(int32(region.Fd())))
	return b, nil
}

// parcel is a decoded parcel header.
type parcel struct {
	format     PixelFormat
	alpha      AlphaType
	width      int32
	height     int32
	colorSpace ColorSpace
	offsets    []int
	strides    []int
	size       int
	fd         int
}

// parcelReader consumes big endian fields and remembers the first short read.
type parcelReader struct {
	b   []byte
	err error
}

func (r *parcelReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.b) < n {
		r.err = fmt.Errorf("%w: truncated", ErrInvalidParcel)
		return nil
	}
	v := r.b[:n]
	r.b = r.b[n:]
	return v
}

func (r *parcelReader) u8() uint8 {
	if v := r.next(1); v != nil {
		return v[0]
	}
	return 0
}

func (r *parcelReader) u16() uint16 {
	if v := r.next(2); v != nil {
		return binary.BigEndian.Uint16(v)
	}
	return 0
}

func (r *parcelReader) u32() uint32 {
	if v := r.next(4); v != nil {
		return binary.BigEndian.Uint32(v)
	}
	return 0
}

func decodeParcel(data []byte) (parcel, error) {
	r := &parcelReader{b: data}
	if r.u32() != parcelMagic && r.err == nil {
		return parcel{}, fmt.Errorf("%w: bad magic", ErrInvalidParcel)
	}
	if v := r.u16(); v != parcelVersion && r.err == nil {
		return parcel{}, fmt.Errorf("%w: version %d", ErrInvalidParcel, v)
	}

	var p parcel
	p.format = PixelFormat(r.u8())
	p.alpha = AlphaType(r.u8())
	p.width = int32(r.u32())
	p.height = int32(r.u32())
	csType := r.u32()
	name := string(r.next(int(r.u16())))
	n := int(r.u8())
	for range n {
		p.offsets = append(p.offsets, int(r.u32()))
		p.strides = append(p.strides, int(r.u32()))
	}
	p.size = int(r.u32())
	p.fd = int(int32(r.u32()))
	if r.err != nil {
		return parcel{}, r.err
	}
	if len(r.b) != 0 {
		return parcel{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidParcel, len(r.b))
	}

	p.colorSpace = ColorSpaceFromType(csType)
	p.colorSpace.Name = name
	if !p.format.IsValid() || p.width <= 0 || p.height <= 0 || p.fd < 0 || p.size <= 0 {
		return parcel{}, fmt.Errorf("%w: %s %dx%d fd %d", ErrInvalidParcel, p.format, p.width, p.height, p.fd)
	}
	return p, nil
}

// Unmarshal maps a shared memory buffer described by a parcel produced by
// Marshal. The descriptor recorded in the parcel must be open in this
// process; Unmarshal duplicates it, so the caller keeps ownership of the
// original. opts configure the new buffer as for CreateBuffer.
func Unmarshal(data []byte, tag string, opts ...Option) (*PixelBuffer, error) {
	p, err := decodeParcel(data)
	if err != nil {
		return nil, err
	}

	l, err := image.NewLayoutWithStrides(p.format, int(p.width), int(p.height), p.strides)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParcel, err)
	}
	for i, pl := range l.Planes {
		if pl.Offset != p.offsets[i] {
			return nil, fmt.Errorf("%w: plane %d offset %d, want %d", ErrInvalidParcel, i, p.offsets[i], pl.Offset)
		}
	}
	if p.size != l.Size {
		return nil, fmt.Errorf("%w: size %d, layout needs %d", ErrInvalidParcel, p.size, l.Size)
	}

	o := applyOptions(opts)
	h, err := o.table.OpenShared(p.fd, p.size, tag)
	if err != nil {
		return nil, err
	}

	pb := &PixelBuffer{table: o.table, opts: o}
	pb.state.Store(&state{
		handle: h,
		info: ImageInfo{
			Size:        Size{Width: p.width, Height: p.height},
			PixelFormat: p.format,
			AlphaType:   p.alpha,
			Allocator:   SharedMemoryAllocator,
		},
		layout:     l,
		colorSpace: p.colorSpace,
	})
	return pb, nil
}
