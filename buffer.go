package pixelmap

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/color"
	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// state is one immutable generation of a PixelBuffer. A transform builds a
// new state and installs it with a single atomic store.
type state struct {
	handle     *alloc.Handle
	info       ImageInfo
	layout     image.Layout
	colorSpace color.Space
	version    uint64
}

func (s *state) frame() yuv.Frame {
	return yuv.Frame{Layout: s.layout, Data: s.handle.Data()}
}

// PixelBuffer is an image whose backing memory is owned by an allocator
// strategy. Transforms never edit the current memory in place: they
// allocate a new handle of the same kind, write the result into it and
// swap it in, so a reader sees either the old or the new image.
//
// Writers are serialized internally. Readers use CurrentHandle.
type PixelBuffer struct {
	mu    sync.Mutex
	state atomic.Pointer[state]

	table *alloc.Table
	opts  options
}

// Snapshot is a consistent view of a PixelBuffer at one version.
//
// Data stays valid until the next committed transform or Release, whichever
// comes first. For hardware surfaces it is additionally bounded by the
// surface reference held in Extended.
type Snapshot struct {
	Data       []byte
	Size       int
	Extended   alloc.Extended
	Kind       AllocatorKind
	Version    uint64
	Info       ImageInfo
	Layout     Layout
	ColorSpace ColorSpace
}

// CreateBuffer allocates a zeroed width x height buffer in format on the
// allocator kind. tag labels the allocation.
func CreateBuffer(format PixelFormat, width, height int32, kind AllocatorKind, tag string, opts ...Option) (*PixelBuffer, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: format %s", ErrInvalidArgument, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
	}

	o := applyOptions(opts)
	pb := &PixelBuffer{table: o.table, opts: o}

	l, err := pb.layoutFor(format, int(width), int(height))
	if err != nil {
		return nil, err
	}
	h, l, err := pb.allocate(kind, l, tag)
	if err != nil {
		return nil, err
	}

	st := &state{
		handle: h,
		info: ImageInfo{
			Size:        Size{Width: width, Height: height},
			PixelFormat: format,
			AlphaType:   o.alphaType,
			Allocator:   kind,
		},
		layout:     l,
		colorSpace: o.colorSpace,
	}
	tagSurface(st)
	pb.state.Store(st)
	return pb, nil
}

// CurrentHandle returns the current generation. After Release it returns
// the zero Snapshot.
func (pb *PixelBuffer) CurrentHandle() Snapshot {
	st := pb.state.Load()
	if st == nil {
		return Snapshot{}
	}
	return Snapshot{
		Data:       st.handle.Data(),
		Size:       st.handle.Size(),
		Extended:   st.handle.Extended(),
		Kind:       st.handle.Kind(),
		Version:    st.version,
		Info:       st.info,
		Layout:     st.layout,
		ColorSpace: st.colorSpace,
	}
}

// Info returns the image metadata.
func (pb *PixelBuffer) Info() ImageInfo {
	if st := pb.state.Load(); st != nil {
		return st.info
	}
	return ImageInfo{}
}

// Version returns the number of committed mutations.
func (pb *PixelBuffer) Version() uint64 {
	if st := pb.state.Load(); st != nil {
		return st.version
	}
	return 0
}

// ColorSpace returns the current color space.
func (pb *PixelBuffer) ColorSpace() ColorSpace {
	if st := pb.state.Load(); st != nil {
		return st.colorSpace
	}
	return ColorSpace{}
}

// Released reports whether Release has been called.
func (pb *PixelBuffer) Released() bool {
	return pb.state.Load() == nil
}

// Release frees the current handle. Every later call to a mutating method
// returns ErrReleased.
func (pb *PixelBuffer) Release() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	st := pb.state.Swap(nil)
	if st == nil {
		return ErrReleased
	}
	return pb.table.Release(st.handle)
}

// current returns the state a writer works from. The caller holds mu.
func (pb *PixelBuffer) current() (*state, error) {
	st := pb.state.Load()
	if st == nil {
		return nil, ErrReleased
	}
	return st, nil
}

// layoutFor computes the layout of a heap or shared memory buffer.
func (pb *PixelBuffer) layoutFor(format PixelFormat, width, height int) (image.Layout, error) {
	l, err := image.NewAlignedLayout(format, width, height, pb.opts.strideAlign)
	if err != nil {
		return image.Layout{}, fmt.Errorf("pixelmap: layout %s %dx%d: %w", format, width, height, err)
	}
	return l, nil
}

// allocate obtains a handle for l. Back-ends that impose their own strides
// replace l with their layout, which must fit inside the handle.
func (pb *PixelBuffer) allocate(kind AllocatorKind, l image.Layout, tag string) (*alloc.Handle, image.Layout, error) {
	h, err := pb.table.Allocate(kind, alloc.Request{
		Size:   l.Size,
		Tag:    tag,
		Width:  l.Width,
		Height: l.Height,
		Format: l.Format,
	})
	if err != nil {
		return nil, image.Layout{}, err
	}
	if hl, ok := h.Layout(); ok {
		l = hl
	}
	if err := l.Validate(h.Size()); err != nil {
		_ = pb.table.Release(h)
		return nil, image.Layout{}, fmt.Errorf("pixelmap: %s handle %q: %w", kind, tag, err)
	}
	return h, l, nil
}

// transform runs one allocate-compute-swap step: it allocates a handle of
// the current kind for target, lets run fill it from the current frame and
// commits the result. On failure the new handle is released and the buffer
// is unchanged.
func (pb *PixelBuffer) transform(op string, cur *state, target image.Layout, cs color.Space, run func(dst, src yuv.Frame) error) error {
	h, l, err := pb.allocate(cur.info.Allocator, target, op+" ImageData")
	if err != nil {
		Logger().Warn("pixelmap: allocation failed", "op", op, "err", err)
		return err
	}

	if err := run(yuv.Frame{Layout: l, Data: h.Data()}, cur.frame()); err != nil {
		_ = pb.table.Release(h)
		Logger().Warn("pixelmap: transform failed", "op", op, "err", err)
		return err
	}

	info := cur.info
	info.Size = Size{Width: int32(l.Width), Height: int32(l.Height)}
	pb.commit(cur, &state{handle: h, info: info, layout: l, colorSpace: cs})
	return nil
}

// commit installs next as version cur.version+1 and releases the handle of
// cur. The caller holds mu.
func (pb *PixelBuffer) commit(cur, next *state) {
	next.version = cur.version + 1
	tagSurface(next)
	pb.state.Store(next)
	if next.handle != cur.handle {
		_ = pb.table.Release(cur.handle)
	}
}

// tagSurface records the color space on a hardware surface as metadata.
func tagSurface(st *state) {
	if ref, ok := st.handle.Extended().(*alloc.SurfaceRef); ok {
		ref.Buffer().SetColorSpaceType(st.colorSpace.Type())
	}
}
