// Package alloc provides the allocator strategies that own pixel memory.
//
// A Strategy hands out Handles of one Kind: plain heap memory, named shared
// memory that another process can map, or buffers borrowed from a hardware
// surface producer. Strategies are dispatched through a Table indexed by
// Kind. Every Handle is released exactly once through the strategy that
// produced it.
package alloc

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/pixelmap/internal/image"
)

// Kind identifies an allocator back-end.
type Kind uint8

const (
	// Heap is zero-initialized Go memory.
	Heap Kind = iota

	// SharedMemory is a sealed memfd region mapped read-write and shared.
	SharedMemory

	// HardwareSurface is a buffer owned by a surface producer.
	HardwareSurface

	kindCount
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Heap:
		return "Heap"
	case SharedMemory:
		return "SharedMemory"
	case HardwareSurface:
		return "HardwareSurface"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsValid reports whether k names a known back-end.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// Errors. Every allocation failure matches ErrAllocation.
var (
	// ErrAllocation is the root of every allocation failure.
	ErrAllocation = errors.New("alloc: allocation failed")

	// ErrOutOfMemory is returned when a heap limit would be exceeded.
	ErrOutOfMemory = fmt.Errorf("%w: out of memory", ErrAllocation)

	// ErrShmCreate is returned when the shared memory region cannot be
	// created or sized.
	ErrShmCreate = fmt.Errorf("%w: shared memory create", ErrAllocation)

	// ErrShmProtect is returned when the region cannot be sealed.
	ErrShmProtect = fmt.Errorf("%w: shared memory protect", ErrAllocation)

	// ErrShmMap is returned when the region cannot be mapped.
	ErrShmMap = fmt.Errorf("%w: shared memory map", ErrAllocation)

	// ErrSurfaceUnavailable is returned when no surface producer can serve
	// the request, or the buffer it returned is unusable.
	ErrSurfaceUnavailable = fmt.Errorf("%w: surface unavailable", ErrAllocation)

	// ErrUnsupportedKind is returned for kinds with no registered strategy
	// or not supported on this platform.
	ErrUnsupportedKind = fmt.Errorf("%w: unsupported kind", ErrAllocation)

	// ErrInvalidRequest is returned for non-positive sizes or dimensions.
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrAllocation)

	// ErrReleased is returned when a handle is released a second time.
	ErrReleased = errors.New("alloc: handle already released")
)

// Request describes an allocation.
type Request struct {
	// Size is the number of bytes needed.
	Size int

	// Tag labels the allocation for diagnostics and shared memory names.
	Tag string

	// Width, Height and Format describe the image. Strategies that impose
	// their own layout (hardware surfaces) allocate from these instead of Size.
	Width  int
	Height int
	Format image.Format
}

// Extended is the side payload a strategy attaches to a handle, such as a
// shared memory descriptor or a surface reference. It is released together
// with the handle.
type Extended interface {
	Kind() Kind
}

// Strategy allocates and releases handles of one Kind.
//
// Implementations must be safe for concurrent use.
type Strategy interface {
	// Kind returns the back-end this strategy serves.
	Kind() Kind

	// Allocate returns a new handle of at least req.Size bytes.
	Allocate(req Request) (*Handle, error)

	// Release frees the handle. A second call returns ErrReleased.
	Release(h *Handle) error
}

// Handle is one allocation.
//
// Data stays valid for reads and writes until Release. For hardware
// surfaces validity is governed by the surface reference the handle holds.
type Handle struct {
	data     []byte
	size     int
	tag      string
	kind     Kind
	extended Extended
	layout   *image.Layout

	owner    Strategy
	released atomic.Bool
}

// NewHandle creates a handle owned by s. Strategies call it from Allocate.
// layout is nil unless the back-end imposes its own strides.
func NewHandle(s Strategy, data []byte, tag string, ext Extended, layout *image.Layout) *Handle {
	return &Handle{
		data:     data,
		size:     len(data),
		tag:      tag,
		kind:     s.Kind(),
		extended: ext,
		layout:   layout,
		owner:    s,
	}
}

// Data returns the pixel memory.
func (h *Handle) Data() []byte { return h.data }

// Size returns the usable size in bytes.
func (h *Handle) Size() int { return h.size }

// Tag returns the allocation label.
func (h *Handle) Tag() string { return h.tag }

// Kind returns the back-end that owns the memory.
func (h *Handle) Kind() Kind { return h.kind }

// Extended returns the side payload, or nil.
func (h *Handle) Extended() Extended { return h.extended }

// Layout returns the layout imposed by the back-end, if any.
func (h *Handle) Layout() (image.Layout, bool) {
	if h.layout == nil {
		return image.Layout{}, false
	}
	return *h.layout, true
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool { return h.released.Load() }

// Release returns the memory to the owning strategy.
func (h *Handle) Release() error {
	return h.owner.Release(h)
}

// markReleased flips the released flag. It returns ErrReleased if the
// handle was already released, or an error if s does not own it.
func (h *Handle) markReleased(s Strategy) error {
	if h.owner != s {
		return fmt.Errorf("alloc: %s handle %q released by foreign strategy", h.kind, h.tag)
	}
	if !h.released.CompareAndSwap(false, true) {
		return ErrReleased
	}
	return nil
}
