package pixelmap

import (
	"errors"

	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// Errors returned by pixel buffer operations. Errors from the allocator and
// plane packages are re-exported so callers need only this package for
// errors.Is checks.
var (
	// ErrInvalidArgument is returned for non-positive sizes, non-finite
	// scale factors and unknown formats.
	ErrInvalidArgument = errors.New("pixelmap: invalid argument")

	// ErrUnsupportedFormat is returned when an operation does not apply to
	// the buffer's pixel format.
	ErrUnsupportedFormat = errors.New("pixelmap: unsupported format")

	// ErrReleased is returned by every method after Release.
	ErrReleased = errors.New("pixelmap: buffer released")

	// ErrInvalidParcel is returned by Unmarshal for malformed input.
	ErrInvalidParcel = errors.New("pixelmap: invalid parcel")

	// ErrDimensionOverflow is returned when a size does not fit in int32.
	ErrDimensionOverflow = image.ErrDimensionOverflow

	// ErrAlgorithm is returned when a plane routine fails.
	ErrAlgorithm = yuv.ErrAlgorithm

	// ErrAllocation matches every allocator failure.
	ErrAllocation = alloc.ErrAllocation

	// ErrOutOfMemory is returned when a heap limit would be exceeded.
	ErrOutOfMemory = alloc.ErrOutOfMemory

	// ErrShmCreate, ErrShmProtect and ErrShmMap identify the failing shared
	// memory stage.
	ErrShmCreate  = alloc.ErrShmCreate
	ErrShmProtect = alloc.ErrShmProtect
	ErrShmMap     = alloc.ErrShmMap

	// ErrSurfaceUnavailable is returned when no surface producer can serve
	// an allocation.
	ErrSurfaceUnavailable = alloc.ErrSurfaceUnavailable

	// ErrUnsupportedKind is returned for allocator kinds with no strategy.
	ErrUnsupportedKind = alloc.ErrUnsupportedKind
)
