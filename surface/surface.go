// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixelmap/internal/image"
)

// Errors.
var (
	// ErrInvalidConfig is returned when a buffer request has non-positive
	// dimensions or an unknown pixel format.
	ErrInvalidConfig = errors.New("surface: invalid config")

	// ErrBufferReleased is returned by Unref on a buffer whose last
	// reference has already been dropped.
	ErrBufferReleased = errors.New("surface: buffer released")
)

// Config describes a buffer request.
type Config struct {
	// Width and Height are the logical image size in pixels.
	Width  int
	Height int

	// Format is the pixel format the buffer will hold.
	Format image.Format

	// Usage is forwarded to the per-plane texture descriptors.
	// Zero means CopySrc | CopyDst | TextureBinding.
	Usage gputypes.TextureUsage

	// Tag is a debug label for the buffer.
	Tag string
}

// DefaultUsage is the texture usage applied when Config.Usage is zero.
const DefaultUsage = gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding

// Validate checks dimensions and format.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if !c.Format.IsValid() {
		return fmt.Errorf("%w: format %s", ErrInvalidConfig, c.Format)
	}
	return nil
}

func (c Config) usage() gputypes.TextureUsage {
	if c.Usage == gputypes.TextureUsageNone {
		return DefaultUsage
	}
	return c.Usage
}

// Buffer is pixel memory owned by a producer.
//
// A Buffer returned by Producer.Request holds one reference. Every Ref
// must be balanced by an Unref; when the count reaches zero the memory
// returns to the producer and Bytes must no longer be used.
//
// Buffers are safe for concurrent reference counting. The pixel bytes
// themselves are not synchronized.
type Buffer interface {
	// Bytes returns the mapped memory. Its length equals Size.
	Bytes() []byte

	// Size returns the true size of the buffer in bytes. It may exceed
	// Layout().Size when the producer over-allocates.
	Size() int

	// Layout returns the plane layout imposed by the producer.
	Layout() image.Layout

	// Descriptor returns the GPU import description of the planes.
	Descriptor() Descriptor

	// Ref adds a reference.
	Ref()

	// Unref drops a reference.
	Unref() error

	// ColorSpaceType returns the packed color space metadata.
	ColorSpaceType() uint32

	// SetColorSpaceType stores packed color space metadata on the buffer.
	SetColorSpaceType(t uint32)
}

// Producer hands out surface buffers.
//
// Implementations must be safe for concurrent use.
type Producer interface {
	// Request returns a new buffer holding one reference.
	Request(cfg Config) (Buffer, error)
}
