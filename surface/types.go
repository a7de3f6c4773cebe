// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixelmap/internal/image"
)

// RowAlignment is the row pitch granularity required for GPU
// buffer-to-texture copies.
const RowAlignment = 256

// PlaneDescriptor describes one plane as a GPU texture.
type PlaneDescriptor struct {
	// Texture describes the texture the plane maps to.
	Texture gputypes.TextureDescriptor

	// Data locates the plane inside the buffer.
	Data gputypes.TextureDataLayout
}

// Descriptor describes every plane of a buffer for GPU import.
type Descriptor struct {
	Format image.Format
	Planes []PlaneDescriptor
}

// NewDescriptor builds the per-plane descriptors for a layout.
func NewDescriptor(l image.Layout, usage gputypes.TextureUsage, label string) (Descriptor, error) {
	d := Descriptor{
		Format: l.Format,
		Planes: make([]PlaneDescriptor, len(l.Planes)),
	}
	for i, p := range l.Planes {
		tf := PlaneTextureFormat(l.Format, p)
		if tf == gputypes.TextureFormatUndefined {
			return Descriptor{}, fmt.Errorf("%w: no texture format for %s plane %d",
				ErrInvalidConfig, l.Format, i)
		}
		//nolint:gosec // G115: layout sizes are bounded by MaxInt32
		d.Planes[i] = PlaneDescriptor{
			Texture: gputypes.TextureDescriptor{
				Label: fmt.Sprintf("%s plane %d", label, i),
				Size: gputypes.Extent3D{
					Width:              uint32(p.Width),
					Height:             uint32(p.Height),
					DepthOrArrayLayers: 1,
				},
				MipLevelCount: 1,
				SampleCount:   1,
				Dimension:     gputypes.TextureDimension2D,
				Format:        tf,
				Usage:         usage,
			},
			Data: gputypes.TextureDataLayout{
				Offset:       uint64(p.Offset),
				BytesPerRow:  uint32(p.Stride),
				RowsPerImage: uint32(p.Height),
			},
		}
	}
	return d, nil
}

// PlaneTextureFormat returns the texture format a plane of format f can be
// sampled as, or TextureFormatUndefined when there is none.
func PlaneTextureFormat(f image.Format, p image.Plane) gputypes.TextureFormat {
	switch f {
	case image.FormatRGBA8888:
		return gputypes.TextureFormatRGBA8Unorm
	case image.FormatBGRA8888:
		return gputypes.TextureFormatBGRA8Unorm
	case image.FormatRGB888, image.FormatRGB565:
		return gputypes.TextureFormatUndefined
	}

	switch {
	case p.Channels == 1 && p.SampleBytes == 1:
		return gputypes.TextureFormatR8Unorm
	case p.Channels == 2 && p.SampleBytes == 1:
		return gputypes.TextureFormatRG8Unorm
	case p.Channels == 1 && p.SampleBytes == 2:
		return gputypes.TextureFormatR16Unorm
	case p.Channels == 2 && p.SampleBytes == 2:
		return gputypes.TextureFormatRG16Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// RowsAligned reports whether every plane stride satisfies RowAlignment.
func (d Descriptor) RowsAligned() bool {
	for _, p := range d.Planes {
		if p.Data.BytesPerRow%RowAlignment != 0 {
			return false
		}
	}
	return true
}
