// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixelmap/internal/image"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Width: 4, Height: 4, Format: image.FormatNV21}, true},
		{"zero width", Config{Width: 0, Height: 4, Format: image.FormatNV21}, false},
		{"negative height", Config{Width: 4, Height: -1, Format: image.FormatNV21}, false},
		{"unknown format", Config{Width: 4, Height: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPlaneTextureFormat(t *testing.T) {
	tests := []struct {
		format image.Format
		plane  int
		want   gputypes.TextureFormat
	}{
		{image.FormatNV21, 0, gputypes.TextureFormatR8Unorm},
		{image.FormatNV21, 1, gputypes.TextureFormatRG8Unorm},
		{image.FormatI420, 2, gputypes.TextureFormatR8Unorm},
		{image.FormatYCbCrP010, 0, gputypes.TextureFormatR16Unorm},
		{image.FormatYCrCbP010, 1, gputypes.TextureFormatRG16Unorm},
		{image.FormatRGBA8888, 0, gputypes.TextureFormatRGBA8Unorm},
		{image.FormatBGRA8888, 0, gputypes.TextureFormatBGRA8Unorm},
		{image.FormatRGB565, 0, gputypes.TextureFormatUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			l, err := image.NewLayout(tt.format, 4, 4)
			if err != nil {
				t.Fatalf("NewLayout failed: %v", err)
			}
			if got := PlaneTextureFormat(tt.format, l.Planes[tt.plane]); got != tt.want {
				t.Errorf("plane %d = %v, want %v", tt.plane, got, tt.want)
			}
		})
	}
}

func TestNewDescriptor(t *testing.T) {
	l, err := image.NewAlignedLayout(image.FormatNV12, 100, 50, RowAlignment)
	if err != nil {
		t.Fatalf("NewAlignedLayout failed: %v", err)
	}

	d, err := NewDescriptor(l, DefaultUsage, "frame")
	if err != nil {
		t.Fatalf("NewDescriptor failed: %v", err)
	}
	if len(d.Planes) != 2 {
		t.Fatalf("planes = %d, want 2", len(d.Planes))
	}
	if !d.RowsAligned() {
		t.Error("aligned layout should produce aligned rows")
	}

	chroma := d.Planes[1]
	if chroma.Texture.Size.Width != 50 || chroma.Texture.Size.Height != 25 {
		t.Errorf("chroma size = %dx%d, want 50x25",
			chroma.Texture.Size.Width, chroma.Texture.Size.Height)
	}
	if chroma.Data.Offset != uint64(l.Planes[1].Offset) {
		t.Errorf("chroma offset = %d, want %d", chroma.Data.Offset, l.Planes[1].Offset)
	}
	if chroma.Texture.Label != "frame plane 1" {
		t.Errorf("label = %q", chroma.Texture.Label)
	}

	tight, _ := image.NewLayout(image.FormatNV12, 100, 50)
	td, _ := NewDescriptor(tight, DefaultUsage, "tight")
	if td.RowsAligned() {
		t.Error("100-byte rows should not be reported aligned")
	}
}

func TestNewDescriptor_Unsupported(t *testing.T) {
	l, _ := image.NewLayout(image.FormatRGB888, 4, 4)
	if _, err := NewDescriptor(l, DefaultUsage, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewDescriptor(RGB888) = %v, want ErrInvalidConfig", err)
	}
}
