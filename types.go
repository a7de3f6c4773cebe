package pixelmap

import (
	"fmt"

	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/color"
	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// PixelFormat identifies the memory layout of pixels.
type PixelFormat = image.Format

// Pixel formats.
const (
	FormatUnknown   = image.FormatUnknown
	FormatNV21      = image.FormatNV21
	FormatNV12      = image.FormatNV12
	FormatI420      = image.FormatI420
	FormatYV12      = image.FormatYV12
	FormatYCbCrP010 = image.FormatYCbCrP010
	FormatYCrCbP010 = image.FormatYCrCbP010
	FormatRGBA8888  = image.FormatRGBA8888
	FormatBGRA8888  = image.FormatBGRA8888
	FormatRGB888    = image.FormatRGB888
	FormatRGB565    = image.FormatRGB565
)

// ParseFormat looks up a pixel format by name, e.g. "NV21" or "ycbcr_p010".
func ParseFormat(name string) (PixelFormat, bool) {
	return image.ParseFormat(name)
}

// AllocatorKind identifies the back-end that owns a buffer's memory.
type AllocatorKind = alloc.Kind

// Allocator kinds.
const (
	HeapAllocator            = alloc.Heap
	SharedMemoryAllocator    = alloc.SharedMemory
	HardwareSurfaceAllocator = alloc.HardwareSurface
)

// ColorSpace describes primaries, transfer function, YUV matrix and range.
type ColorSpace = color.Space

// ColorTransformer converts packed BGRA pixels between color spaces.
type ColorTransformer = color.Transformer

// Layout describes where each plane lives inside a buffer.
type Layout = image.Layout

// Pattern selects a synthetic test image for FillPattern.
type Pattern = yuv.Pattern

// Synthetic patterns.
const (
	PatternRamp         = yuv.PatternRamp
	PatternCheckerboard = yuv.PatternCheckerboard
)

// AlphaType describes how alpha relates to the color channels.
type AlphaType uint8

const (
	// AlphaUnknown means the alpha interpretation is not known.
	AlphaUnknown AlphaType = iota

	// AlphaOpaque means every pixel is opaque.
	AlphaOpaque

	// AlphaPremul means color channels are premultiplied by alpha.
	AlphaPremul

	// AlphaUnpremul means color channels are not premultiplied.
	AlphaUnpremul
)

// String returns the alpha type name.
func (a AlphaType) String() string {
	switch a {
	case AlphaOpaque:
		return "Opaque"
	case AlphaPremul:
		return "Premul"
	case AlphaUnpremul:
		return "Unpremul"
	default:
		return "Unknown"
	}
}

// Size is an image size in pixels.
type Size struct {
	Width  int32
	Height int32
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ImageInfo is the metadata of a pixel buffer.
type ImageInfo struct {
	Size        Size
	PixelFormat PixelFormat
	AlphaType   AlphaType
	Allocator   AllocatorKind
}

// AntiAliasing selects the resampling quality of Scale and Resize.
type AntiAliasing uint8

const (
	// AntiAliasNone uses nearest-neighbor sampling.
	AntiAliasNone AntiAliasing = iota

	// AntiAliasLow uses approximate bilinear sampling.
	AntiAliasLow

	// AntiAliasMedium uses bilinear sampling.
	AntiAliasMedium

	// AntiAliasHigh uses Catmull-Rom bicubic sampling.
	AntiAliasHigh
)

// String returns the level name.
func (a AntiAliasing) String() string {
	switch a {
	case AntiAliasNone:
		return "None"
	case AntiAliasLow:
		return "Low"
	case AntiAliasMedium:
		return "Medium"
	case AntiAliasHigh:
		return "High"
	default:
		return fmt.Sprintf("AntiAliasing(%d)", a)
	}
}

// filter maps the level to the plane resampling kernel.
func (a AntiAliasing) filter() yuv.Filter {
	switch a {
	case AntiAliasLow:
		return yuv.FilterApproxBiLinear
	case AntiAliasMedium:
		return yuv.FilterBiLinear
	case AntiAliasHigh:
		return yuv.FilterCatmullRom
	default:
		return yuv.FilterNearest
	}
}
