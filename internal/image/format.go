// Package image provides pixel format tables and plane layout computation
// for pixelmap buffers.
//
// The package knows how each supported format splits into planes, how large
// every plane is for given dimensions, and how to view a plane as a strided
// sample grid. It performs no allocation of pixel memory itself.
package image

import "strings"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatUnknown is the zero value and never valid.
	FormatUnknown Format = iota

	// FormatNV21 is 8-bit YCrCb 4:2:0 semi-planar (Y plane, interleaved VU plane).
	FormatNV21

	// FormatNV12 is 8-bit YCbCr 4:2:0 semi-planar (Y plane, interleaved UV plane).
	FormatNV12

	// FormatI420 is 8-bit YUV 4:2:0 planar (Y, U, V planes).
	FormatI420

	// FormatYV12 is 8-bit YVU 4:2:0 planar (Y, V, U planes).
	FormatYV12

	// FormatYCbCrP010 is 10-bit YCbCr 4:2:0 semi-planar.
	// Every sample occupies a little-endian 16-bit word, value in the high 10 bits.
	FormatYCbCrP010

	// FormatYCrCbP010 is the VU-ordered variant of FormatYCbCrP010.
	FormatYCrCbP010

	// FormatRGBA8888 is 32-bit RGBA (4 bytes per pixel).
	FormatRGBA8888

	// FormatBGRA8888 is 32-bit BGRA (4 bytes per pixel).
	// Used as the intermediate representation for color conversion.
	FormatBGRA8888

	// FormatRGB888 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB888

	// FormatRGB565 is 16-bit packed RGB (one little-endian word per pixel).
	FormatRGB565

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Family groups formats by how they split into planes.
type Family uint8

const (
	// FamilyPacked stores all channels of a pixel together in one plane.
	FamilyPacked Family = iota

	// FamilySemiPlanar stores luma in one plane and both chroma channels
	// interleaved in a second plane.
	FamilySemiPlanar

	// FamilyPlanar stores luma and each chroma channel in its own plane.
	FamilyPlanar
)

// ChromaOrder tells which chroma channel comes first, either inside an
// interleaved plane or in plane order.
type ChromaOrder uint8

const (
	// ChromaUV stores Cb before Cr.
	ChromaUV ChromaOrder = iota
	// ChromaVU stores Cr before Cb.
	ChromaVU
)

// FlipPath selects the routine used to flip a format.
type FlipPath uint8

const (
	// FlipOptimized uses whole-row copies and in-row reversal.
	FlipOptimized FlipPath = iota

	// FlipLegacy uses the generic per-sample routine.
	FlipLegacy
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the canonical format name.
	Name string

	// Family tells how the format is split into planes.
	Family Family

	// BytesPerSample is the storage size of one sample.
	// For YUV formats this is one component; for packed formats it is the
	// size of one whole pixel except RGB565, which is one 16-bit word.
	BytesPerSample int

	// Channels is the number of channels stored per pixel in a packed format.
	// Zero for YUV formats.
	Channels int

	// BitsPerComponent is the number of significant bits per component.
	BitsPerComponent int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsYUV indicates a luma/chroma format with 4:2:0 subsampling.
	IsYUV bool

	// ChromaOrder is the order of the chroma channels.
	ChromaOrder ChromaOrder

	// FlipPath is the flip routine used for this format.
	FlipPath FlipPath
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatUnknown: {Name: "Unknown"},
	FormatNV21: {
		Name:             "NV21",
		Family:           FamilySemiPlanar,
		BytesPerSample:   1,
		BitsPerComponent: 8,
		IsYUV:            true,
		ChromaOrder:      ChromaVU,
	},
	FormatNV12: {
		Name:             "NV12",
		Family:           FamilySemiPlanar,
		BytesPerSample:   1,
		BitsPerComponent: 8,
		IsYUV:            true,
		ChromaOrder:      ChromaUV,
	},
	FormatI420: {
		Name:             "I420",
		Family:           FamilyPlanar,
		BytesPerSample:   1,
		BitsPerComponent: 8,
		IsYUV:            true,
		ChromaOrder:      ChromaUV,
	},
	FormatYV12: {
		Name:             "YV12",
		Family:           FamilyPlanar,
		BytesPerSample:   1,
		BitsPerComponent: 8,
		IsYUV:            true,
		ChromaOrder:      ChromaVU,
	},
	FormatYCbCrP010: {
		Name:             "YCbCr_P010",
		Family:           FamilySemiPlanar,
		BytesPerSample:   2,
		BitsPerComponent: 10,
		IsYUV:            true,
		ChromaOrder:      ChromaUV,
		FlipPath:         FlipLegacy,
	},
	FormatYCrCbP010: {
		Name:             "YCrCb_P010",
		Family:           FamilySemiPlanar,
		BytesPerSample:   2,
		BitsPerComponent: 10,
		IsYUV:            true,
		ChromaOrder:      ChromaVU,
		FlipPath:         FlipLegacy,
	},
	FormatRGBA8888: {
		Name:             "RGBA_8888",
		Family:           FamilyPacked,
		BytesPerSample:   4,
		Channels:         4,
		BitsPerComponent: 8,
		HasAlpha:         true,
	},
	FormatBGRA8888: {
		Name:             "BGRA_8888",
		Family:           FamilyPacked,
		BytesPerSample:   4,
		Channels:         4,
		BitsPerComponent: 8,
		HasAlpha:         true,
	},
	FormatRGB888: {
		Name:             "RGB_888",
		Family:           FamilyPacked,
		BytesPerSample:   3,
		Channels:         3,
		BitsPerComponent: 8,
	},
	FormatRGB565: {
		Name:             "RGB_565",
		Family:           FamilyPacked,
		BytesPerSample:   2,
		Channels:         1,
		BitsPerComponent: 5,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerSample returns the storage size of one sample.
func (f Format) BytesPerSample() int {
	return f.Info().BytesPerSample
}

// BitsPerComponent returns the number of significant bits per component.
func (f Format) BitsPerComponent() int {
	return f.Info().BitsPerComponent
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsYUV returns true for the 4:2:0 luma/chroma formats.
func (f Format) IsYUV() bool {
	return f.Info().IsYUV
}

// Family returns the plane family of the format.
func (f Format) Family() Family {
	return f.Info().Family
}

// ChromaOrder returns the chroma channel order of the format.
func (f Format) ChromaOrder() ChromaOrder {
	return f.Info().ChromaOrder
}

// FlipPath returns the flip routine registered for the format.
func (f Format) FlipPath() FlipPath {
	return f.Info().FlipPath
}

// PlaneCount returns the number of planes the format is stored in.
func (f Format) PlaneCount() int {
	switch f.Family() {
	case FamilySemiPlanar:
		return 2
	case FamilyPlanar:
		return 3
	default:
		if !f.IsValid() {
			return 0
		}
		return 1
	}
}

// String returns a string representation of the format.
func (f Format) String() string {
	if f >= formatCount {
		return "Unknown"
	}
	return formatInfoTable[f].Name
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f > FormatUnknown && f < formatCount
}

// ParseFormat looks a format up by name, ignoring case, '-' and '_'.
func ParseFormat(name string) (Format, bool) {
	want := normalizeName(name)
	for f := FormatUnknown + 1; f < formatCount; f++ {
		if normalizeName(formatInfoTable[f].Name) == want {
			return f, true
		}
	}
	return FormatUnknown, false
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}
