// Package color describes color spaces of YUV pixel buffers and converts
// pixels between them.
//
// A Space is the tuple (primaries, transfer function, YUV matrix, range)
// plus a display name. Two spaces are numerically equal when the tuple
// matches, regardless of name. The tuple packs into the 32-bit color space
// type carried as surface metadata: primaries | transfer<<8 | matrix<<16 |
// range<<21.
package color

import "strings"

// Primaries identifies the chromaticities of the RGB primaries and white point.
type Primaries uint8

// Known primaries.
const (
	PrimariesUnknown  Primaries = 0
	PrimariesBT709    Primaries = 1
	PrimariesBT601P   Primaries = 2
	PrimariesBT601N   Primaries = 3
	PrimariesBT2020   Primaries = 4
	PrimariesP3DCI    Primaries = 5
	PrimariesP3D65    Primaries = 6
	PrimariesAdobeRGB Primaries = 23
)

// Transfer identifies the transfer function between code values and linear light.
type Transfer uint8

// Known transfer functions.
const (
	TransferUnknown  Transfer = 0
	TransferBT709    Transfer = 1
	TransferSRGB     Transfer = 2
	TransferLinear   Transfer = 3
	TransferPQ       Transfer = 4
	TransferHLG      Transfer = 5
	TransferAdobeRGB Transfer = 6
	TransferGamma22  Transfer = 7
	TransferGamma24  Transfer = 8
)

// Matrix identifies the RGB to YUV coefficients.
type Matrix uint8

// Known matrices.
const (
	MatrixUnknown  Matrix = 0
	MatrixBT709    Matrix = 1
	MatrixBT601P   Matrix = 2
	MatrixBT601N   Matrix = 3
	MatrixBT2020   Matrix = 4
	MatrixAdobeRGB Matrix = 5
)

// Range identifies the quantization range of YUV code values.
type Range uint8

// Known ranges.
const (
	RangeUnknown Range = 0
	RangeFull    Range = 1
	RangeLimited Range = 2
)

// Bit layout of a packed color space type.
const (
	transferOffset = 8
	matrixOffset   = 16
	rangeOffset    = 21

	primariesMask = 0x000000FF
	transferMask  = 0x0000FF00
	matrixMask    = 0x001F0000
	rangeMask     = 0xFFE00000
)

// Space is a named color space.
type Space struct {
	Name      string
	Primaries Primaries
	Transfer  Transfer
	Matrix    Matrix
	Range     Range
}

// Named color spaces.
var (
	SRGB = Space{
		Name: "sRGB", Primaries: PrimariesBT709, Transfer: TransferSRGB,
		Matrix: MatrixBT601N, Range: RangeFull,
	}
	LinearSRGB = Space{
		Name: "Linear sRGB", Primaries: PrimariesBT709, Transfer: TransferLinear,
		Matrix: MatrixBT709, Range: RangeFull,
	}
	DisplayP3 = Space{
		Name: "Display P3", Primaries: PrimariesP3D65, Transfer: TransferSRGB,
		Matrix: MatrixBT601N, Range: RangeFull,
	}
	DCIP3 = Space{
		Name: "DCI-P3", Primaries: PrimariesP3DCI, Transfer: TransferGamma22,
		Matrix: MatrixBT601N, Range: RangeFull,
	}
	AdobeRGB = Space{
		Name: "Adobe RGB", Primaries: PrimariesAdobeRGB, Transfer: TransferAdobeRGB,
		Matrix: MatrixAdobeRGB, Range: RangeFull,
	}
	BT601Limited = Space{
		Name: "BT.601 Limited", Primaries: PrimariesBT601N, Transfer: TransferBT709,
		Matrix: MatrixBT601N, Range: RangeLimited,
	}
	BT709Limited = Space{
		Name: "BT.709 Limited", Primaries: PrimariesBT709, Transfer: TransferBT709,
		Matrix: MatrixBT709, Range: RangeLimited,
	}
	BT2020HLG = Space{
		Name: "BT.2020 HLG", Primaries: PrimariesBT2020, Transfer: TransferHLG,
		Matrix: MatrixBT2020, Range: RangeFull,
	}
	BT2020PQ = Space{
		Name: "BT.2020 PQ", Primaries: PrimariesBT2020, Transfer: TransferPQ,
		Matrix: MatrixBT2020, Range: RangeFull,
	}
)

// namedSpaces lists the spaces recognized by Lookup and SpaceFromType.
var namedSpaces = []Space{
	SRGB, LinearSRGB, DisplayP3, DCIP3, AdobeRGB,
	BT601Limited, BT709Limited, BT2020HLG, BT2020PQ,
}

// Type packs the space into its 32-bit color space type.
func (s Space) Type() uint32 {
	return uint32(s.Primaries) |
		uint32(s.Transfer)<<transferOffset |
		uint32(s.Matrix)<<matrixOffset |
		uint32(s.Range)<<rangeOffset
}

// SpaceFromType unpacks a 32-bit color space type. The name is taken from
// the first named space with the same tuple, or "Custom".
func SpaceFromType(t uint32) Space {
	s := Space{
		Primaries: Primaries(t & primariesMask),
		Transfer:  Transfer((t & transferMask) >> transferOffset),
		Matrix:    Matrix((t & matrixMask) >> matrixOffset),
		Range:     Range((t & rangeMask) >> rangeOffset),
	}
	s.Name = "Custom"
	for _, n := range namedSpaces {
		if n.Equal(s) {
			s.Name = n.Name
			break
		}
	}
	return s
}

// Equal reports whether two spaces have the same primaries, transfer,
// matrix and range. Names are not compared.
func (s Space) Equal(o Space) bool {
	return s.Primaries == o.Primaries &&
		s.Transfer == o.Transfer &&
		s.Matrix == o.Matrix &&
		s.Range == o.Range
}

// IsValid reports whether every component of the space is known.
func (s Space) IsValid() bool {
	_, ok := primariesTable[s.Primaries]
	return ok && s.Transfer.IsValid() && s.Matrix.IsValid() &&
		(s.Range == RangeFull || s.Range == RangeLimited)
}

// String returns the space name.
func (s Space) String() string {
	if s.Name == "" {
		return "Unnamed"
	}
	return s.Name
}

// Lookup finds a named space, ignoring case, spaces, '-', '_' and '.'.
func Lookup(name string) (Space, bool) {
	want := normalize(name)
	for _, s := range namedSpaces {
		if normalize(s.Name) == want {
			return s, true
		}
	}
	return Space{}, false
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
