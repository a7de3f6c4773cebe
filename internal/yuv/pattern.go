package yuv

// Pattern identifies a synthetic test image.
type Pattern uint8

const (
	// PatternRamp fills luma with (x + 3y) modulo the code range and sets
	// chroma to its neutral value.
	PatternRamp Pattern = iota

	// PatternCheckerboard fills luma and chroma with a checkerboard of
	// 8x8 luma cells, with a distinct value per cell column.
	PatternCheckerboard
)

// checkerCell is the checkerboard cell size in luma samples.
const checkerCell = 8

// Fill writes a synthetic pattern into every plane of f.
func Fill(f Frame, p Pattern) error {
	planes, err := f.planes()
	if err != nil {
		return err
	}

	format := f.Layout.Format
	shift := codeShift(format)
	codes := 1 << format.BitsPerComponent()
	mid := uint16(codes/2) << shift

	luma := planes[0]
	for y := range luma.Height() {
		for x := range luma.Width() {
			var v int
			switch p {
			case PatternCheckerboard:
				v = checker(x/checkerCell, y/checkerCell, codes)
			default:
				v = (x + 3*y) % codes
			}
			luma.PutSample(x, y, 0, uint16(v)<<shift)
		}
	}

	cb, cr := chromaPlanes(format, planes)
	for y := range cb.plane.Height() {
		for x := range cb.plane.Width() {
			u, v := mid, mid
			if p == PatternCheckerboard {
				cell := checkerCell / 2
				u = uint16(checker(x/cell, y/cell, codes)) << shift
				v = uint16((x*7+y*13)%codes) << shift
			}
			cb.plane.PutSample(x, y, cb.c, u)
			cr.plane.PutSample(x, y, cr.c, v)
		}
	}
	return nil
}

// checker returns a code for cell (cx, cy): dark or bright by parity,
// offset by the cell column so mirrored images differ from the original.
func checker(cx, cy, codes int) int {
	base := codes / 8
	if (cx+cy)%2 == 1 {
		base = codes * 5 / 8
	}
	return (base + cx*3 + cy) % codes
}

// PlaneSamples copies channel c of plane i into a dense slice, row by row.
// It is used by tools and tests to compare frames independent of stride.
func PlaneSamples(f Frame, i, c int) ([]uint16, error) {
	p, err := f.Layout.Plane(f.Data, i)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, p.Width()*p.Height())
	for y := range p.Height() {
		for x := range p.Width() {
			out = append(out, p.Sample(x, y, c))
		}
	}
	return out, nil
}
