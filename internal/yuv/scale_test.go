package yuv

import (
	"testing"

	"github.com/gogpu/pixelmap/internal/image"
)

func TestScale_NearestDuplicatesSamples(t *testing.T) {
	src := newFrame(t, image.FormatNV12, 64, 64, 0)
	if err := Fill(src, PatternRamp); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	dst := newFrame(t, image.FormatNV12, 128, 128, 32)

	if err := Scale(dst, src, FilterNearest); err != nil {
		t.Fatalf("Scale failed: %v", err)
	}

	srcLuma, _ := PlaneSamples(src, 0, 0)
	dstLuma, _ := PlaneSamples(dst, 0, 0)
	for x := range 128 {
		if dstLuma[x] != srcLuma[x/2] {
			t.Fatalf("row 0 sample %d = %d, want %d", x, dstLuma[x], srcLuma[x/2])
		}
	}
}

func TestScale_AllFiltersAllFormats(t *testing.T) {
	filters := []Filter{FilterNearest, FilterApproxBiLinear, FilterBiLinear, FilterCatmullRom}
	for _, f := range yuvFormats {
		for _, filter := range filters {
			t.Run(f.String()+"/"+filter.String(), func(t *testing.T) {
				src := newFrame(t, f, 17, 9, 5)
				if err := Fill(src, PatternRamp); err != nil {
					t.Fatalf("Fill failed: %v", err)
				}
				dst := newFrame(t, f, 9, 20, 3)
				if err := Scale(dst, src, filter); err != nil {
					t.Fatalf("Scale failed: %v", err)
				}
			})
		}
	}
}

func TestScale_UniformPlaneStaysUniform(t *testing.T) {
	for _, f := range []image.Format{image.FormatNV21, image.FormatI420, image.FormatYCbCrP010} {
		for _, filter := range []Filter{FilterApproxBiLinear, FilterBiLinear, FilterCatmullRom} {
			t.Run(f.String()+"/"+filter.String(), func(t *testing.T) {
				src := newFrame(t, f, 10, 10, 2)
				planes, _ := src.planes()
				for _, p := range planes {
					for c := range p.Channels() {
						p.Fill(c, 100<<codeShift(f))
					}
				}
				dst := newFrame(t, f, 23, 7, 0)
				if err := Scale(dst, src, filter); err != nil {
					t.Fatalf("Scale failed: %v", err)
				}
				for i, s := range samples(t, dst) {
					for j, v := range s {
						if v != 100<<codeShift(f) {
							t.Fatalf("channel %d sample %d = %d, want %d", i, j, v, 100<<codeShift(f))
						}
					}
				}
			})
		}
	}
}

func TestScale_InterleavedChannelsStaySeparate(t *testing.T) {
	src := newFrame(t, image.FormatNV21, 8, 8, 0)
	planes, _ := src.planes()
	planes[1].Fill(0, 10)
	planes[1].Fill(1, 240)

	dst := newFrame(t, image.FormatNV21, 16, 16, 0)
	if err := Scale(dst, src, FilterCatmullRom); err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	v, _ := PlaneSamples(dst, 1, 0)
	u, _ := PlaneSamples(dst, 1, 1)
	for i := range v {
		if v[i] != 10 || u[i] != 240 {
			t.Fatalf("chroma %d = (%d, %d), want (10, 240)", i, v[i], u[i])
		}
	}
}

func TestScale_P010KeepsCodeAlignment(t *testing.T) {
	for _, f := range []image.Format{image.FormatYCbCrP010, image.FormatYCrCbP010} {
		for _, filter := range []Filter{FilterApproxBiLinear, FilterBiLinear, FilterCatmullRom} {
			t.Run(f.String()+"/"+filter.String(), func(t *testing.T) {
				src := newFrame(t, f, 64, 64, 4)
				if err := Fill(src, PatternCheckerboard); err != nil {
					t.Fatalf("Fill failed: %v", err)
				}
				dst := newFrame(t, f, 96, 96, 0)
				if err := Scale(dst, src, filter); err != nil {
					t.Fatalf("Scale failed: %v", err)
				}
				for i, s := range samples(t, dst) {
					for j, v := range s {
						if v&0x3f != 0 {
							t.Fatalf("channel %d sample %d = %#04x, low 6 bits set", i, j, v)
						}
					}
				}
			})
		}
	}
}

func TestSnapCode(t *testing.T) {
	tests := []struct {
		v     uint16
		shift uint
		want  uint16
	}{
		{0x1234, 0, 0x1234},
		{0x0000, 6, 0x0000},
		{0x001f, 6, 0x0000},
		{0x0020, 6, 0x0040},
		{0x0fc0, 6, 0x0fc0},
		{0xffc0, 6, 0xffc0},
		{0xffe0, 6, 0xffc0},
		{0xffff, 6, 0xffc0},
	}
	for _, tt := range tests {
		if got := snapCode(tt.v, tt.shift); got != tt.want {
			t.Errorf("snapCode(%#04x, %d) = %#04x, want %#04x", tt.v, tt.shift, got, tt.want)
		}
	}
}

func TestFilter_String(t *testing.T) {
	if FilterCatmullRom.String() != "CatmullRom" || Filter(9).String() != "Unknown" {
		t.Error("unexpected Filter names")
	}
}
