package image

import "testing"

// rampPlane returns a width x height single-channel plane whose sample at
// (x, y) is x*xStep + y*yStep.
func rampPlane(t *testing.T, width, height, sampleBytes int, xStep, yStep uint16) *PlaneBuf {
	t.Helper()
	stride := width * sampleBytes
	p, err := FromRaw(make([]byte, stride*height), width, height, stride, 1, sampleBytes)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	for y := range height {
		for x := range width {
			p.PutSample(x, y, 0, uint16(x)*xStep+uint16(y)*yStep)
		}
	}
	return p
}

func TestSampleNearest(t *testing.T) {
	p := rampPlane(t, 4, 4, 1, 10, 50)

	tests := []struct {
		name   string
		fx, fy float64
		want   uint16
	}{
		{"top-left", 0.2, 0.2, 0},
		{"inside (2,1)", 2.7, 1.1, 70},
		{"clamped right", 9, 0, 30},
		{"clamped negative", -3, -3, 0},
		{"bottom-right", 3.99, 3.99, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleNearest(p, tt.fx, tt.fy, 0); got != tt.want {
				t.Errorf("SampleNearest(%v, %v) = %d, want %d", tt.fx, tt.fy, got, tt.want)
			}
		})
	}
}

func TestSampleBilinear(t *testing.T) {
	p := rampPlane(t, 4, 1, 1, 50, 0)

	tests := []struct {
		name string
		fx   float64
		want uint16
	}{
		{"element center", 1.5, 50},
		{"midway", 2.0, 75},
		{"left edge clamps", 0.0, 0},
		{"right edge clamps", 4.0, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleBilinear(p, tt.fx, 0.5, 0); got != tt.want {
				t.Errorf("SampleBilinear(%v) = %d, want %d", tt.fx, got, tt.want)
			}
		})
	}
}

func TestSampleBilinear16(t *testing.T) {
	p := rampPlane(t, 2, 1, 2, 40000, 0)
	if got := SampleBilinear(p, 1.0, 0.5, 0); got != 20000 {
		t.Errorf("SampleBilinear 16-bit midway = %d, want 20000", got)
	}
}

func TestSampleBicubic(t *testing.T) {
	p := rampPlane(t, 6, 6, 1, 20, 0)

	// Catmull-Rom reproduces linear ramps exactly away from the edges.
	if got := SampleBicubic(p, 3.0, 3.0, 0); got != 50 {
		t.Errorf("SampleBicubic(3,3) = %d, want 50", got)
	}
	if got := SampleBicubic(p, 2.5, 2.5, 0); got != 40 {
		t.Errorf("SampleBicubic at center = %d, want 40", got)
	}
}

func TestSampleBicubicClampsOvershoot(t *testing.T) {
	p, _ := FromRaw([]byte{0, 0, 255, 255}, 4, 1, 4, 1, 1)
	for fx := 0.0; fx <= 4.0; fx += 0.25 {
		got := SampleBicubic(p, fx, 0.5, 0)
		if got > 255 {
			t.Fatalf("SampleBicubic(%v) = %d, exceeds 8-bit range", fx, got)
		}
	}
}

func TestSampleDispatch(t *testing.T) {
	p := rampPlane(t, 4, 4, 1, 10, 0)
	tests := []struct {
		mode InterpolationMode
		want uint16
	}{
		{InterpNearest, SampleNearest(p, 1.5, 1.5, 0)},
		{InterpBilinear, SampleBilinear(p, 1.5, 1.5, 0)},
		{InterpBicubic, SampleBicubic(p, 1.5, 1.5, 0)},
		{InterpolationMode(99), 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := Sample(p, 1.5, 1.5, 0, tt.mode); got != tt.want {
				t.Errorf("Sample(%v) = %d, want %d", tt.mode, got, tt.want)
			}
		})
	}
}

func TestInterpolationModeString(t *testing.T) {
	tests := []struct {
		mode InterpolationMode
		want string
	}{
		{InterpNearest, "Nearest"},
		{InterpBilinear, "Bilinear"},
		{InterpBicubic, "Bicubic"},
		{InterpolationMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
