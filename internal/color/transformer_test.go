package color

import (
	"errors"
	"testing"
)

func TestMatrixTransformer_Identity(t *testing.T) {
	src := []byte{10, 20, 30, 40, 200, 150, 100, 255}
	dst := make([]byte, len(src))

	if err := (MatrixTransformer{}).Transform(dst, src, 2, 1, SRGB, SRGB); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("identity transform changed pixels: %v -> %v", src, dst)
		}
	}
}

func TestMatrixTransformer_SRGBToP3(t *testing.T) {
	// Pure sRGB red in BGRA order.
	src := []byte{0, 0, 255, 200}
	dst := make([]byte, 4)

	if err := (MatrixTransformer{}).Transform(dst, src, 1, 1, SRGB, DisplayP3); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	// sRGB red is roughly (234, 51, 35) in Display P3.
	want := []byte{35, 51, 234, 200}
	for i := range want {
		d := int(dst[i]) - int(want[i])
		if d < -2 || d > 2 {
			t.Fatalf("sRGB red in P3 = %v, want about %v", dst, want)
		}
	}
}

func TestMatrixTransformer_WhiteStaysWhite(t *testing.T) {
	src := []byte{255, 255, 255, 255}
	dst := make([]byte, 4)
	if err := (MatrixTransformer{}).Transform(dst, src, 1, 1, SRGB, AdobeRGB); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range 3 {
		if dst[i] < 254 {
			t.Errorf("white -> %v, want white", dst)
		}
	}
}

func TestMatrixTransformer_Errors(t *testing.T) {
	buf := make([]byte, 16)
	tests := []struct {
		name     string
		dst, src []byte
		w, h     int
		from, to Space
		wantErr  error
	}{
		{"unknown source", buf, buf, 2, 2, Space{}, SRGB, ErrUnsupportedSpace},
		{"unknown target", buf, buf, 2, 2, SRGB, Space{Primaries: PrimariesBT709}, ErrUnsupportedSpace},
		{"short dst", buf[:8], buf, 2, 2, SRGB, DisplayP3, ErrBufferSize},
		{"zero width", buf, buf, 0, 2, SRGB, DisplayP3, ErrBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (MatrixTransformer{}).Transform(tt.dst, tt.src, tt.w, tt.h, tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Transform() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkMatrixTransformer_1080p(b *testing.B) {
	const w, h = 1920, 1080
	src := make([]byte, w*h*4)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, len(src))
	tr := MatrixTransformer{}

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for b.Loop() {
		_ = tr.Transform(dst, src, w, h, SRGB, DisplayP3)
	}
}
