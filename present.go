package pixelmap

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/internal/yuv"
)

// ToImage renders the current pixels as non-premultiplied RGBA. YUV
// buffers are decoded with the current color space's matrix and range.
// RGB_888 and RGB_565 buffers return ErrUnsupportedFormat.
func (pb *PixelBuffer) ToImage() (*stdimage.NRGBA, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return nil, err
	}
	return cur.toImage()
}

func (s *state) toImage() (*stdimage.NRGBA, error) {
	format := s.info.PixelFormat
	switch {
	case format.IsYUV():
		w, h := s.layout.Width, s.layout.Height
		bgra, err := image.GetFromDefault(w, h, image.FormatBGRA8888)
		if err != nil {
			return nil, err
		}
		defer image.PutToDefault(bgra, image.FormatBGRA8888)

		if err := yuv.ToBGRA(bgra, s.frame(), yuv.NewCodec(format, s.colorSpace)); err != nil {
			return nil, err
		}
		return image.ToStdImage(bgra, image.FormatBGRA8888)

	case format == FormatRGBA8888 || format == FormatBGRA8888:
		p, err := s.layout.Plane(s.handle.Data(), 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAlgorithm, err)
		}
		return image.ToStdImage(p, format)

	default:
		return nil, fmt.Errorf("%w: cannot render %s", ErrUnsupportedFormat, format)
	}
}

// Present uploads an RGBA rendition of the buffer to a new GPU texture.
func (pb *PixelBuffer) Present(tc gpucontext.TextureCreator) (gpucontext.Texture, error) {
	img, err := pb.ToImage()
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	tex, err := tc.NewTextureFromRGBA(b.Dx(), b.Dy(), img.Pix)
	if err != nil {
		return nil, fmt.Errorf("pixelmap: NewTextureFromRGBA failed: %w", err)
	}
	return tex, nil
}

// PresentTo replaces the contents of an existing texture of the same size
// with an RGBA rendition of the buffer.
func (pb *PixelBuffer) PresentTo(u gpucontext.TextureUpdater) error {
	img, err := pb.ToImage()
	if err != nil {
		return err
	}
	if err := u.UpdateData(img.Pix); err != nil {
		return fmt.Errorf("pixelmap: UpdateData failed: %w", err)
	}
	return nil
}
