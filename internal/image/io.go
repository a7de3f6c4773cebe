package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage loads an image file into a tightly packed RGBA_8888 plane.
// PNG, JPEG, BMP and TIFF are recognized by content.
func LoadImage(path string) (*PlaneBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*PlaneBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// FromStdImage converts a standard library image into an RGBA_8888 plane.
func FromStdImage(img image.Image) (*PlaneBuf, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf, err := NewPackedBuf(width, height, FormatRGBA8888)
	if err != nil {
		return nil, err
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := y * nrgba.Stride
			copy(buf.Row(y), nrgba.Pix[start:start+width*4])
		}
		return buf, nil
	}

	for y := range height {
		row := buf.Row(y)
		for x := range width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit values, scale to 8-bit
			row[x*4] = byte(r >> 8)
			row[x*4+1] = byte(g >> 8)
			row[x*4+2] = byte(b >> 8)
			row[x*4+3] = byte(a >> 8)
		}
	}
	return buf, nil
}

// ToStdImage converts an RGBA_8888 or BGRA_8888 plane to *image.NRGBA.
func ToStdImage(p *PlaneBuf, format Format) (*image.NRGBA, error) {
	if format != FormatRGBA8888 && format != FormatBGRA8888 {
		return nil, ErrUnsupportedFormat
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for y := range p.height {
		row := p.Row(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		if format == FormatRGBA8888 {
			copy(dst, row)
			continue
		}
		for x := range p.width {
			off := x * 4
			dst[off] = row[off+2]   // R <- B
			dst[off+1] = row[off+1] // G <- G
			dst[off+2] = row[off]   // B <- R
			dst[off+3] = row[off+3] // A <- A
		}
	}
	return nrgba, nil
}

// Save writes img to path, choosing the encoder from the extension:
// .png, .jpg/.jpeg, .bmp, .tif/.tiff.
func Save(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, strings.ToLower(filepath.Ext(path)), img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the format named by ext (".png", ".bmp", ...).
func Encode(w io.Writer, ext string, img image.Image) error {
	var err error
	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return nil
}
