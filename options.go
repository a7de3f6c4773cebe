package pixelmap

import (
	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/color"
)

// DefaultAntiAliasingThreshold is the largest source dimension for which
// WithAntiAliasing upgrades low scaling quality.
const DefaultAntiAliasingThreshold = 350

// Option configures a PixelBuffer during creation.
//
// Example:
//
//	// Heap buffer with default settings
//	pb, err := pixelmap.CreateBuffer(pixelmap.FormatNV21, 640, 480, pixelmap.HeapAllocator, "camera")
//
//	// Hardware surface buffer from a producer registry
//	table := alloc.NewTable(alloc.NewHeapStrategy(), alloc.NewSurfaceStrategy(reg))
//	pb, err := pixelmap.CreateBuffer(pixelmap.FormatNV12, 1920, 1080,
//	    pixelmap.HardwareSurfaceAllocator, "preview", pixelmap.WithAllocators(table))
type Option func(*options)

// options holds optional configuration for PixelBuffer creation.
type options struct {
	table        *alloc.Table
	antiAliasing bool
	aaThreshold  int32
	strideAlign  int
	colorSpace   color.Space
	transformer  color.Transformer
	alphaType    AlphaType
}

// defaultOptions returns the default buffer options.
func defaultOptions() options {
	return options{
		table:       nil, // Will be set to the default table if nil
		aaThreshold: DefaultAntiAliasingThreshold,
		strideAlign: 1,
		colorSpace:  color.SRGB,
		transformer: color.MatrixTransformer{},
		alphaType:   AlphaOpaque,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.table == nil {
		o.table = defaultAllocators()
	}
	return o
}

// WithAllocators sets the allocator table used for the buffer and every
// buffer derived from it by a transform.
func WithAllocators(t *alloc.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithAntiAliasing enables the quality switch: when both source dimensions
// are at most the threshold, Scale and Resize upgrade None and Low to Medium.
func WithAntiAliasing(enabled bool) Option {
	return func(o *options) {
		o.antiAliasing = enabled
	}
}

// WithAntiAliasingThreshold sets the largest source dimension for which the
// quality switch applies. Non-positive values are ignored.
func WithAntiAliasingThreshold(n int32) Option {
	return func(o *options) {
		if n > 0 {
			o.aaThreshold = n
		}
	}
}

// WithStrideAlignment rounds row strides of allocator-independent layouts
// up to a multiple of n bytes. Non-positive values are ignored.
func WithStrideAlignment(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.strideAlign = n
		}
	}
}

// WithColorSpace sets the initial color space. The default is sRGB.
func WithColorSpace(cs ColorSpace) Option {
	return func(o *options) {
		o.colorSpace = cs
	}
}

// WithColorTransformer replaces the transformer used by ApplyColorSpace.
func WithColorTransformer(t ColorTransformer) Option {
	return func(o *options) {
		if t != nil {
			o.transformer = t
		}
	}
}

// WithAlphaType sets the alpha type recorded in ImageInfo.
func WithAlphaType(a AlphaType) Option {
	return func(o *options) {
		o.alphaType = a
	}
}
