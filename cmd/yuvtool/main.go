// Command yuvtool converts an image to a YUV pixel buffer, runs transforms
// on it and writes a preview.
//
// Usage:
//
//	yuvtool -format nv21 -allocator shm -scale 0.5 -rotate 90 -output out.png
//	yuvtool -input photo.jpg -format ycbcr_p010 -colorspace "display p3" -output out.tiff
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/pixelmap"
	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/surface"
)

func main() {
	var (
		input      = flag.String("input", "", "source image (png, jpeg, bmp, tiff); empty synthesizes a pattern")
		formatName = flag.String("format", "nv21", "pixel format: nv21, nv12, i420, yv12, ycbcr_p010, ycrcb_p010")
		allocName  = flag.String("allocator", "heap", "allocator: heap, shm, surface")
		width      = flag.Int("width", 640, "width of the synthesized pattern")
		height     = flag.Int("height", 480, "height of the synthesized pattern")
		pattern    = flag.String("pattern", "checkerboard", "synthesized pattern: ramp, checkerboard")
		scale      = flag.Float64("scale", 1, "scale factor for both axes")
		quality    = flag.String("aa", "medium", "scaling quality: none, low, medium, high")
		rotate     = flag.Float64("rotate", 0, "clockwise rotation in degrees")
		flipX      = flag.Bool("flipx", false, "reverse the row order")
		flipY      = flag.Bool("flipy", false, "mirror every row")
		csName     = flag.String("colorspace", "", "target color space, e.g. \"display p3\" or \"bt.2020 pq\"")
		output     = flag.String("output", "yuvtool.png", "preview file (png, jpg, bmp, tif)")
		verbose    = flag.Bool("v", false, "log allocator and transform details")
	)
	flag.Parse()

	if *verbose {
		pixelmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	err := run(config{
		input: *input, format: *formatName, allocator: *allocName,
		width: *width, height: *height, pattern: *pattern,
		scale: *scale, quality: *quality, rotate: *rotate,
		flipX: *flipX, flipY: *flipY, colorSpace: *csName, output: *output,
	})
	if err != nil {
		log.Fatal(err)
	}
}

type config struct {
	input, format, allocator string
	width, height            int
	pattern                  string
	scale                    float64
	quality                  string
	rotate                   float64
	flipX, flipY             bool
	colorSpace, output       string
}

func run(cfg config) error {
	format, ok := pixelmap.ParseFormat(cfg.format)
	if !ok {
		return fmt.Errorf("unknown format %q", cfg.format)
	}
	kind, err := parseAllocator(cfg.allocator)
	if err != nil {
		return err
	}
	aa, err := parseQuality(cfg.quality)
	if err != nil {
		return err
	}

	pb, err := load(cfg, format, kind, newTable())
	if err != nil {
		return fmt.Errorf("create buffer: %w", err)
	}
	defer pb.Release()

	if cfg.scale != 1 {
		if err := pb.Scale(cfg.scale, cfg.scale, aa); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
	}
	if cfg.rotate != 0 {
		if err := pb.Rotate(cfg.rotate); err != nil {
			return fmt.Errorf("rotate: %w", err)
		}
	}
	if err := pb.Flip(cfg.flipX, cfg.flipY); err != nil {
		return fmt.Errorf("flip: %w", err)
	}
	if cfg.colorSpace != "" {
		cs, ok := pixelmap.LookupColorSpace(cfg.colorSpace)
		if !ok {
			return fmt.Errorf("unknown color space %q", cfg.colorSpace)
		}
		if err := pb.ApplyColorSpace(cs); err != nil {
			return fmt.Errorf("apply color space: %w", err)
		}
	}

	img, err := pb.ToImage()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := image.Save(cfg.output, img); err != nil {
		return err
	}

	snap := pb.CurrentHandle()
	log.Printf("Saved %s: %s %s on %s, %d bytes, version %d, %s\n",
		cfg.output, snap.Info.PixelFormat, snap.Info.Size, snap.Kind, snap.Size, snap.Version, snap.ColorSpace)
	return nil
}

// newTable wires every allocator kind. Hardware surfaces come from an
// in-process memory producer registered with a surface registry.
func newTable() *alloc.Table {
	reg := surface.NewRegistry()
	reg.Register("memory", 0, surface.NewMemoryProducer(), nil)

	t := alloc.NewTable(
		alloc.NewHeapStrategy(),
		alloc.NewShmStrategy(alloc.WithShmPrefix("yuvtool")),
		alloc.NewSurfaceStrategy(reg),
	)
	t.SetLogger(pixelmap.Logger())
	return t
}

func load(cfg config, format pixelmap.PixelFormat, kind pixelmap.AllocatorKind, table *alloc.Table) (*pixelmap.PixelBuffer, error) {
	if cfg.input != "" {
		rgba, err := image.LoadImage(cfg.input)
		if err != nil {
			return nil, err
		}
		img, err := image.ToStdImage(rgba, image.FormatRGBA8888)
		if err != nil {
			return nil, err
		}
		return pixelmap.CreateBufferFromImage(img, format, kind, cfg.input, pixelmap.WithAllocators(table))
	}

	p := pixelmap.PatternCheckerboard
	if strings.EqualFold(cfg.pattern, "ramp") {
		p = pixelmap.PatternRamp
	}
	pb, err := pixelmap.CreateBuffer(format, int32(cfg.width), int32(cfg.height), kind, "yuvtool", pixelmap.WithAllocators(table))
	if err != nil {
		return nil, err
	}
	if err := pb.FillPattern(p); err != nil {
		_ = pb.Release()
		return nil, err
	}
	return pb, nil
}

func parseAllocator(name string) (pixelmap.AllocatorKind, error) {
	switch strings.ToLower(name) {
	case "heap":
		return pixelmap.HeapAllocator, nil
	case "shm", "shared":
		return pixelmap.SharedMemoryAllocator, nil
	case "surface", "gpu":
		return pixelmap.HardwareSurfaceAllocator, nil
	}
	return 0, fmt.Errorf("unknown allocator %q", name)
}

func parseQuality(name string) (pixelmap.AntiAliasing, error) {
	for _, aa := range []pixelmap.AntiAliasing{
		pixelmap.AntiAliasNone, pixelmap.AntiAliasLow, pixelmap.AntiAliasMedium, pixelmap.AntiAliasHigh,
	} {
		if strings.EqualFold(name, aa.String()) {
			return aa, nil
		}
	}
	return 0, fmt.Errorf("unknown quality %q", name)
}
