// Package pixelmap provides pixel buffers for planar and semi-planar YUV
// images whose memory is owned by pluggable allocators.
//
// # Overview
//
// A PixelBuffer couples a memory handle from an allocator strategy with the
// image metadata, plane layout and color space of the pixels it holds.
// Buffers can live on the Go heap, in sealed shared memory that another
// process can map, or in buffers borrowed from a hardware surface producer.
// The same transforms work on all three.
//
// # Quick Start
//
//	import "github.com/gogpu/pixelmap"
//
//	pb, err := pixelmap.CreateBuffer(pixelmap.FormatNV21, 640, 480,
//	    pixelmap.HeapAllocator, "camera")
//	if err != nil {
//	    return err
//	}
//	defer pb.Release()
//
//	_ = pb.FillPattern(pixelmap.PatternRamp)
//	_ = pb.Scale(0.5, 0.5, pixelmap.AntiAliasMedium)
//	_ = pb.Rotate(90)
//	_ = pb.ApplyColorSpace(pixelmap.DisplayP3)
//
// # Transforms
//
// Scale, Resize, Rotate, Flip, ApplyColorSpace, ConvertAllocator and
// FillPattern never write into the current memory. Each allocates a new
// handle of the buffer's allocator kind, writes the result there and then
// swaps it in with one atomic store, releasing the old handle and bumping
// the version by one. If any step fails the new handle is released and the
// buffer keeps its previous pixels, metadata and version.
//
// Geometric transforms on packed RGB formats are no-ops.
//
// # Formats
//
// YUV formats are 4:2:0: NV21 and NV12 (interleaved chroma), I420 and YV12
// (separate chroma planes), and the 10-bit YCbCr_P010 and YCrCb_P010, which
// store each code in the high bits of a little-endian 16-bit word.
//
// # Concurrency
//
// Mutating methods are serialized per buffer. CurrentHandle may be called
// from any goroutine and always returns a consistent snapshot; its Data is
// valid until the next committed mutation or Release.
//
// # Logging
//
// pixelmap is silent by default. Use SetLogger to route allocator and
// transform diagnostics to a log/slog handler.
package pixelmap
