package pixelmap

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/pixelmap/alloc"
	"github.com/gogpu/pixelmap/surface"
)

func newSurfaceTable() (*alloc.HeapStrategy, *surface.MemoryProducer, *alloc.Table) {
	heap := alloc.NewHeapStrategy()
	mem := surface.NewMemoryProducer()
	return heap, mem, alloc.NewTable(heap, alloc.NewSurfaceStrategy(mem))
}

func TestConvertAllocator_HeapToSurface(t *testing.T) {
	heap, mem, table := newSurfaceTable()
	pb, err := CreateBuffer(FormatNV12, 100, 50, HeapAllocator, "convert", WithAllocators(table))
	if err != nil {
		t.Fatal(err)
	}
	defer pb.Release()
	if err := pb.FillPattern(PatternCheckerboard); err != nil {
		t.Fatal(err)
	}
	want := allPixels(t, pb)
	v := pb.Version()

	if err := pb.ConvertAllocator(HardwareSurfaceAllocator); err != nil {
		t.Fatalf("ConvertAllocator() = %v", err)
	}

	snap := pb.CurrentHandle()
	if snap.Kind != HardwareSurfaceAllocator || snap.Info.Allocator != HardwareSurfaceAllocator {
		t.Errorf("Kind = %s, Info.Allocator = %s", snap.Kind, snap.Info.Allocator)
	}
	if !slices.Equal(snap.Layout.Strides(), []int{256, 256}) {
		t.Errorf("strides = %v, want [256 256]", snap.Layout.Strides())
	}
	if snap.Size < snap.Layout.Size {
		t.Errorf("handle size %d < layout size %d", snap.Size, snap.Layout.Size)
	}
	if snap.Version != v+1 {
		t.Errorf("Version = %d, want %d", snap.Version, v+1)
	}
	if heap.InUse() != 0 {
		t.Errorf("heap InUse = %d, want 0", heap.InUse())
	}
	if mem.Live() != 1 {
		t.Errorf("live surfaces = %d, want 1", mem.Live())
	}
	if !slices.Equal(allPixels(t, pb), want) {
		t.Error("pixels changed by the allocator conversion")
	}

	ref, ok := snap.Extended.(*alloc.SurfaceRef)
	if !ok {
		t.Fatalf("Extended = %T, want *alloc.SurfaceRef", snap.Extended)
	}
	if got := ref.Buffer().ColorSpaceType(); got != SRGB.Type() {
		t.Errorf("surface color space type = %#x, want %#x", got, SRGB.Type())
	}
}

func TestConvertAllocator_SurfaceTransforms(t *testing.T) {
	_, mem, table := newSurfaceTable()
	pb, err := CreateBuffer(FormatYCbCrP010, 64, 32, HardwareSurfaceAllocator, "surface", WithAllocators(table))
	if err != nil {
		t.Fatal(err)
	}
	if err := pb.FillPattern(PatternRamp); err != nil {
		t.Fatal(err)
	}
	if err := pb.Rotate(90); err != nil {
		t.Fatal(err)
	}
	if err := pb.ApplyColorSpace(BT2020HLG); err != nil {
		t.Fatal(err)
	}

	snap := pb.CurrentHandle()
	if snap.Info.Size != (Size{32, 64}) {
		t.Errorf("Size = %s, want 32x64", snap.Info.Size)
	}
	for i, s := range snap.Layout.Strides() {
		if s%surface.RowAlignment != 0 {
			t.Errorf("plane %d stride %d not aligned to %d", i, s, surface.RowAlignment)
		}
	}
	ref := snap.Extended.(*alloc.SurfaceRef)
	if got := ref.Buffer().ColorSpaceType(); got != BT2020HLG.Type() {
		t.Errorf("surface color space type = %#x, want %#x", got, BT2020HLG.Type())
	}
	if mem.Live() != 1 {
		t.Errorf("live surfaces = %d, want 1", mem.Live())
	}

	if err := pb.Release(); err != nil {
		t.Fatal(err)
	}
	if mem.Live() != 0 {
		t.Errorf("live surfaces after Release = %d, want 0", mem.Live())
	}
}

func TestConvertAllocator_Errors(t *testing.T) {
	heap, _, table := newSurfaceTable()
	pb, err := CreateBuffer(FormatI420, 16, 16, HeapAllocator, "errs", WithAllocators(table))
	if err != nil {
		t.Fatal(err)
	}
	defer pb.Release()

	if err := pb.ConvertAllocator(HeapAllocator); err != nil || pb.Version() != 0 {
		t.Errorf("ConvertAllocator(same kind) = %v, version %d", err, pb.Version())
	}
	if err := pb.ConvertAllocator(AllocatorKind(7)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ConvertAllocator(invalid) = %v, want ErrInvalidArgument", err)
	}
	if err := pb.ConvertAllocator(SharedMemoryAllocator); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("ConvertAllocator(shm) = %v, want ErrUnsupportedKind", err)
	}
	if pb.Version() != 0 || heap.InUse() != int64(pb.CurrentHandle().Size) {
		t.Error("failed conversion changed the buffer")
	}
}

func TestCreateBuffer_NoSurfaceProducer(t *testing.T) {
	table := alloc.NewTable(alloc.NewSurfaceStrategy(nil))
	_, err := CreateBuffer(FormatNV21, 8, 8, HardwareSurfaceAllocator, "none", WithAllocators(table))
	if !errors.Is(err, ErrSurfaceUnavailable) || !errors.Is(err, ErrAllocation) {
		t.Errorf("CreateBuffer() = %v, want ErrSurfaceUnavailable", err)
	}
}
