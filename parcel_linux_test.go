//go:build linux

package pixelmap

import (
	"slices"
	"testing"

	"github.com/gogpu/pixelmap/alloc"
)

func newShmBuffer(t *testing.T, format PixelFormat, w, h int32) (*PixelBuffer, *alloc.Table) {
	t.Helper()
	table := alloc.NewTable(alloc.NewHeapStrategy(), alloc.NewShmStrategy(alloc.WithShmPrefix("pixelmap-test")))
	pb, err := CreateBuffer(format, w, h, SharedMemoryAllocator, "parcel", WithAllocators(table))
	if err != nil {
		t.Skipf("shared memory unavailable: %v", err)
	}
	t.Cleanup(func() { _ = pb.Release() })
	return pb, table
}

func TestParcel_RoundTripSharesMemory(t *testing.T) {
	pb, table := newShmBuffer(t, FormatI420, 40, 30)
	if err := pb.FillPattern(PatternCheckerboard); err != nil {
		t.Fatal(err)
	}
	if err := pb.ApplyColorSpace(BT709Limited); err != nil {
		t.Fatal(err)
	}

	data, err := pb.Marshal()
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	peer, err := Unmarshal(data, "peer", WithAllocators(table))
	if err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	defer peer.Release()

	if peer.Info() != pb.Info() {
		t.Errorf("Info = %+v, want %+v", peer.Info(), pb.Info())
	}
	if cs := peer.ColorSpace(); !cs.Equal(BT709Limited) || cs.Name != BT709Limited.Name {
		t.Errorf("ColorSpace = %+v", cs)
	}
	if !peer.CurrentHandle().Layout.Equal(pb.CurrentHandle().Layout) {
		t.Error("layouts differ")
	}
	if !slices.Equal(allPixels(t, peer), allPixels(t, pb)) {
		t.Error("pixels differ")
	}

	// Both buffers map the same region.
	pb.CurrentHandle().Data[0] = 0x5a
	if got := peer.CurrentHandle().Data[0]; got != 0x5a {
		t.Errorf("peer sees %#x, want 0x5a", got)
	}

	// The peer owns its own mapping.
	if err := peer.Release(); err != nil {
		t.Fatal(err)
	}
	if pb.CurrentHandle().Data[0] != 0x5a {
		t.Error("releasing the peer invalidated the original")
	}
}

func TestParcel_TransformsStayShared(t *testing.T) {
	pb, _ := newShmBuffer(t, FormatNV21, 32, 16)
	if err := pb.Rotate(90); err != nil {
		t.Fatal(err)
	}
	snap := pb.CurrentHandle()
	if snap.Kind != SharedMemoryAllocator {
		t.Errorf("Kind = %s after Rotate, want SharedMemory", snap.Kind)
	}
	region, ok := snap.Extended.(*alloc.SharedRegion)
	if !ok {
		t.Fatalf("Extended = %T, want *alloc.SharedRegion", snap.Extended)
	}
	if region.MappedSize() < snap.Size {
		t.Errorf("mapped %d < size %d", region.MappedSize(), snap.Size)
	}
	if _, err := pb.Marshal(); err != nil {
		t.Errorf("Marshal() after Rotate = %v", err)
	}
}
