package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pixelmap/internal/image"
	"github.com/gogpu/pixelmap/surface"
)

func fillLayout(t *testing.T, data []byte, l image.Layout) {
	t.Helper()
	views, err := l.Views(data)
	require.NoError(t, err)
	for i, v := range views {
		for y := range v.Height() {
			row := v.Row(y)
			for x := range row {
				row[x] = byte(i*50 + x + y)
			}
		}
	}
}

func TestTransfer_HeapToSurfaceRestrides(t *testing.T) {
	mem := surface.NewMemoryProducer()
	table := NewTable(NewHeapStrategy(), NewSurfaceStrategy(mem))

	l, err := image.NewLayout(image.FormatNV21, 30, 20)
	require.NoError(t, err)
	src, err := table.Allocate(Heap, Request{Size: l.Size, Tag: "src"})
	require.NoError(t, err)
	fillLayout(t, src.Data(), l)

	dst, dl, err := table.Transfer(src, l, HardwareSurface, "transfer ImageData")
	require.NoError(t, err)
	defer func() { _ = dst.Release() }()

	assert.Equal(t, HardwareSurface, dst.Kind())
	assert.Equal(t, []int{256, 256}, dl.Strides())
	assert.False(t, src.Released(), "source stays owned by the caller")

	sv, _ := l.Views(src.Data())
	dv, err := dl.Views(dst.Data())
	require.NoError(t, err)
	for i := range sv {
		for y := range sv[i].Height() {
			assert.Equal(t, sv[i].Row(y), dv[i].Row(y), "plane %d row %d", i, y)
		}
	}
}

func TestTransfer_SameLayoutCopies(t *testing.T) {
	table := NewTable(NewHeapStrategy())

	l, _ := image.NewLayout(image.FormatI420, 8, 8)
	src, err := table.Allocate(Heap, Request{Size: l.Size})
	require.NoError(t, err)
	fillLayout(t, src.Data(), l)

	dst, dl, err := table.Transfer(src, l, Heap, "copy")
	require.NoError(t, err)
	assert.True(t, dl.Equal(l))
	assert.Equal(t, src.Data(), dst.Data())
}

func TestTransfer_Errors(t *testing.T) {
	heap := NewHeapStrategy()
	table := NewTable(heap)
	l, _ := image.NewLayout(image.FormatNV12, 8, 8)

	src, err := table.Allocate(Heap, Request{Size: l.Size})
	require.NoError(t, err)

	_, _, err = table.Transfer(src, l, HardwareSurface, "missing")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.EqualValues(t, l.Size, heap.InUse(), "failed transfer must not leak")

	short, err := table.Allocate(Heap, Request{Size: l.Size - 1})
	require.NoError(t, err)
	_, _, err = table.Transfer(short, l, Heap, "short")
	assert.ErrorIs(t, err, image.ErrDataTooSmall)

	require.NoError(t, src.Release())
	_, _, err = table.Transfer(src, l, Heap, "released")
	assert.ErrorIs(t, err, ErrReleased)
}
