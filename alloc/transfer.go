package alloc

import (
	"fmt"

	"github.com/gogpu/pixelmap/internal/image"
)

// Transfer copies the pixels of src, described by layout, into a new handle
// of kind k. It returns the new handle and the layout of its pixels, which
// differs from layout when the target back-end imposes its own strides.
// src is left untouched; on failure no handle is leaked.
func (t *Table) Transfer(src *Handle, layout image.Layout, k Kind, tag string) (*Handle, image.Layout, error) {
	if src.Released() {
		return nil, image.Layout{}, ErrReleased
	}
	if err := layout.Validate(len(src.Data())); err != nil {
		return nil, image.Layout{}, fmt.Errorf("alloc: transfer source: %w", err)
	}

	dst, err := t.Allocate(k, Request{
		Size:   layout.Size,
		Tag:    tag,
		Width:  layout.Width,
		Height: layout.Height,
		Format: layout.Format,
	})
	if err != nil {
		return nil, image.Layout{}, err
	}

	dstLayout := layout
	if l, ok := dst.Layout(); ok {
		dstLayout = l
	}
	if err := copyPlanes(dst.Data(), dstLayout, src.Data(), layout); err != nil {
		_ = t.Release(dst)
		return nil, image.Layout{}, fmt.Errorf("alloc: transfer %s -> %s: %w", src.Kind(), k, err)
	}
	return dst, dstLayout, nil
}

// copyPlanes copies every plane row by row, honoring both layouts.
func copyPlanes(dst []byte, dl image.Layout, src []byte, sl image.Layout) error {
	if dl.Equal(sl) {
		copy(dst[:dl.Size], src[:sl.Size])
		return nil
	}
	dp, err := dl.Views(dst)
	if err != nil {
		return err
	}
	sp, err := sl.Views(src)
	if err != nil {
		return err
	}
	if len(dp) != len(sp) {
		return image.ErrInvalidFormat
	}
	for i := range sp {
		if err := dp[i].CopyFrom(sp[i]); err != nil {
			return err
		}
	}
	return nil
}
