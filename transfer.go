package pixelmap

import "fmt"

// ConvertAllocator moves the pixels to memory owned by another allocator
// kind. The copy honors both layouts, so moving onto a hardware surface
// adopts the surface's strides. Converting to the current kind is a no-op.
func (pb *PixelBuffer) ConvertAllocator(kind AllocatorKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: allocator %s", ErrInvalidArgument, kind)
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	cur, err := pb.current()
	if err != nil {
		return err
	}
	if cur.info.Allocator == kind {
		return nil
	}

	h, l, err := pb.table.Transfer(cur.handle, cur.layout, kind, "transfer ImageData")
	if err != nil {
		Logger().Warn("pixelmap: allocator conversion failed",
			"from", cur.info.Allocator.String(), "to", kind.String(), "err", err)
		return err
	}
	if err := l.Validate(h.Size()); err != nil {
		_ = pb.table.Release(h)
		return fmt.Errorf("pixelmap: %s handle: %w", kind, err)
	}

	info := cur.info
	info.Allocator = kind
	pb.commit(cur, &state{handle: h, info: info, layout: l, colorSpace: cur.colorSpace})
	return nil
}
