package alloc

import (
	"fmt"
	"sync/atomic"
)

// HeapStrategy allocates zero-initialized Go memory.
type HeapStrategy struct {
	limit int64
	inUse atomic.Int64
}

// HeapOption configures a HeapStrategy.
type HeapOption func(*HeapStrategy)

// WithHeapLimit caps the bytes held by live handles. Zero means unlimited.
func WithHeapLimit(n int64) HeapOption {
	return func(s *HeapStrategy) {
		if n >= 0 {
			s.limit = n
		}
	}
}

// NewHeapStrategy creates a heap strategy.
func NewHeapStrategy(opts ...HeapOption) *HeapStrategy {
	s := &HeapStrategy{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns Heap.
func (s *HeapStrategy) Kind() Kind { return Heap }

// Allocate returns req.Size zeroed bytes.
func (s *HeapStrategy) Allocate(req Request) (*Handle, error) {
	if req.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidRequest, req.Size)
	}

	n := int64(req.Size)
	if s.limit > 0 {
		for {
			cur := s.inUse.Load()
			if cur+n > s.limit {
				return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
					ErrOutOfMemory, n, cur, s.limit)
			}
			if s.inUse.CompareAndSwap(cur, cur+n) {
				break
			}
		}
	} else {
		s.inUse.Add(n)
	}

	return NewHandle(s, make([]byte, req.Size), req.Tag, nil, nil), nil
}

// Release returns the handle's bytes to the budget.
func (s *HeapStrategy) Release(h *Handle) error {
	if err := h.markReleased(s); err != nil {
		return err
	}
	s.inUse.Add(-int64(h.Size()))
	return nil
}

// InUse returns the bytes held by live handles.
func (s *HeapStrategy) InUse() int64 {
	return s.inUse.Load()
}
