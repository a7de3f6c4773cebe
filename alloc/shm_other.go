//go:build !linux

package alloc

import "fmt"

// Allocate reports ErrUnsupportedKind: shared memory regions need memfd.
func (s *ShmStrategy) Allocate(req Request) (*Handle, error) {
	return nil, fmt.Errorf("%w: shared memory on this platform", ErrUnsupportedKind)
}

// Open reports ErrUnsupportedKind.
func (s *ShmStrategy) Open(fd, size int, tag string) (*Handle, error) {
	return nil, fmt.Errorf("%w: shared memory on this platform", ErrUnsupportedKind)
}

// Release marks the handle released. No handle can exist on this platform.
func (s *ShmStrategy) Release(h *Handle) error {
	return h.markReleased(s)
}
