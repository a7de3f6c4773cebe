//go:build linux

package alloc

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Allocate creates, seals and maps a region of at least req.Size bytes.
func (s *ShmStrategy) Allocate(req Request) (*Handle, error) {
	if req.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidRequest, req.Size)
	}

	name := s.regionName(req.Tag)
	size := pageAlign(req.Size)

	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		s.log().Warn("alloc: memfd_create failed", "name", name, "err", err)
		return nil, fmt.Errorf("%w: memfd_create %q: %w", ErrShmCreate, name, err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		s.log().Warn("alloc: ftruncate failed", "name", name, "size", size, "err", err)
		return nil, fmt.Errorf("%w: ftruncate %q to %d: %w", ErrShmCreate, name, size, err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, unix.F_SEAL_SHRINK|unix.F_SEAL_GROW); err != nil {
		_ = unix.Close(fd)
		s.log().Warn("alloc: seal failed", "name", name, "err", err)
		return nil, fmt.Errorf("%w: seal %q: %w", ErrShmProtect, name, err)
	}

	mapped, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		s.log().Warn("alloc: mmap failed", "name", name, "size", size, "err", err)
		return nil, fmt.Errorf("%w: mmap %q: %w", ErrShmMap, name, err)
	}

	region := &SharedRegion{fd: fd, name: name, mapped: mapped}
	return NewHandle(s, mapped[:req.Size], req.Tag, region, nil), nil
}

// Open maps an existing region of at least size bytes.
func (s *ShmStrategy) Open(fd, size int, tag string) (*Handle, error) {
	if fd < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: descriptor %d size %d", ErrInvalidRequest, fd, size)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("%w: fstat %d: %w", ErrShmMap, fd, err)
	}
	if st.Size < int64(size) {
		return nil, fmt.Errorf("%w: region holds %d bytes, need %d", ErrShmMap, st.Size, size)
	}

	dup, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: dup %d: %w", ErrShmMap, fd, err)
	}
	mapLen := pageAlign(size)
	if int64(mapLen) > st.Size {
		mapLen = int(st.Size)
	}
	mapped, err := unix.Mmap(dup, 0, mapLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(dup)
		return nil, fmt.Errorf("%w: mmap descriptor %d: %w", ErrShmMap, fd, err)
	}

	region := &SharedRegion{fd: dup, name: s.regionName(tag), mapped: mapped}
	return NewHandle(s, mapped[:size], tag, region, nil), nil
}

// Release unmaps the region and closes its descriptor.
func (s *ShmStrategy) Release(h *Handle) error {
	if err := h.markReleased(s); err != nil {
		return err
	}
	region, ok := h.Extended().(*SharedRegion)
	if !ok {
		return fmt.Errorf("alloc: shared memory handle %q has no region", h.Tag())
	}

	var errs []error
	if err := unix.Munmap(region.mapped); err != nil {
		errs = append(errs, fmt.Errorf("munmap %q: %w", region.name, err))
	}
	if err := unix.Close(region.fd); err != nil {
		errs = append(errs, fmt.Errorf("close %q: %w", region.name, err))
	}
	if err := errors.Join(errs...); err != nil {
		s.log().Warn("alloc: shared memory release failed", "name", region.name, "err", err)
		return err
	}
	return nil
}

func pageAlign(n int) int {
	page := os.Getpagesize()
	return (n + page - 1) / page * page
}
