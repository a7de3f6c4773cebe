package alloc

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/pixelmap/surface"
)

// SurfaceRef is the extended payload of a hardware surface handle.
type SurfaceRef struct {
	buf surface.Buffer
}

// Kind returns HardwareSurface.
func (r *SurfaceRef) Kind() Kind { return HardwareSurface }

// Buffer returns the referenced surface buffer.
func (r *SurfaceRef) Buffer() surface.Buffer { return r.buf }

// SurfaceStrategy borrows buffers from a surface producer.
//
// It never allocates pixel memory. The handle exposes the buffer's true
// size and the producer's plane layout; Release drops the surface reference.
type SurfaceStrategy struct {
	producer surface.Producer
	logger   atomic.Pointer[slog.Logger]
}

// NewSurfaceStrategy creates a strategy over p. With a nil producer every
// allocation fails with ErrSurfaceUnavailable.
func NewSurfaceStrategy(p surface.Producer) *SurfaceStrategy {
	s := &SurfaceStrategy{producer: p}
	s.logger.Store(slog.New(nopHandler{}))
	return s
}

// Kind returns HardwareSurface.
func (s *SurfaceStrategy) Kind() Kind { return HardwareSurface }

// SetLogger sets the logger used for producer failures.
func (s *SurfaceStrategy) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	s.logger.Store(l)
}

// Allocate requests a buffer of req.Width x req.Height in req.Format.
func (s *SurfaceStrategy) Allocate(req Request) (*Handle, error) {
	if s.producer == nil {
		return nil, fmt.Errorf("%w: no producer", ErrSurfaceUnavailable)
	}
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidRequest, req.Width, req.Height)
	}

	buf, err := s.producer.Request(surface.Config{
		Width:  req.Width,
		Height: req.Height,
		Format: req.Format,
		Tag:    req.Tag,
	})
	if err != nil {
		s.logger.Load().Warn("alloc: surface request failed", "tag", req.Tag, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	layout := buf.Layout()
	if err := checkSurface(buf, req); err != nil {
		_ = buf.Unref()
		s.logger.Load().Warn("alloc: surface buffer rejected", "tag", req.Tag, "err", err)
		return nil, err
	}

	return NewHandle(s, buf.Bytes()[:buf.Size()], req.Tag, &SurfaceRef{buf: buf}, &layout), nil
}

// checkSurface verifies that a producer honored the request.
func checkSurface(buf surface.Buffer, req Request) error {
	l := buf.Layout()
	if l.Format != req.Format || l.Width != req.Width || l.Height != req.Height {
		return fmt.Errorf("%w: producer returned %s %dx%d for %s %dx%d", ErrSurfaceUnavailable,
			l.Format, l.Width, l.Height, req.Format, req.Width, req.Height)
	}
	if buf.Size() > len(buf.Bytes()) {
		return fmt.Errorf("%w: size %d exceeds mapping of %d bytes",
			ErrSurfaceUnavailable, buf.Size(), len(buf.Bytes()))
	}
	if err := l.Validate(buf.Size()); err != nil {
		return fmt.Errorf("%w: buffer of %d bytes: %w", ErrSurfaceUnavailable, buf.Size(), err)
	}
	return nil
}

// Release drops the surface reference held by the handle.
func (s *SurfaceStrategy) Release(h *Handle) error {
	if err := h.markReleased(s); err != nil {
		return err
	}
	ref, ok := h.Extended().(*SurfaceRef)
	if !ok {
		return fmt.Errorf("alloc: surface handle %q has no buffer", h.Tag())
	}
	return ref.buf.Unref()
}
