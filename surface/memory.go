// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixelmap/internal/image"
)

// MemoryProducer is an in-process Producer backed by Go memory.
//
// Rows are aligned to RowAlignment bytes, as a GPU-visible allocator would
// lay them out, so consumers see strides wider than the image. A producer
// may also be told to over-allocate, which models DMA buffers whose true
// size exceeds the layout.
//
// Example:
//
//	p := surface.NewMemoryProducer()
//	buf, err := p.Request(surface.Config{Width: 640, Height: 480, Format: image.FormatNV21})
//	if err != nil {
//	    return err
//	}
//	defer buf.Unref()
type MemoryProducer struct {
	alignment int
	slack     int
	maxDim    int

	live atomic.Int64
}

// MemoryOption configures a MemoryProducer.
type MemoryOption func(*MemoryProducer)

// WithAlignment overrides the row alignment. Values below 1 are ignored.
func WithAlignment(n int) MemoryOption {
	return func(p *MemoryProducer) {
		if n >= 1 {
			p.alignment = n
		}
	}
}

// WithSlack appends n bytes past the layout to every buffer.
func WithSlack(n int) MemoryOption {
	return func(p *MemoryProducer) {
		if n > 0 {
			p.slack = n
		}
	}
}

// WithMaxDimension limits the width and height of requested buffers.
// The default is the WebGPU 2D texture limit.
func WithMaxDimension(n int) MemoryOption {
	return func(p *MemoryProducer) {
		if n > 0 {
			p.maxDim = n
		}
	}
}

// NewMemoryProducer creates an in-process producer.
func NewMemoryProducer(opts ...MemoryOption) *MemoryProducer {
	p := &MemoryProducer{
		alignment: RowAlignment,
		maxDim:    int(gputypes.DefaultLimits().MaxTextureDimension2D),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Request allocates a buffer for cfg.
func (p *MemoryProducer) Request(cfg Config) (Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Width > p.maxDim || cfg.Height > p.maxDim {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d",
			ErrInvalidConfig, cfg.Width, cfg.Height, p.maxDim)
	}

	layout, err := image.NewAlignedLayout(cfg.Format, cfg.Width, cfg.Height, p.alignment)
	if err != nil {
		return nil, fmt.Errorf("surface: layout: %w", err)
	}
	desc, err := NewDescriptor(layout, cfg.usage(), cfg.Tag)
	if err != nil {
		return nil, err
	}

	b := &memoryBuffer{
		data:     make([]byte, layout.Size+p.slack),
		layout:   layout,
		desc:     desc,
		producer: p,
	}
	b.refs.Store(1)
	p.live.Add(1)
	return b, nil
}

// Live returns the number of buffers that still hold a reference.
func (p *MemoryProducer) Live() int {
	return int(p.live.Load())
}

// memoryBuffer is a Buffer backed by a Go slice.
type memoryBuffer struct {
	data     []byte
	layout   image.Layout
	desc     Descriptor
	producer *MemoryProducer

	refs       atomic.Int32
	colorSpace atomic.Uint32
}

func (b *memoryBuffer) Bytes() []byte          { return b.data }
func (b *memoryBuffer) Size() int              { return len(b.data) }
func (b *memoryBuffer) Layout() image.Layout   { return b.layout }
func (b *memoryBuffer) Descriptor() Descriptor { return b.desc }
func (b *memoryBuffer) ColorSpaceType() uint32 { return b.colorSpace.Load() }

func (b *memoryBuffer) SetColorSpaceType(t uint32) {
	b.colorSpace.Store(t)
}

func (b *memoryBuffer) Ref() {
	b.refs.Add(1)
}

func (b *memoryBuffer) Unref() error {
	for {
		n := b.refs.Load()
		if n <= 0 {
			return ErrBufferReleased
		}
		if b.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				b.producer.live.Add(-1)
			}
			return nil
		}
	}
}
