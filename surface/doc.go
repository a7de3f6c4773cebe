// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the hardware surface abstraction used by the
// pixel buffer allocators.
//
// A surface buffer is pixel memory owned by a producer outside the pixel
// buffer engine: a windowing system, a display compositor or a camera
// pipeline. The engine never allocates or frees that memory. It asks a
// Producer for a Buffer, reads the buffer's true size and its plane layout
// (producers impose their own row strides), and drops its reference when
// done. Validity of the bytes is governed by the buffer's reference count.
//
// # Producers
//
//   - MemoryProducer: in-process producer backed by Go memory with rows
//     aligned to 256 bytes, the GPU buffer-to-texture copy rule
//   - Registry: selects among several producers by priority and availability
//
// The Registry is an explicit object with the lifetime its owner gives it.
// There is no process-wide registry:
//
//	reg := surface.NewRegistry()
//	reg.Register("memory", 10, surface.NewMemoryProducer(), nil)
//
//	buf, err := reg.Request(surface.Config{Width: 1920, Height: 1080, Format: image.FormatNV12})
//	if err != nil {
//	    return err
//	}
//	defer buf.Unref()
//
// # Descriptors
//
// Every buffer carries a Descriptor: one gputypes texture descriptor and
// data layout per plane, so a GPU backend can import the planes without
// knowing the pixel format rules.
package surface
