// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/pixelmap/internal/image"
)

// producerFunc adapts a function to the Producer interface.
type producerFunc func(cfg Config) (Buffer, error)

func (f producerFunc) Request(cfg Config) (Buffer, error) { return f(cfg) }

var testConfig = Config{Width: 100, Height: 100, Format: image.FormatNV12}

// TestRegistryRegister tests producer registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, NewMemoryProducer(), nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered producer not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("producer should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests producer removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("temp", 10, NewMemoryProducer(), nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("producer should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("producer should not exist after unregister")
	}
}

// TestRegistryList tests listing producers.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	r.Register("low", 10, NewMemoryProducer(), nil)
	r.Register("high", 100, NewMemoryProducer(), nil)
	r.Register("mid", 50, NewMemoryProducer(), nil)

	list := r.List()

	if len(list) != 3 {
		t.Fatalf("expected 3 producers, got %d", len(list))
	}

	// Should be sorted by priority (highest first)
	want := []string{"high", "mid", "low"}
	for i, name := range want {
		if list[i] != name {
			t.Errorf("list[%d] = %s, want %s", i, list[i], name)
		}
	}
}

// TestRegistryListTieBreak tests that equal priorities sort by name.
func TestRegistryListTieBreak(t *testing.T) {
	r := NewRegistry()

	r.Register("b", 10, NewMemoryProducer(), nil)
	r.Register("a", 10, NewMemoryProducer(), nil)

	list := r.List()
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("List() = %v, want [a b]", list)
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()

	r.Register("available", 100, NewMemoryProducer(), func() bool { return true })
	r.Register("unavailable", 200, NewMemoryProducer(), func() bool { return false })

	available := r.Available()

	if len(available) != 1 {
		t.Fatalf("expected 1 available producer, got %d", len(available))
	}

	if available[0] != "available" {
		t.Errorf("expected 'available', got %s", available[0])
	}
}

// TestRegistryRequest tests obtaining buffers via the registry.
func TestRegistryRequest(t *testing.T) {
	r := NewRegistry()
	p := NewMemoryProducer()
	r.Register("test", 50, p, nil)

	b, err := r.Request(testConfig)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer func() { _ = b.Unref() }()

	l := b.Layout()
	if l.Width != 100 || l.Height != 100 {
		t.Errorf("size = %dx%d, want 100x100", l.Width, l.Height)
	}
	if p.Live() != 1 {
		t.Errorf("Live() = %d, want 1", p.Live())
	}
}

// TestRegistryRequestByNameNotFound tests error for unknown producer.
func TestRegistryRequestByNameNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.RequestByName("nonexistent", testConfig)
	if err == nil {
		t.Fatal("expected error for nonexistent producer")
	}

	var notFound *ProducerNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProducerNotFoundError, got %T", err)
	}

	if notFound.Name != "nonexistent" {
		t.Errorf("error name = %s, want nonexistent", notFound.Name)
	}
}

// TestRegistryRequestByNameUnavailable tests error for unavailable producer.
func TestRegistryRequestByNameUnavailable(t *testing.T) {
	r := NewRegistry()

	r.Register("unavailable", 50, NewMemoryProducer(), func() bool { return false })

	_, err := r.RequestByName("unavailable", testConfig)

	var unavailable *ProducerUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected ProducerUnavailableError, got %T", err)
	}
}

// TestRegistryNoProducer tests error when no producers are available.
func TestRegistryNoProducer(t *testing.T) {
	r := NewRegistry()

	_, err := r.Request(testConfig)
	if !errors.Is(err, ErrNoProducerAvailable) {
		t.Errorf("expected ErrNoProducerAvailable, got %v", err)
	}
}

// TestRegistryProducerError tests fallback past a failing producer.
func TestRegistryProducerError(t *testing.T) {
	r := NewRegistry()

	expectedErr := errors.New("queue exhausted")
	r.Register("failing", 100, producerFunc(func(Config) (Buffer, error) {
		return nil, expectedErr
	}), nil)

	_, err := r.Request(testConfig)
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected producer error, got %v", err)
	}

	r.Register("fallback", 10, NewMemoryProducer(), nil)
	b, err := r.Request(testConfig)
	if err != nil {
		t.Fatalf("Request with fallback failed: %v", err)
	}
	_ = b.Unref()
}

// TestRegistryPrioritySelection tests that highest priority is selected.
func TestRegistryPrioritySelection(t *testing.T) {
	r := NewRegistry()

	var selected string
	mem := NewMemoryProducer()

	r.Register("low", 10, producerFunc(func(cfg Config) (Buffer, error) {
		selected = "low"
		return mem.Request(cfg)
	}), nil)

	r.Register("high", 100, producerFunc(func(cfg Config) (Buffer, error) {
		selected = "high"
		return mem.Request(cfg)
	}), nil)

	b, err := r.Request(testConfig)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer func() { _ = b.Unref() }()

	if selected != "high" {
		t.Errorf("selected = %s, want high (highest priority)", selected)
	}
}

// TestRegistryOverwrite tests that re-registering overwrites.
func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 10, NewMemoryProducer(), nil)
	r.Register("test", 50, NewMemoryProducer(), nil)

	entry, _ := r.Get("test")
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50 (should be overwritten)", entry.Priority)
	}
}

// TestRegistryIsProducer verifies a Registry can stand in for a Producer.
func TestRegistryIsProducer(t *testing.T) {
	var _ Producer = (*Registry)(nil)
	var _ Producer = (*MemoryProducer)(nil)
}

// TestProducerNotFoundError tests error message formatting.
func TestProducerNotFoundError(t *testing.T) {
	err := &ProducerNotFoundError{Name: "camera"}

	if msg := err.Error(); msg != "surface: producer not found: camera" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}

// TestProducerUnavailableError tests error message formatting.
func TestProducerUnavailableError(t *testing.T) {
	err := &ProducerUnavailableError{Name: "display"}

	if msg := err.Error(); msg != "surface: producer unavailable: display" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}
