// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"
)

// RegistryEntry represents a registered producer.
type RegistryEntry struct {
	// Name is the unique identifier for this producer.
	Name string

	// Priority determines selection order (higher = preferred).
	// Typical priorities:
	//   - 100: display or camera buffer queues
	//   - 50: GPU-visible staging memory
	//   - 10: in-process memory
	Priority int

	// Producer hands out the buffers.
	Producer Producer

	// Available reports if the producer can currently serve requests.
	Available func() bool
}

// Registry selects among registered producers.
//
// A Registry is itself a Producer: Request tries every available producer
// in priority order and returns the first buffer obtained.
//
// There is no global registry; the owner creates one and passes it where
// it is needed, typically to alloc.NewSurfaceStrategy:
//
//	reg := surface.NewRegistry()
//	reg.Register("memory", 10, surface.NewMemoryProducer(), nil)
//	strategy := alloc.NewSurfaceStrategy(reg)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a producer to this registry.
//
// If available is nil, the producer is assumed always available.
// Registering a name that already exists replaces the previous entry.
func (r *Registry) Register(name string, priority int, p Producer, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Producer:  p,
		Available: available,
	}
}

// Unregister removes a producer from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered producer names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available producers sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific producer.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// Request obtains a buffer from the best available producer.
func (r *Registry) Request(cfg Config) (Buffer, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoProducerAvailable
	}

	// Try each available producer in priority order
	var lastErr error
	for _, name := range available {
		b, err := r.RequestByName(name, cfg)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// RequestByName obtains a buffer from a specific producer.
func (r *Registry) RequestByName(name string, cfg Config) (Buffer, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &ProducerNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &ProducerUnavailableError{Name: name}
	}

	return entry.Producer.Request(cfg)
}

// sortedNames returns producer names sorted by priority (highest first),
// then by name. If onlyAvailable is true, filters to available producers.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoProducerAvailable is returned when no producers are registered
	// or none is currently available.
	ErrNoProducerAvailable = errors.New("surface: no producer available")
)

// ProducerNotFoundError indicates a named producer is not registered.
type ProducerNotFoundError struct {
	Name string
}

func (e *ProducerNotFoundError) Error() string {
	return "surface: producer not found: " + e.Name
}

// ProducerUnavailableError indicates a producer exists but is not available.
type ProducerUnavailableError struct {
	Name string
}

func (e *ProducerUnavailableError) Error() string {
	return "surface: producer unavailable: " + e.Name
}
