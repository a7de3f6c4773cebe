package alloc

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// DefaultShmPrefix prefixes the names of shared memory regions.
const DefaultShmPrefix = "pixelmap"

// SharedRegion is the extended payload of a shared memory handle. Another
// process that receives the descriptor can map the same pixels.
type SharedRegion struct {
	fd     int
	name   string
	mapped []byte
}

// Kind returns SharedMemory.
func (r *SharedRegion) Kind() Kind { return SharedMemory }

// Fd returns the file descriptor of the region.
func (r *SharedRegion) Fd() int { return r.fd }

// Name returns the region name.
func (r *SharedRegion) Name() string { return r.name }

// MappedSize returns the page aligned size of the mapping.
func (r *SharedRegion) MappedSize() int { return len(r.mapped) }

// ShmOption configures a ShmStrategy.
type ShmOption func(*ShmStrategy)

// WithShmPrefix sets the prefix of region names.
func WithShmPrefix(prefix string) ShmOption {
	return func(s *ShmStrategy) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// ShmStrategy allocates named shared memory regions.
//
// On Linux a region is a memfd sealed against shrinking and growing, mapped
// PROT_READ|PROT_WRITE and MAP_SHARED. Other platforms report
// ErrUnsupportedKind.
type ShmStrategy struct {
	prefix string
	seq    atomic.Uint64
	logger atomic.Pointer[slog.Logger]
}

// NewShmStrategy creates a shared memory strategy.
func NewShmStrategy(opts ...ShmOption) *ShmStrategy {
	s := &ShmStrategy{prefix: DefaultShmPrefix}
	s.logger.Store(slog.New(nopHandler{}))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns SharedMemory.
func (s *ShmStrategy) Kind() Kind { return SharedMemory }

// SetLogger sets the logger used for system call failures.
func (s *ShmStrategy) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	s.logger.Store(l)
}

func (s *ShmStrategy) log() *slog.Logger {
	if l := s.logger.Load(); l != nil {
		return l
	}
	return slog.New(nopHandler{})
}

// regionName builds a unique region name from the prefix and tag.
func (s *ShmStrategy) regionName(tag string) string {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '-'
		}
		return r
	}, tag)
	if clean == "" {
		clean = "buffer"
	}
	return fmt.Sprintf("%s-%s-%d", s.prefix, clean, s.seq.Add(1))
}

// OpenShared maps a shared memory region received from another process
// through the SharedMemory strategy of t. The descriptor is duplicated, so
// the caller keeps ownership of fd.
func (t *Table) OpenShared(fd, size int, tag string) (*Handle, error) {
	st, err := t.Strategy(SharedMemory)
	if err != nil {
		return nil, err
	}
	s, ok := st.(*ShmStrategy)
	if !ok {
		return nil, fmt.Errorf("%w: shared memory strategy cannot open descriptors", ErrUnsupportedKind)
	}
	return s.Open(fd, size, tag)
}
