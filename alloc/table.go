package alloc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerSetter is implemented by strategies that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// Table dispatches allocations to one Strategy per Kind.
//
// A Table is an explicit object; there is no package-level instance. It is
// safe for concurrent use.
type Table struct {
	mu         sync.RWMutex
	strategies [kindCount]Strategy

	logger atomic.Pointer[slog.Logger]
}

// NewTable creates a table holding the given strategies.
// A later strategy of the same kind replaces an earlier one.
func NewTable(strategies ...Strategy) *Table {
	t := &Table{}
	t.logger.Store(slog.New(nopHandler{}))
	for _, s := range strategies {
		t.Register(s)
	}
	return t
}

// DefaultTable creates a table with a heap strategy, a shared memory
// strategy and a surface strategy without a producer.
func DefaultTable() *Table {
	return NewTable(
		NewHeapStrategy(),
		NewShmStrategy(),
		NewSurfaceStrategy(nil),
	)
}

// Register installs s for its kind, replacing any previous strategy.
func (t *Table) Register(s Strategy) {
	if s == nil || !s.Kind().IsValid() {
		return
	}
	if ls, ok := s.(loggerSetter); ok {
		ls.SetLogger(t.Logger())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.strategies[s.Kind()] = s
}

// Strategy returns the strategy registered for k.
func (t *Table) Strategy(k Kind) (Strategy, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}

	t.mu.RLock()
	s := t.strategies[k]
	t.mu.RUnlock()

	if s == nil {
		return nil, fmt.Errorf("%w: no strategy for %s", ErrUnsupportedKind, k)
	}
	return s, nil
}

// Allocate obtains a handle of kind k.
func (t *Table) Allocate(k Kind, req Request) (*Handle, error) {
	s, err := t.Strategy(k)
	if err != nil {
		return nil, err
	}

	h, err := s.Allocate(req)
	if err != nil {
		t.Logger().Warn("alloc: allocation failed",
			"kind", k.String(), "tag", req.Tag, "size", req.Size, "err", err)
		return nil, err
	}
	t.Logger().Debug("alloc: allocated",
		"kind", k.String(), "tag", req.Tag, "size", h.Size())
	return h, nil
}

// Release releases h through the strategy that produced it.
func (t *Table) Release(h *Handle) error {
	if h == nil {
		return nil
	}
	if err := h.Release(); err != nil {
		t.Logger().Warn("alloc: release failed",
			"kind", h.Kind().String(), "tag", h.Tag(), "err", err)
		return err
	}
	return nil
}

// SetLogger sets the table's logger and passes it to every strategy that
// accepts one. Pass nil to disable logging.
func (t *Table) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	t.logger.Store(l)

	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.strategies {
		if ls, ok := s.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

// Logger returns the table's logger.
func (t *Table) Logger() *slog.Logger {
	if l := t.logger.Load(); l != nil {
		return l
	}
	return slog.New(nopHandler{})
}
