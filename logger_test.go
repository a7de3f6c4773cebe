package pixelmap

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/pixelmap/alloc"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestNopHandler_WithAttrsAndGroup(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	SetLogger(custom)

	if Logger() != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	pb, _ := newPatterned(t, FormatNV12, 20, 20, PatternRamp)
	if err := pb.Scale(0.5, 0.5, AntiAliasLow); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "pixelmap: scale") {
		t.Errorf("expected scale debug record, got: %s", buf.String())
	}

	rgba, _ := newPatterned(t, FormatRGBA8888, 4, 4, PatternRamp)
	if err := rgba.Rotate(90); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "rotate skipped") {
		t.Errorf("expected rotate skipped warning, got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestSetLoggerPropagatesToDefaultAllocators(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	table := defaultAllocators()
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)

	if table.Logger() != custom {
		t.Error("SetLogger did not propagate to the default allocator table")
	}

	// The default table has a surface strategy without a producer.
	if _, err := CreateBuffer(FormatNV21, 8, 8, HardwareSurfaceAllocator, "nosurface"); err == nil {
		t.Fatal("CreateBuffer on a producerless surface strategy succeeded")
	}
	if !strings.Contains(buf.String(), "allocation failed") || !strings.Contains(buf.String(), "tag=nosurface") {
		t.Errorf("expected allocation warning, got: %s", buf.String())
	}
}

func TestExplicitTableKeepsItsLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	table := alloc.NewTable(alloc.NewHeapStrategy())
	own := table.Logger()
	SetLogger(slog.Default())
	if table.Logger() != own {
		t.Error("SetLogger replaced the logger of a caller-owned table")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
