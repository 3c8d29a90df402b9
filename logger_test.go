package gldraw

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("unit", 3)}).(nopHandler); !ok {
		t.Error("WithAttrs did not stay silent")
	}
	if _, ok := h.WithGroup("draw").(nopHandler); !ok {
		t.Error("WithGroup did not stay silent")
	}
}

// swapLogger installs a debug logger writing to the returned buffer
// for the duration of the test.
func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetLogger(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger is enabled")
	}

	buf := swapLogger(t)
	Logger().Info("texture unit evicted", "unit", 2)
	if !strings.Contains(buf.String(), "unit=2") {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	l := Logger()
	if l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

// loggedDevice is a Device that only records the logger it receives.
type loggedDevice struct {
	Device
	logger *slog.Logger
}

func (d *loggedDevice) SetLogger(l *slog.Logger) { d.logger = l }

func TestNewContextPropagatesLogger(t *testing.T) {
	swapLogger(t)
	want := Logger()

	d := &loggedDevice{}
	NewContext(d, DefaultCapabilities())
	if d.logger != want {
		t.Error("NewContext did not hand the current logger to the device")
	}

	other := slog.New(slog.DiscardHandler)
	propagateLogger(d, other)
	if d.logger != other {
		t.Error("propagateLogger skipped a loggerSetter device")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("draw", "program", 1)
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.New(slog.DiscardHandler))
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("texture unit evicted", "unit", 1)
	}
}
