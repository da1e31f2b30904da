package parser

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
)

// contextKey is a custom type for context keys to satisfy staticcheck SA1029
type contextKey string

func newBufferLogger(level slog.Level) (*SlogAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogAdapter(slog.New(handler)), &buf
}

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		assert.NotNil(t, NewSlogAdapter(nil).logger)
	})

	t.Run("levels", func(t *testing.T) {
		adapter, buf := newBufferLogger(slog.LevelDebug)
		adapter.Debug("debug message", "k", 1)
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")
		out := buf.String()
		for _, want := range []string{"level=DEBUG", "debug message", "k=1", "level=INFO", "level=WARN", "level=ERROR"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		adapter, buf := newBufferLogger(slog.LevelWarn)
		adapter.Debug("hidden")
		adapter.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		adapter, buf := newBufferLogger(slog.LevelDebug)
		adapter.With("document", "api.yaml").Info("hello")
		assert.Contains(t, buf.String(), "document=api.yaml")
	})
}

func TestContextLogger(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("request"), "r-1")
	adapter, buf := newBufferLogger(slog.LevelDebug)
	l := NewContextLogger(adapter, ctx)

	assert.Equal(t, "r-1", l.Context().Value(contextKey("request")))
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	l.Debug("debug")

	child, ok := l.With("k", "v").(*ContextLogger)
	require.True(t, ok)
	assert.Equal(t, ctx, child.Context())
	child.Info("child")
	assert.Contains(t, buf.String(), "k=v")
}

// ctxHandler records the request value of the context each record is
// handled with.
type ctxHandler struct {
	slog.Handler
	seen *[]any
}

func (h ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	*h.seen = append(*h.seen, ctx.Value(contextKey("request")))
	return h.Handler.Handle(ctx, r)
}

func (h ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ctxHandler{Handler: h.Handler.WithAttrs(attrs), seen: h.seen}
}

func TestContextLogger_ForwardsContext(t *testing.T) {
	var buf bytes.Buffer
	var seen []any
	handler := ctxHandler{Handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), seen: &seen}
	ctx := context.WithValue(context.Background(), contextKey("request"), "r-2")

	l := NewContextLogger(NewSlogAdapter(slog.New(handler)), ctx)
	l.Debug("debug")
	l.With("k", "v").Error("error")
	assert.Equal(t, []any{"r-2", "r-2"}, seen)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "level=ERROR")

	t.Run("during Load", func(t *testing.T) {
		seen = nil
		docs := testutil.NewDocs(testutil.CrossDocument)
		_, err := Load(ctx, "api.yaml", WithStore(docs), WithLogger(NewSlogAdapter(slog.New(handler))))
		require.NoError(t, err)
		require.NotEmpty(t, seen)
		for _, v := range seen {
			assert.Equal(t, "r-2", v)
		}
	})

	t.Run("plain logger", func(t *testing.T) {
		var calls []string
		l := NewContextLogger(recordingLogger{calls: &calls}, ctx)
		l.Debug("d")
		l.Info("i")
		l.Warn("w")
		l.Error("e")
		assert.Equal(t, []string{"debug d", "info i", "warn w", "error e"}, calls)
	})
}

type recordingLogger struct {
	calls *[]string
}

func (r recordingLogger) Debug(msg string, _ ...any) { *r.calls = append(*r.calls, "debug "+msg) }
func (r recordingLogger) Info(msg string, _ ...any)  { *r.calls = append(*r.calls, "info "+msg) }
func (r recordingLogger) Warn(msg string, _ ...any)  { *r.calls = append(*r.calls, "warn "+msg) }
func (r recordingLogger) Error(msg string, _ ...any) { *r.calls = append(*r.calls, "error "+msg) }
func (r recordingLogger) With(...any) Logger         { return r }

func TestLoadLogging(t *testing.T) {
	adapter, buf := newBufferLogger(slog.LevelDebug)
	docs := testutil.NewDocs(testutil.CrossDocument)
	_, err := Load(context.Background(), "api.yaml", WithStore(docs), WithLogger(adapter))
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"fetching document", "built document", "resolved reference", "flattened operations", "loaded document graph"} {
		assert.True(t, strings.Contains(out, want), "missing %q in log output", want)
	}
}
