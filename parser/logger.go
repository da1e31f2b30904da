package parser

import (
	"context"
	"log/slog"
)

// Logger receives the diagnostics of loading a document graph and of
// constructing primitives: documents fetched and built, references
// resolved, undeclared keys dropped. attrs are slog-style alternating
// key-value pairs:
//
//	logger.Debug("resolved reference", "ref", "#/definitions/Pet", "depth", 3)
//
// Nothing is logged unless a Logger is configured. To log through log/slog:
//
//	logger := parser.NewSlogAdapter(slog.New(slog.NewJSONHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
//	graph, err := parser.Load(ctx, "api.yaml", parser.WithStore(docs), parser.WithLogger(logger))
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// ContextualLogger is implemented by loggers that can use the context of
// the Load call they log for. A [ContextLogger] forwards its context to them.
type ContextualLogger interface {
	Logger
	Log(ctx context.Context, level slog.Level, msg string, attrs ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)  {}
func (NopLogger) Info(string, ...any)   {}
func (NopLogger) Warn(string, ...any)   {}
func (NopLogger) Error(string, ...any)  {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter logs through a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.logger.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.logger.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// Log hands ctx to the slog handler along with the record.
func (s *SlogAdapter) Log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	s.logger.Log(ctx, level, msg, attrs...)
}

func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// ContextLogger binds a Logger to the context passed to Load. Records go
// through Log when the wrapped logger is a [ContextualLogger], so handlers
// see request-scoped values; other loggers receive plain calls.
type ContextLogger struct {
	logger Logger
	ctx    context.Context
}

// NewContextLogger binds logger to ctx.
func NewContextLogger(logger Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{logger: logger, ctx: ctx}
}

func (c *ContextLogger) log(level slog.Level, msg string, attrs []any) {
	if cl, ok := c.logger.(ContextualLogger); ok {
		cl.Log(c.ctx, level, msg, attrs...)
		return
	}
	switch level {
	case slog.LevelDebug:
		c.logger.Debug(msg, attrs...)
	case slog.LevelInfo:
		c.logger.Info(msg, attrs...)
	case slog.LevelWarn:
		c.logger.Warn(msg, attrs...)
	default:
		c.logger.Error(msg, attrs...)
	}
}

func (c *ContextLogger) Debug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *ContextLogger) Info(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *ContextLogger) Warn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *ContextLogger) Error(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *ContextLogger) With(attrs ...any) Logger {
	return &ContextLogger{logger: c.logger.With(attrs...), ctx: c.ctx}
}

// Context returns the bound context.
func (c *ContextLogger) Context() context.Context { return c.ctx }

var (
	_ Logger           = NopLogger{}
	_ ContextualLogger = (*SlogAdapter)(nil)
	_ Logger           = (*ContextLogger)(nil)
)
