package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to the Logger interface. It is the
// default implementation for the Witter CLI, where log output goes to
// stderr next to the interactive prompt.
type SlogLogger struct {
	base *slog.Logger
}

func NewSlogLogger(base *slog.Logger) *SlogLogger {
	return &SlogLogger{base: base}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.base.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.base.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.base.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.base.ErrorContext(ctx, msg, args...)
}

// With returns a logger whose entries carry the given key-value pairs.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{base: s.base.With(args...)}
}
