//go:build go1.21

// Package slog adapts a *slog.Logger to syrup.Logger.
package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/syrupdev/syrup"
)

var _ syrup.Logger = Logger{}

// Logger implements syrup.Logger over the standard library's log/slog.
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f syrup.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelDebug, msg, attrs(f)...)
}
func (s Logger) Info(msg string, f syrup.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelInfo, msg, attrs(f)...)
}
func (s Logger) Warn(msg string, f syrup.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelWarn, msg, attrs(f)...)
}
func (s Logger) Error(msg string, f syrup.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelError, msg, attrs(f)...)
}

func attrs(f syrup.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	out := make([]stdslog.Attr, 0, len(f))
	for k, v := range f {
		out = append(out, stdslog.Any(k, v))
	}
	return out
}
