// Package zap adapts a *zap.Logger to syrup.Logger.
package zap

import (
	"github.com/syrupdev/syrup"
	"go.uber.org/zap"
)

// ZapLogger implements syrup.Logger over go.uber.org/zap.
type ZapLogger struct{ L *zap.Logger }

var _ syrup.Logger = ZapLogger{}

func (z ZapLogger) Debug(msg string, f syrup.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f syrup.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f syrup.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f syrup.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f syrup.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
