// Package logrus adapts a *logrus.Entry to syrup.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/syrupdev/syrup"
)

// LogrusLogger implements syrup.Logger over github.com/sirupsen/logrus.
type LogrusLogger struct{ E *logrus.Entry }

var _ syrup.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f syrup.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f syrup.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f syrup.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f syrup.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
