// Package logging provides the key-value leveled logger every other package
// in this module reports through, built on top of go.uber.org/zap.
package logging

import "go.uber.org/zap"

// Logger is a thin, log15-shaped wrapper: Info/Warn/Error/Debug take a
// message and alternating key-value pairs, e.g. log.Info(msg, "key", val, ...).
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a console-encoded, leveled Logger suitable for CLI use.
func New() Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	z, err := cfg.Build()
	if err != nil {
		// Building the configured logger should never fail; fall back to a
		// no-op rather than taking down the caller over a logging problem.
		return Nop()
	}
	return Logger{z: z.Sugar()}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() Logger {
	return Logger{z: zap.NewNop().Sugar()}
}

func (l Logger) Info(msg string, kv ...any)  { l.z.Infow(msg, kv...) }
func (l Logger) Warn(msg string, kv ...any)  { l.z.Warnw(msg, kv...) }
func (l Logger) Error(msg string, kv ...any) { l.z.Errorw(msg, kv...) }
func (l Logger) Debug(msg string, kv ...any) { l.z.Debugw(msg, kv...) }

// Sync flushes any buffered log entries. Call before process exit.
func (l Logger) Sync() error {
	return l.z.Sync()
}
