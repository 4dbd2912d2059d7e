package log

import (
	"context"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// CslLogger is safe for concurrent use; SetLevel may run while other
// goroutines log.
type CslLogger struct {
	out   *log.Logger
	level atomic.Int32
}

func NewCslLogger() (*CslLogger, error) {
	l := &CslLogger{out: log.New(os.Stderr, "", log.LstdFlags)}
	l.SetLevel(LevelInfo)
	return l, nil
}

func (l *CslLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *CslLogger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

func (l *CslLogger) printf(level Level, tag string, format string, args ...interface{}) {
	if int32(level) < l.level.Load() {
		return
	}
	l.out.Printf("["+tag+"] "+format, args...)
}

func (l *CslLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelInfo, "INFO", format, args...)
}

func (l *CslLogger) Alert(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelAlert, "ALERT", format, args...)
}

func (l *CslLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelError, "ERROR", format, args...)
}

func (l *CslLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelWarn, "WARN", format, args...)
}

func (l *CslLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelDebug, "DEBUG", format, args...)
}

func (l *CslLogger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelCritical, "CRITICAL", format, args...)
}

func (l *CslLogger) Emergency(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelEmergency, "EMERGENCY", format, args...)
}

func (l *CslLogger) Notice(ctx context.Context, format string, args ...interface{}) {
	l.printf(LevelNotice, "NOTICE", format, args...)
}
