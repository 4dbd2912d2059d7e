package log

import (
	"context"
	"strings"

	"github.com/thep200/github-user-crawler/cfg"
)

type Logger interface {
	Info(ctx context.Context, format string, args ...interface{})
	Alert(ctx context.Context, format string, args ...interface{})
	Error(ctx context.Context, format string, args ...interface{})
	Warn(ctx context.Context, format string, args ...interface{})
	Debug(ctx context.Context, format string, args ...interface{})
	Notice(ctx context.Context, format string, args ...interface{})
	Critical(ctx context.Context, format string, args ...interface{})
	Emergency(ctx context.Context, format string, args ...interface{})
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarn
	LevelError
	LevelCritical
	LevelAlert
	LevelEmergency
)

func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "notice":
		return LevelNotice
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "critical":
		return LevelCritical
	case "alert":
		return LevelAlert
	case "emergency":
		return LevelEmergency
	default:
		return LevelInfo
	}
}

func NewLogger(logger Logger) (Logger, error) {
	return logger, nil
}

// FromConfig picks the logger driver named in config.Log.
func FromConfig(config *cfg.Config) (Logger, error) {
	switch config.Log.Driver {
	case "zap":
		return NewZapLogger(config.Log.Level)
	default:
		l, err := NewCslLogger()
		if err != nil {
			return nil, err
		}
		l.SetLevel(ParseLevel(config.Log.Level))
		return l, nil
	}
}
