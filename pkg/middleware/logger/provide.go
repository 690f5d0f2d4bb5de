package logger

import (
	"github.com/joeydtaylor/pusher-relay/pkg/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AccessLogger is the dedicated http-access.log logger.
type AccessLogger struct{ *zap.Logger }

type loggers struct {
	fx.Out
	System *zap.Logger
	Access AccessLogger
}

func ProvideLoggers(cfg config.Config) loggers {
	lvl := ParseLevel(cfg.Log.Level)
	return loggers{
		System: NewLog(cfg.Log.Dir, "system.log", lvl),
		Access: AccessLogger{NewLog(cfg.Log.Dir, "http-access.log", lvl)},
	}
}

func ProvideLoggerMiddleware(a AccessLogger) *Middleware { return NewMiddleware(a.Logger) }
