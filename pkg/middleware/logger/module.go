package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(ProvideLoggers),
	fx.Provide(ProvideLoggerMiddleware),
	fx.Invoke(registerSync),
)

// registerSync flushes buffered log entries on shutdown.
func registerSync(lc fx.Lifecycle, sys *zap.Logger, acc AccessLogger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = acc.Sync()
			_ = sys.Sync()
			return nil
		},
	})
}
