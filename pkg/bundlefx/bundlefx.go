// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/pusher-relay/pkg/middleware/logger"
	"github.com/joeydtaylor/pusher-relay/pkg/middleware/metrics"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Module provides the ambient stack: zap loggers, the access-log
// middleware and the named "metrics" handler. It expects a config.Config
// in the graph.
var Module = fx.Options(
	logger.Module,
	metrics.Module,
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		zl := &fxevent.ZapLogger{Logger: l.Named("fx")}
		zl.UseLogLevel(zap.DebugLevel)
		return zl
	}),
)
