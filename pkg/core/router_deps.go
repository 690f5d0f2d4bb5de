package core

import (
	"net/http"
	"time"

	"github.com/joeydtaylor/pusher-relay/pkg/middleware/logger"
	"github.com/joeydtaylor/pusher-relay/pkg/relay"
	httpx "github.com/joeydtaylor/pusher-relay/pkg/transport/httpx"
	"go.uber.org/zap"
)

type BuildDeps struct {
	LogMW          *logger.Middleware
	Metrics        http.Handler
	Relay          Relay
	Strategy       relay.PayloadStrategy
	Router         httpx.Router
	Log            *zap.Logger
	TriggerTimeout time.Duration
}
