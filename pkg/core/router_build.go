package core

import (
	"net/http"

	chimd "github.com/go-chi/chi/v5/middleware"
	hmetrics "github.com/joeydtaylor/pusher-relay/pkg/middleware/metrics"
	"go.uber.org/zap"
)

func BuildRouter(d BuildDeps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Get("/metrics", d.Metrics)
	}

	r.Get("/", healthHandler())

	var send http.HandlerFunc = sendHandler(d)
	if d.TriggerTimeout > 0 {
		send = withTimeout(send, d.TriggerTimeout)
	}
	r.Post("/send", send)

	return r.Mux()
}
