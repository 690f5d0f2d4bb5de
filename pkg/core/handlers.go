// pkg/core/handlers.go
package core

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/pusher-relay/pkg/relay"
	"go.uber.org/zap"
)

// Response bodies.
const (
	HealthBody       = "Pusher server is running"
	SentPrefix       = "Message sent: "
	SendErrorBody    = "Error sending message"
	SendTimeoutBody  = "Timeout sending message"
	InvalidBody      = "Invalid JSON body"
	BodyTooLargeBody = "Request body too large"
)

// MaxBodyBytes caps POST /send bodies.
const MaxBodyBytes = 100 << 10

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, HealthBody)
	}
}

func sendHandler(d BuildDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.Log.With(zap.String("requestId", chimd.GetReqID(r.Context())))

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeText(w, http.StatusRequestEntityTooLarge, BodyTooLargeBody)
				return
			}
			log.Warn("read request body", zap.Error(err))
			writeText(w, http.StatusBadRequest, InvalidBody)
			return
		}
		if !isJSON(r.Header.Get("Content-Type")) {
			body = nil
		}

		p, err := d.Strategy.Shape(body)
		if err != nil {
			log.Warn("rejecting request body", zap.Error(err))
			writeText(w, http.StatusBadRequest, InvalidBody)
			return
		}

		ack, err := d.Relay.Trigger(r.Context(), relay.Channel, relay.Event, p.Data)
		switch {
		case err == nil:
			log.Info("event triggered",
				zap.String("channel", ack.Channel),
				zap.String("event", ack.Event),
				zap.Duration("latency", ack.Latency),
			)
			writeText(w, http.StatusOK, SentPrefix+p.Text)
		case errors.Is(err, relay.ErrTriggerTimeout):
			log.Warn("timeout triggering event", zap.Error(err))
			writeText(w, http.StatusGatewayTimeout, SendTimeoutBody)
		case errors.Is(err, context.Canceled):
			log.Info("client gone before trigger settled", zap.Error(err))
			writeText(w, http.StatusInternalServerError, SendErrorBody)
		default:
			log.Error("error triggering event", zap.Error(err))
			writeText(w, http.StatusInternalServerError, SendErrorBody)
		}
	}
}

// isJSON mirrors a JSON body parser: bodies are read only when the request
// declares a JSON media type.
func isJSON(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
