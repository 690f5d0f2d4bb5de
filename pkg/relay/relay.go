// pkg/relay/relay.go
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Fixed destination for every relayed message.
const (
	Channel = "room-general"
	Event   = "message-event"
)

// Triggerer is the provider's publish operation. *pusher.Client satisfies it.
type Triggerer interface {
	Trigger(channel string, eventName string, data interface{}) error
}

// Outcome labels for trigger observations.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// ErrTriggerTimeout is returned when the provider does not answer before
// the caller's deadline.
var ErrTriggerTimeout = errors.New("relay: trigger timed out")

// TriggerError wraps a provider rejection or network failure.
type TriggerError struct {
	Channel string
	Event   string
	Err     error
}

func (e *TriggerError) Error() string {
	return fmt.Sprintf("relay: trigger %s/%s: %v", e.Channel, e.Event, e.Err)
}

func (e *TriggerError) Unwrap() error { return e.Err }

// Ack describes a trigger the provider accepted.
type Ack struct {
	Channel string
	Event   string
	Latency time.Duration
}

// ObserveFunc receives the outcome and duration of every trigger.
type ObserveFunc func(outcome string, d time.Duration)

// Client is the process-wide handle to the provider. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	t       Triggerer
	log     *zap.Logger
	observe ObserveFunc
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(fn ObserveFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.observe = fn
		}
	}
}

func NewClient(t Triggerer, opts ...Option) *Client {
	c := &Client{
		t:       t,
		log:     zap.NewNop(),
		observe: func(string, time.Duration) {},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Trigger publishes data as event on channel. The provider call runs on its
// own goroutine; if ctx ends first Trigger returns without waiting for it.
// The provider's HTTP client timeout bounds the abandoned call.
func (c *Client) Trigger(ctx context.Context, channel, event string, data any) (Ack, error) {
	if err := ctx.Err(); err != nil {
		return Ack{}, c.ctxErr(ctx, channel, event, 0)
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- c.t.Trigger(channel, event, data)
	}()

	select {
	case err := <-done:
		lat := time.Since(start)
		if err != nil {
			c.observe(OutcomeError, lat)
			return Ack{}, &TriggerError{Channel: channel, Event: event, Err: err}
		}
		c.observe(OutcomeOK, lat)
		return Ack{Channel: channel, Event: event, Latency: lat}, nil
	case <-ctx.Done():
		return Ack{}, c.ctxErr(ctx, channel, event, time.Since(start))
	}
}

func (c *Client) ctxErr(ctx context.Context, channel, event string, waited time.Duration) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		c.observe(OutcomeTimeout, waited)
		return fmt.Errorf("%w after %s (%s/%s): %w", ErrTriggerTimeout, waited, channel, event, err)
	}
	c.log.Debug("trigger abandoned",
		zap.String("channel", channel),
		zap.String("event", event),
		zap.Error(err),
	)
	return err
}
