// pkg/core/relay.go
package core

import (
	"context"

	"github.com/joeydtaylor/pusher-relay/pkg/relay"
)

// Relay publishes one event to the provider. *relay.Client implements it.
type Relay interface {
	Trigger(ctx context.Context, channel, event string, data any) (relay.Ack, error)
}

var _ Relay = (*relay.Client)(nil)
