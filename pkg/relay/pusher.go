package relay

import (
	"net/http"
	"time"

	"github.com/joeydtaylor/pusher-relay/pkg/config"
	pusher "github.com/pusher/pusher-http-go/v5"
)

// NewPusherClient builds the Channels REST client. Its HTTP client timeout
// matches the trigger timeout so a call abandoned by Client.Trigger still
// ends.
func NewPusherClient(p config.Pusher, timeout time.Duration) *pusher.Client {
	return &pusher.Client{
		AppID:   p.AppID,
		Key:     p.Key,
		Secret:  p.Secret,
		Cluster: p.Cluster,
		Host:    p.Host,
		Secure:  p.Secure,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

var _ Triggerer = (*pusher.Client)(nil)
