// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Environment keys read at startup.
const (
	EnvAppID          = "PUSHER_APP_ID"
	EnvAppKey         = "PUSHER_APP_KEY"
	EnvAppSecret      = "PUSHER_APP_SECRET"
	EnvAppCluster     = "PUSHER_APP_CLUSTER"
	EnvAppHost        = "PUSHER_APP_HOST"
	EnvAppSecure      = "PUSHER_APP_SECURE"
	EnvListenAddress  = "SERVER_LISTEN_ADDRESS"
	EnvTLSCert        = "SSL_SERVER_CERTIFICATE"
	EnvTLSKey         = "SSL_SERVER_KEY"
	EnvPayloadMode    = "RELAY_PAYLOAD_MODE"
	EnvTriggerTimeout = "RELAY_TRIGGER_TIMEOUT"
	EnvConfigFile     = "RELAY_CONFIG"
	EnvLogDir         = "LOG_DIR"
	EnvLogLevel       = "LOG_LEVEL"
)

// PayloadMode selects how POST /send bodies are turned into event data.
type PayloadMode string

const (
	// PayloadMessage publishes {"message": body.message}, defaulting to "hello world".
	PayloadMessage PayloadMode = "message"
	// PayloadPassthrough publishes the whole body verbatim.
	PayloadPassthrough PayloadMode = "passthrough"
)

const (
	DefaultListenAddress  = ":3000"
	DefaultTriggerTimeout = 10 * time.Second
	DefaultLogDir         = "log"
	DefaultLogLevel       = "info"
)

// Pusher holds the provider credentials. The first four fields are required.
type Pusher struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
	Host    string // optional API host override
	Secure  bool
}

type Server struct {
	ListenAddress string
	TLSCert       string
	TLSKey        string
}

type Relay struct {
	PayloadMode    PayloadMode
	TriggerTimeout time.Duration
}

type Log struct {
	Dir   string
	Level string
}

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Pusher Pusher
	Server Server
	Relay  Relay
	Log    Log
}

// Defaults returns a Config with every optional setting filled in.
func Defaults() Config {
	return Config{
		Pusher: Pusher{Secure: true},
		Server: Server{ListenAddress: DefaultListenAddress},
		Relay: Relay{
			PayloadMode:    PayloadMessage,
			TriggerTimeout: DefaultTriggerTimeout,
		},
		Log: Log{Dir: DefaultLogDir, Level: DefaultLogLevel},
	}
}

// String renders a summary with the secret masked.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pusher.app_id       = %s\n", c.Pusher.AppID)
	fmt.Fprintf(&b, "pusher.key          = %s\n", c.Pusher.Key)
	fmt.Fprintf(&b, "pusher.secret       = %s\n", mask(c.Pusher.Secret))
	fmt.Fprintf(&b, "pusher.cluster      = %s\n", c.Pusher.Cluster)
	if c.Pusher.Host != "" {
		fmt.Fprintf(&b, "pusher.host         = %s\n", c.Pusher.Host)
	}
	fmt.Fprintf(&b, "pusher.secure       = %t\n", c.Pusher.Secure)
	fmt.Fprintf(&b, "server.listen       = %s\n", c.Server.ListenAddress)
	fmt.Fprintf(&b, "relay.payload_mode  = %s\n", c.Relay.PayloadMode)
	fmt.Fprintf(&b, "relay.trigger_timeout = %s\n", c.Relay.TriggerTimeout)
	fmt.Fprintf(&b, "log.dir             = %s\n", c.Log.Dir)
	fmt.Fprintf(&b, "log.level           = %s", c.Log.Level)
	return b.String()
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
