package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSetting marks a required setting that was absent or empty.
var ErrMissingSetting = errors.New("missing required setting")

// ErrInvalidSetting marks a setting with an unusable value.
var ErrInvalidSetting = errors.New("invalid setting")

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	required := []struct{ key, val string }{
		{EnvAppID, c.Pusher.AppID},
		{EnvAppKey, c.Pusher.Key},
		{EnvAppSecret, c.Pusher.Secret},
		{EnvAppCluster, c.Pusher.Cluster},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSetting, r.key))
		}
	}

	switch c.Relay.PayloadMode {
	case PayloadMessage, PayloadPassthrough:
	default:
		errs = append(errs, fmt.Errorf("%w: %s must be %q or %q, got %q",
			ErrInvalidSetting, EnvPayloadMode, PayloadMessage, PayloadPassthrough, c.Relay.PayloadMode))
	}
	if c.Relay.TriggerTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be > 0", ErrInvalidSetting, EnvTriggerTimeout))
	}
	if strings.TrimSpace(c.Server.ListenAddress) == "" {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSetting, EnvListenAddress))
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		errs = append(errs, fmt.Errorf("%w: %s and %s must be set together", ErrInvalidSetting, EnvTLSCert, EnvTLSKey))
	}

	return errors.Join(errs...)
}

// MissingSettings lists the keys reported as missing in err.
func MissingSettings(err error) []string {
	if err == nil {
		return nil
	}
	var out []string
	var walk func(error)
	walk = func(e error) {
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		if errors.Is(e, ErrMissingSetting) {
			msg := e.Error()
			if i := strings.LastIndex(msg, ": "); i >= 0 {
				out = append(out, msg[i+2:])
			}
		}
	}
	walk(err)
	return out
}
