// pkg/config/load.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type loadOptions struct {
	path      string
	envFile   string
	lookup    LookupFunc
	overrides []func(*Config)
}

// Option customizes Load.
type Option func(*loadOptions)

// WithFile reads a TOML file before applying the environment.
func WithFile(path string) Option { return func(o *loadOptions) { o.path = path } }

// WithEnvFile sets the dotenv file. An explicitly named file must exist;
// the default ".env" is optional.
func WithEnvFile(path string) Option { return func(o *loadOptions) { o.envFile = path } }

// WithLookup replaces os.LookupEnv (tests).
func WithLookup(fn LookupFunc) Option { return func(o *loadOptions) { o.lookup = fn } }

// WithOverride applies fn after every other source, before validation.
func WithOverride(fn func(*Config)) Option {
	return func(o *loadOptions) { o.overrides = append(o.overrides, fn) }
}

type fileConfig struct {
	Pusher struct {
		AppID   string `toml:"app_id"`
		Key     string `toml:"key"`
		Secret  string `toml:"secret"`
		Cluster string `toml:"cluster"`
		Host    string `toml:"host"`
		Secure  *bool  `toml:"secure"`
	} `toml:"pusher"`
	Server struct {
		ListenAddress string `toml:"listen_address"`
		TLSCert       string `toml:"tls_cert"`
		TLSKey        string `toml:"tls_key"`
	} `toml:"server"`
	Relay struct {
		PayloadMode    string `toml:"payload_mode"`
		TriggerTimeout string `toml:"trigger_timeout"`
	} `toml:"relay"`
	Log struct {
		Dir   string `toml:"dir"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load builds the process configuration from defaults, an optional TOML
// file, an optional .env file and the environment, then validates it.
// Every missing or invalid setting is reported in the returned error.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{lookup: os.LookupEnv}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := Defaults()
	var errs []error

	lookup, err := withDotenv(o.lookup, o.envFile)
	if err != nil {
		return Config{}, err
	}

	path := o.path
	if path == "" {
		path, _ = lookup(EnvConfigFile)
		path = strings.TrimSpace(path)
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	errs = append(errs, applyEnv(&cfg, lookup)...)

	for _, fn := range o.overrides {
		fn(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	setIf(&cfg.Pusher.AppID, fc.Pusher.AppID)
	setIf(&cfg.Pusher.Key, fc.Pusher.Key)
	setIf(&cfg.Pusher.Secret, fc.Pusher.Secret)
	setIf(&cfg.Pusher.Cluster, fc.Pusher.Cluster)
	setIf(&cfg.Pusher.Host, fc.Pusher.Host)
	if fc.Pusher.Secure != nil {
		cfg.Pusher.Secure = *fc.Pusher.Secure
	}
	setIf(&cfg.Server.ListenAddress, fc.Server.ListenAddress)
	setIf(&cfg.Server.TLSCert, fc.Server.TLSCert)
	setIf(&cfg.Server.TLSKey, fc.Server.TLSKey)
	if m := strings.TrimSpace(fc.Relay.PayloadMode); m != "" {
		cfg.Relay.PayloadMode = PayloadMode(strings.ToLower(m))
	}
	if t := strings.TrimSpace(fc.Relay.TriggerTimeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("config file %s: relay.trigger_timeout: %w", path, err)
		}
		cfg.Relay.TriggerTimeout = d
	}
	setIf(&cfg.Log.Dir, fc.Log.Dir)
	setIf(&cfg.Log.Level, fc.Log.Level)
	return nil
}

// withDotenv layers a dotenv file under lookup: variables already set in
// the environment win.
func withDotenv(lookup LookupFunc, envFile string) (LookupFunc, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	vals, err := godotenv.Read(envFile)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("env file %s: %w", envFile, err)
	}
	return func(k string) (string, bool) {
		if v, ok := lookup(k); ok {
			return v, true
		}
		v, ok := vals[k]
		return v, ok
	}, nil
}

func applyEnv(cfg *Config, lookup LookupFunc) []error {
	var errs []error
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}

	setIf(&cfg.Pusher.AppID, get(EnvAppID))
	setIf(&cfg.Pusher.Key, get(EnvAppKey))
	setIf(&cfg.Pusher.Secret, get(EnvAppSecret))
	setIf(&cfg.Pusher.Cluster, get(EnvAppCluster))
	setIf(&cfg.Pusher.Host, get(EnvAppHost))
	if v := get(EnvAppSecure); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAppSecure, err))
		} else {
			cfg.Pusher.Secure = b
		}
	}

	setIf(&cfg.Server.ListenAddress, get(EnvListenAddress))
	setIf(&cfg.Server.TLSCert, get(EnvTLSCert))
	setIf(&cfg.Server.TLSKey, get(EnvTLSKey))

	if v := get(EnvPayloadMode); v != "" {
		cfg.Relay.PayloadMode = PayloadMode(strings.ToLower(v))
	}
	if v := get(EnvTriggerTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTriggerTimeout, err))
		} else {
			cfg.Relay.TriggerTimeout = d
		}
	}

	setIf(&cfg.Log.Dir, get(EnvLogDir))
	setIf(&cfg.Log.Level, get(EnvLogLevel))
	return errs
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
