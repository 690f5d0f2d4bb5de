package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/pusher-relay/pkg/bundlefx"
	"github.com/joeydtaylor/pusher-relay/pkg/config"
	"github.com/joeydtaylor/pusher-relay/pkg/core"
	"github.com/joeydtaylor/pusher-relay/pkg/middleware/logger"
	"github.com/joeydtaylor/pusher-relay/pkg/middleware/metrics"
	"github.com/joeydtaylor/pusher-relay/pkg/relay"
	"github.com/joeydtaylor/pusher-relay/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Options ----------

type Options struct {
	Service   string          // for logs only
	Config    []config.Option // passed to config.Load
	Triggerer relay.Triggerer // nil: build a Pusher client from config
}

type Option func(*Options)

func WithService(s string) Option                 { return func(o *Options) { o.Service = s } }
func WithConfigOptions(c ...config.Option) Option { return func(o *Options) { o.Config = append(o.Config, c...) } }

// WithTriggerer replaces the Pusher client, e.g. with a stub in tests.
func WithTriggerer(t relay.Triggerer) Option { return func(o *Options) { o.Triggerer = t } }

// Module returns the complete Fx option set for the relay service.
func Module(opts ...Option) fx.Option {
	o := Options{Service: "pusher-relay"}
	for _, fn := range opts {
		fn(&o)
	}
	return fx.Options(
		fx.Supply(o),
		// Startup validation happens here, before any hook binds the port.
		fx.Provide(provideConfig),
		bundlefx.Module,
		fx.Provide(httpx.NewChi),
		fx.Provide(provideTriggerer),
		fx.Provide(provideRelayClient),
		fx.Provide(provideStrategy),
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),
		fx.Provide(NewEndpoint),
		fx.Invoke(registerHooks),
	)
}

// ---------- Providers ----------

func provideConfig(o Options) (config.Config, error) {
	cfg, err := config.Load(o.Config...)
	if err != nil {
		return config.Config{}, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func provideTriggerer(o Options, cfg config.Config) relay.Triggerer {
	if o.Triggerer != nil {
		return o.Triggerer
	}
	return relay.NewPusherClient(cfg.Pusher, cfg.Relay.TriggerTimeout)
}

func provideRelayClient(t relay.Triggerer, zl *zap.Logger) *relay.Client {
	return relay.NewClient(t,
		relay.WithLogger(zl.Named("relay")),
		relay.WithObserver(metrics.ObserveTrigger),
	)
}

func provideStrategy(cfg config.Config) (relay.PayloadStrategy, error) {
	return relay.StrategyFor(cfg.Relay.PayloadMode)
}

type routerDeps struct {
	fx.In

	Cfg      config.Config
	LogMW    *logger.Middleware
	Metrics  http.Handler `name:"metrics"`
	Relay    *relay.Client
	Strategy relay.PayloadStrategy
	R        httpx.Router
	Log      *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(core.BuildDeps{
		LogMW:          d.LogMW,
		Metrics:        d.Metrics,
		Relay:          d.Relay,
		Strategy:       d.Strategy,
		Router:         d.R,
		Log:            d.Log.Named("send"),
		TriggerTimeout: d.Cfg.Relay.TriggerTimeout,
	})
}

// ---------- Endpoint ----------

// Endpoint reports the address the server actually bound.
type Endpoint struct {
	mu   sync.RWMutex
	addr string
}

func NewEndpoint() *Endpoint { return &Endpoint{} }

func (e *Endpoint) Addr() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.addr
}

func (e *Endpoint) set(a string) {
	e.mu.Lock()
	e.addr = a
	e.mu.Unlock()
}

// ---------- Lifecycle ----------

type serverDeps struct {
	fx.In
	Opts     Options
	Cfg      config.Config
	Logger   *zap.Logger
	App      http.Handler `name:"app"`
	Endpoint *Endpoint
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := d.Cfg.Server.ListenAddress
	cert, key := d.Cfg.Server.TLSCert, d.Cfg.Server.TLSKey

	srv := &http.Server{
		Addr:    addr,
		Handler: d.App,
		// WriteTimeout leaves room for a full trigger timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: d.Cfg.Relay.TriggerTimeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			d.Endpoint.set(ln.Addr().String())

			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", ln.Addr().String()),
					zap.String("cert", cert),
					zap.String("payloadMode", string(d.Cfg.Relay.PayloadMode)),
				)
				go func() {
					if err := srv.ServeTLS(ln, cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}

			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Opts.Service),
				zap.String("addr", ln.Addr().String()),
				zap.String("payloadMode", string(d.Cfg.Relay.PayloadMode)),
			)
			go func() {
				srv.TLSConfig = nil
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- helpers ----------

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
