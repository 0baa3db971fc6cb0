package mailrelay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailrelay/core/config"
	"github.com/dmitrymomot/mailrelay/core/email"
	"github.com/dmitrymomot/mailrelay/core/handler"
	"github.com/dmitrymomot/mailrelay/core/health"
	"github.com/dmitrymomot/mailrelay/core/logger"
	"github.com/dmitrymomot/mailrelay/core/router"
	"github.com/dmitrymomot/mailrelay/core/server"
	"github.com/dmitrymomot/mailrelay/integration/email/smtp"
	"github.com/dmitrymomot/mailrelay/middleware"
	"github.com/dmitrymomot/mailrelay/relay"
)

// ErrInvalidConfig is returned by NewApp for unusable process configuration.
var ErrInvalidConfig = errors.New("invalid app configuration")

// App wires the relay, health checks and HTTP server together.
type App struct {
	config   *Config
	router   router.Router[*router.Context]
	server   *server.Server
	settings *relay.Settings
	sender   relay.SenderFactory
	logger   *slog.Logger
}

type AppOption func(*App) error

// NewApp builds the application. Without WithConfig the configuration is
// loaded from the environment.
func NewApp(opts ...AppOption) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		var cfg Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		app.config = &cfg
	}
	cfg := app.config

	if !strings.HasPrefix(cfg.Relay.Path, "/") {
		return nil, fmt.Errorf("%w: RELAY_PATH must start with '/': %q", ErrInvalidConfig, cfg.Relay.Path)
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	if app.sender == nil {
		sender, err := senderFactory(cfg.Relay)
		if err != nil {
			return nil, err
		}
		app.sender = sender
	}

	app.settings = relay.NewSettings(cfg.Relay.EnvFile)

	if app.router == nil {
		app.router = app.newRouter()
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Handler returns the routed HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves until ctx is canceled. It is meant for errgroup.Group.Go.
func (a *App) Run(ctx context.Context) func() error {
	if _, err := a.settings.Load(); err != nil {
		a.logger.WarnContext(ctx, "mail settings not loaded, relay requests fail until fixed",
			logger.Component("relay"),
			logger.Key("file", a.settings.Path()),
			logger.Error(err),
		)
	}

	a.logger.InfoContext(ctx, "mail relay configured",
		logger.Component("app"),
		logger.Group("relay",
			slog.String("path", a.config.Relay.Path),
			slog.String("driver", a.config.Relay.MailDriver),
			slog.Int64("max_body_bytes", a.config.Relay.MaxBodyBytes),
		),
	)

	return a.server.Run(ctx, a.router)
}

func (a *App) newRouter() router.Router[*router.Context] {
	log := a.logger
	rl := relay.New(a.settings,
		relay.WithLogger(log),
		relay.WithSenderFactory(a.sender),
		relay.WithMaxBodyBytes(a.config.Relay.MaxBodyBytes),
	)

	r := router.New[*router.Context](
		router.WithLogger[*router.Context](log),
		router.WithErrorHandler(relay.ErrorHandler[*router.Context](log)),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
				Logger: log,
				Skip: func(ctx handler.Context) bool {
					return strings.HasPrefix(ctx.Request().URL.Path, "/health/")
				},
			}),
		),
	)

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](log, a.settings.Check))
	r.Handle(a.config.Relay.Path, relay.Handler[*router.Context](rl))

	return r
}

func newLogger(cfg *Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	return logger.New(opts...)
}

func senderFactory(cfg RelayConfig) (relay.SenderFactory, error) {
	switch strings.ToLower(cfg.MailDriver) {
	case "", DriverSMTP:
		return relay.SMTPSender, nil
	case DriverDev:
		dev := email.NewDevSender(cfg.DevDir)
		return func(smtp.Config) (email.EmailSender, error) {
			return dev, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown MAIL_DRIVER %q", ErrInvalidConfig, cfg.MailDriver)
	}
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = &cfg
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithSenderFactory(f relay.SenderFactory) AppOption {
	return func(app *App) error {
		if f == nil {
			return errors.New("sender factory cannot be nil")
		}
		app.sender = f
		return nil
	}
}
