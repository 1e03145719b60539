package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/agentdesk/internal/desk/http"
	"github.com/aussiebroadwan/agentdesk/internal/desk/i18n"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store/drivers/postgres"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store/drivers/sqlite"
	"github.com/aussiebroadwan/agentdesk/pkg/cryptox"
	"github.com/aussiebroadwan/agentdesk/pkg/jwtx"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
	"github.com/aussiebroadwan/agentdesk/pkg/tracex"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/agentdesk/internal/desk/app.BuildVersion=..."
var BuildVersion = "v0.1.0"

const serviceName = "agentdesk"

// Application encapsulates the desk service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db            store.Store
	tokens        *jwtx.Issuer
	translator    *i18n.Translator
	metrics       *metrics.Metrics
	clock         service.Clock
	locks         keylock.Locker
	redis         *redis.Client // nil with the memory lock backend
	traceShutdown tracex.ShutdownFunc

	// Services
	authService         *service.AuthService
	agentService        *service.AgentService
	clientService       *service.ClientService
	mfaService          *service.MFAService
	bootstrapService    *service.BootstrapService
	dashboardService    *service.DashboardService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service:    serviceName,
		Version:    BuildVersion,
		Env:        cfg.Env,
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}
	ctx := context.Background()

	// Pepper must be installed before any password is hashed or checked
	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}
	app.clock = service.Clock{Location: loc}

	shutdown, err := tracex.Init(ctx, app.tracingConfig(), app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.traceShutdown = shutdown

	db, err := OpenStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initTokens(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := app.initLocks(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	tr, err := i18n.New(cfg.DefaultLang)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	app.translator = tr

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler for in-process use.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("agentdesk starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"db_driver", app.cfg.DBDriver,
		"lock_backend", app.cfg.LockBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down agentdesk...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Flush pending spans
	if err := app.traceShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("agentdesk stopped")
	return nil
}

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DBDriver)
	return db, nil
}

// initTokens loads or creates the session signing key. Sessions survive a
// restart as long as the key file is kept.
func (app *Application) initTokens() error {
	signer, err := jwtx.LoadSigner(app.cfg.SessionKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load session key: %w", err)
	}
	app.tokens = jwtx.NewIssuer(app.cfg.Issuer, signer, jwtx.WithTTL(app.cfg.AccessTokenTTL))

	app.logger.Info("session signing key loaded",
		"kid", signer.KID(),
		"issuer", app.cfg.Issuer,
		"ttl", app.cfg.AccessTokenTTL,
	)
	return nil
}

// initLocks selects the per-agent lock backend. The memory backend only
// serialises work inside this process.
func (app *Application) initLocks(ctx context.Context) error {
	if app.cfg.LockBackend != "redis" {
		app.locks = keylock.NewMemory()
		if app.cfg.DBDriver == "postgres" {
			app.logger.Warn("memory lock backend does not coordinate multiple replicas")
		}
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.redis = client
	app.locks = keylock.NewRedis(client, keylock.WithTTL(app.cfg.LockTTL))
	app.logger.Info("redis lock backend enabled", "addr", app.cfg.RedisAddr, "ttl", app.cfg.LockTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:   app.db,
		Tokens:  app.tokens,
		Metrics: app.metrics,
	}
	app.agentService = &service.AgentService{
		Store:   app.db,
		Locks:   app.locks,
		Metrics: app.metrics,
	}
	app.clientService = &service.ClientService{
		Store: app.db,
		Locks: app.locks,
		Clock: app.clock,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	app.dashboardService = &service.DashboardService{
		Store: app.db,
		Clock: app.clock,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.metrics,
		app.clock,
		app.cfg.HousekeepingInterval,
		app.cfg.ExpiryWarningWindow,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.db,
		app.tokens,
		app.translator,
		app.metrics,
		app.clock,
		BuildVersion,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.AgentService = app.agentService
	router.ClientService = app.clientService
	router.MFAService = app.mfaService
	router.BootstrapService = app.bootstrapService
	router.DashboardService = app.dashboardService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func (app *Application) tracingConfig() tracex.Config {
	endpoint, insecure := otlpEndpoint(app.cfg.OTelEndpoint)
	return tracex.Config{
		Enabled:     endpoint != "",
		ServiceName: serviceName,
		Version:     BuildVersion,
		Environment: app.cfg.Env,
		Endpoint:    endpoint,
		Insecure:    insecure,
		SampleRate:  app.cfg.OTelSamplerRatio,
	}
}

// otlpEndpoint accepts either host:port or a URL. A plain http URL turns
// TLS off.
func otlpEndpoint(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw, false
	}
	return u.Host, u.Scheme == "http"
}
