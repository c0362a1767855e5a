package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/storefront/internal/auth/cache"
	httpapi "github.com/aussiebroadwan/storefront/internal/auth/http"
	"github.com/aussiebroadwan/storefront/internal/auth/metrics"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time with -ldflags "-X ...app.BuildVersion=".
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	redis      *redis.Client     // nil when AUTH_REDIS_URL is unset
	stampCache *cache.StampCache // nil when AUTH_REDIS_URL is unset
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Services
	authService         *service.AuthService
	stamps              *service.StampValidator
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	if cfg.DevRevealCodes {
		app.logger.Warn("one-time codes will be written to the log")
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	key, err := LoadSigningKey(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if app.signer, app.verifier, err = NewTokenKeys(app.cfg, key); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initCache(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initMetrics(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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
			app.housekeepingService.Stop()
			app.closeStores()
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
	app.logger.Info("shutting down auth service...")

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

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects to Redis when configured. Without it stamp checks read
// the database on every authenticated request.
func (app *Application) initCache(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.logger.Info("stamp cache disabled")
		return nil
	}

	client, err := cache.NewClient(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client
	app.logger.Info("stamp cache enabled", "ttl", app.cfg.StampCacheTTL)
	return nil
}

func (app *Application) initMetrics() error {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.New(metrics.Options{Registerer: app.registry})
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	app.metrics = m
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.stamps = &service.StampValidator{Store: app.db, TTL: app.cfg.StampCacheTTL}
	if app.redis != nil {
		app.stampCache = cache.NewStampCache(app.redis, "")
		app.stamps.Cache = app.stampCache
	}

	var roles []string
	if app.cfg.DefaultRole != "" {
		roles = []string{app.cfg.DefaultRole}
	}

	policy := service.DefaultPasswordPolicy()
	policy.MinScore = app.cfg.PasswordMinScore

	app.authService = &service.AuthService{
		Store: app.db,
		Accounts: &service.AccountDirectory{
			Store:             app.db,
			Hasher:            cryptox.Argon2id{},
			Policy:            policy,
			IDPrefix:          app.cfg.IDPrefix,
			DefaultRoles:      roles,
			MaxFailedAttempts: app.cfg.MaxFailedAttempts,
			LockoutDuration:   app.cfg.LockoutDuration,
		},
		OTP: &service.OTPManager{Store: app.db},
		Tokens: &service.TokenIssuer{
			Signer:     app.signer,
			Verifier:   app.verifier,
			Issuer:     app.cfg.Issuer,
			Audience:   app.cfg.Audience,
			AccessTTL:  app.cfg.AccessTokenTTL,
			RefreshTTL: app.cfg.RefreshTokenTTL,
		},
		Refresh: &service.RefreshTokenLedger{Store: app.db},
		Stamps:  app.stamps,
		Notifier: service.LogNotifier{
			Logger:      app.logger,
			RevealCodes: app.cfg.DevRevealCodes,
		},
		Hooks: []service.Hook{
			service.AuditHook{Logger: app.logger},
			app.metrics,
		},
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.Stamps = app.stamps
	router.Metrics = app.metrics
	router.MetricsPage = promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})
	router.SecureCookies = app.cfg.SecureCookies
	if app.stampCache != nil {
		router.Cache = app.stampCache
	}
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
