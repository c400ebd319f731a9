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

	httpapi "github.com/wishlane/accounts/internal/account/http"
	"github.com/wishlane/accounts/internal/account/mail"
	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/internal/account/storage"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/internal/account/store/drivers/sqlite"
	"github.com/wishlane/accounts/pkg/cryptox"
	"github.com/wishlane/accounts/pkg/i18nx"
	"github.com/wishlane/accounts/pkg/jwtx"
	"github.com/wishlane/accounts/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the account service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	bundle *i18nx.Bundle
	issuer *jwtx.Issuer

	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "account-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		bundle: i18nx.NewBundle(),
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if cfg.TransportSecret == "" {
		return nil, errors.New("TRANSPORT_SECRET is required")
	}

	app.issuer = jwtx.NewIssuer(cfg.AccessSecret, cfg.RefreshSecret)
	app.issuer.AccessTTL = cfg.AccessTTL
	app.issuer.RefreshTTL = cfg.RefreshTTL

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("account service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down account service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("account service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

func (app *Application) initServices() error {
	mailer, err := app.buildMailer()
	if err != nil {
		return err
	}

	files, err := app.buildStorage()
	if err != nil {
		return err
	}

	app.accountService = &service.AccountService{
		Store:            app.db,
		Issuer:           app.issuer,
		Mailer:           mailer,
		Files:            files,
		Codec:            cryptox.NewTransportCodec(app.cfg.TransportSecret),
		LinkTTL:          app.cfg.LinkTTL,
		PasswordHashCost: app.cfg.PasswordHashCost,
		APIURL:           app.cfg.APIURL,
		ClientURL:        app.cfg.ClientURL,
		FeaturedUserID:   app.cfg.FeaturedUserID,
		StatsOnRefresh:   app.cfg.StatsOnRefresh,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.accountService,
		app.bundle,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

func (app *Application) buildMailer() (mail.Mailer, error) {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("no SMTP relay configured, emails will only be logged")
		return mail.NewLogMailer(app.logger), nil
	}

	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	}, app.bundle, app.logger), nil
}

func (app *Application) buildStorage() (storage.ObjectStorage, error) {
	if app.cfg.MinioEndpoint == "" {
		app.logger.Warn("no object storage configured, uploaded files are not cleaned up on account deletion")
		return storage.Noop{}, nil
	}

	ms, err := storage.NewMinioStorage(storage.MinioConfig{
		Endpoint:  app.cfg.MinioEndpoint,
		AccessKey: app.cfg.MinioAccessKey,
		SecretKey: app.cfg.MinioSecretKey,
		Bucket:    app.cfg.MinioBucket,
		UseSSL:    app.cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
	}

	return ms, nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.accountService,
		app.issuer,
		app.bundle,
		app.logger,
		app.cfg.ClientURL,
		app.cfg.RefreshTTL,
		app.cfg.SecureCookies,
	)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
