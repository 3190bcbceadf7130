// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/config"
	"github.com/festy23/hacksavvy/internal/database/database"
	"github.com/festy23/hacksavvy/internal/database/migrate"
	"github.com/festy23/hacksavvy/internal/health"
	legacyRouter "github.com/festy23/hacksavvy/internal/legacy/router"
	"github.com/festy23/hacksavvy/internal/mail"
	"github.com/festy23/hacksavvy/internal/middleware"
	statisticsRouter "github.com/festy23/hacksavvy/internal/statistics/router"
	"github.com/festy23/hacksavvy/internal/storage"
	teamRouter "github.com/festy23/hacksavvy/internal/team/router"
	"github.com/festy23/hacksavvy/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	lg, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Errorw("server stopped with error", "error", err)
		_ = lg.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, lg *zap.SugaredLogger) error {
	db, err := database.New(lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			lg.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, migrate.GetMigrationsPath(), lg); err != nil {
		return err
	}

	store, err := storage.NewLocalStore(cfg.Storage, lg)
	if err != nil {
		return err
	}

	notifier := mail.NewNotifier(mail.NewMailer(cfg.Mail, lg), cfg.Mail, lg)
	policy := auth.NewPolicy(cfg.Auth.AdminEmails)
	verifier := auth.NewVerifier(cfg.Auth)
	if policy.Size() == 0 {
		lg.Warnw("admin allow-list is empty, review endpoints are unreachable")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(lg))
	r.Use(auth.Authenticate(verifier, cfg.Auth.CookieName))
	r.Use(middleware.Logger(lg))

	health.RegisterRoutes(r, health.New(db, store, lg))
	auth.RegisterRoutes(r, auth.NewHandler(verifier, policy, cfg.Auth, lg))

	if strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		r.Group(cfg.Storage.PublicBaseURL, middleware.UploadHeaders()).Static("/", store.Root())
	}

	api := r.Group("/api")
	admin := api.Group("/admin", auth.RequireAdmin(policy))

	teamRouter.RegisterRoutes(api, admin, teamRouter.Deps{
		DB:           db,
		Store:        store,
		Notifier:     notifier,
		Policy:       policy,
		Storage:      cfg.Storage,
		Registration: cfg.Registration,
		Logger:       lg,
	})
	statisticsRouter.RegisterRoutes(admin, db, policy, lg)
	legacyRouter.RegisterRoutes(admin, db, policy, notifier, lg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Infow("starting server",
			"addr", srv.Addr,
			"admins", policy.Size(),
			"mail_enabled", cfg.Mail.Enabled(),
			"resubmission_mode", cfg.Registration.ResubmissionMode,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Infow("shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
