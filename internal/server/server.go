// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/go-accounts/internal/config"
	"codeberg.org/oliverandrich/go-accounts/internal/database"
	"codeberg.org/oliverandrich/go-accounts/internal/guard"
	"codeberg.org/oliverandrich/go-accounts/internal/handlers"
	"codeberg.org/oliverandrich/go-accounts/internal/i18n"
	"codeberg.org/oliverandrich/go-accounts/internal/repository"
	"codeberg.org/oliverandrich/go-accounts/internal/services/auth"
	"codeberg.org/oliverandrich/go-accounts/internal/services/email"
	"codeberg.org/oliverandrich/go-accounts/internal/services/session"
	"codeberg.org/oliverandrich/go-accounts/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"api_path", cfg.APIPath(),
	)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	var mailer auth.WelcomeMailer
	if cfg.SMTP.Enabled() {
		svc, mailErr := email.NewService(&cfg.SMTP, cfg.Server.AppBaseURL)
		if mailErr != nil {
			return fmt.Errorf("failed to configure mail: %w", mailErr)
		}
		mailer = svc
	}

	e, err := New(cfg, repository.New(db), mailer)
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the Echo instance with middleware and routes. mailer may be nil.
func New(cfg *config.Config, repo *repository.Repository, mailer auth.WelcomeMailer) (*echo.Echo, error) {
	cipher, err := session.NewCipher(cfg.Auth.Secret, cfg.Session.CookieName)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie cipher: %w", err)
	}
	sessions := session.NewManager(&cfg.Session, token.NewService(cfg.Auth.Secret), cipher, !cfg.Server.IsLocal())
	authService := auth.NewService(repo, auth.NewPasswordHasher(auth.PasswordCost), mailer)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	setupMiddleware(e, cfg)
	if err := setupRoutes(e, cfg, repo, authService, sessions); err != nil {
		return nil, err
	}
	return e, nil
}

func setupRoutes(e *echo.Echo, cfg *config.Config, repo *repository.Repository, authService *auth.Service, sessions *session.Manager) error {
	h := handlers.New(repo)
	ah := handlers.NewAuth(authService, sessions)

	guardScript, err := handlers.GuardScript(guard.DefaultPolicy())
	if err != nil {
		return err
	}

	e.GET("/health", h.Health)
	e.GET("/static/js/auth-guard.js", guardScript)

	user := e.Group(cfg.APIPath() + "/user")
	user.POST("/signup/v1", ah.Signup)
	user.POST("/login/v1", ah.Login)
	user.POST("/logout/v1", ah.Logout, RequireAuth(sessions))
	user.GET("/profile/v1", ah.Profile, RequireAuth(sessions))

	return nil
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e.Server.ReadHeaderTimeout = 10 * time.Second

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errChan := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}
