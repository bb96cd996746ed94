package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	authgw "github.com/adalabs/parent-dashboard/internal/adapter/driven/authgw"
	sqliteadapter "github.com/adalabs/parent-dashboard/internal/adapter/driven/sqlite"
	httphandler "github.com/adalabs/parent-dashboard/internal/adapter/driving/http"
	webhandler "github.com/adalabs/parent-dashboard/internal/adapter/driving/web"
	"github.com/adalabs/parent-dashboard/internal/application"
	"github.com/adalabs/parent-dashboard/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"auth_url", cfg.AuthURL,
		"base_url", cfg.BaseURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	sessionStore, err := sqliteadapter.NewSessionRepo(db, cfg.SecretKey)
	if err != nil {
		return err
	}
	flowStore := sqliteadapter.NewFlowRepo(db)
	gateway := authgw.NewClient(cfg.AuthURL, cfg.AuthClientID, cfg.AuthClientSecret, cfg.CallbackURL())

	// 6. Create services.
	authSvc := application.NewAuthService(gateway, sessionStore, flowStore, cfg.SessionTTL)
	healthSvc := application.NewHealthService(db)

	// 7. Start the expiry sweeper.
	sweeper := application.NewSweeper(sessionStore, flowStore, cfg.SweepInterval)
	go sweeper.Start(ctx)

	// 8. Register API and page routes on a shared mux.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(authSvc, healthSvc, slog.Default())
	httphandler.RegisterRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(authSvc, cfg.SecureCookies, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 9. Log startup complete.
	slog.Info("parent dashboard started",
		"listen_addr", cfg.ListenAddr,
		"callback_url", cfg.CallbackURL(),
	)

	// 10. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 11. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
