package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/badger/internal/adapters/http/api"
	"github.com/okian/badger/internal/adapters/http/site"
	"github.com/okian/badger/internal/adapters/http/swagger"
	app "github.com/okian/badger/internal/app"
	"github.com/okian/badger/internal/config"
	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	loggerInstance := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}
	applyLogging(ctx, cfg, loggerInstance)

	svc := newService(cfg, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		return errors.New("failed to start service: " + err.Error())
	}
	defer svc.Stop()

	handler, err := newHandler(ctx, svc, loggerInstance)
	if err != nil {
		return errors.New("failed to build routes: " + err.Error())
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return errors.New("HTTP server failed: " + err.Error())
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// applyLogging switches the log handler and level to the configured values,
// falling back to info on an invalid level.
func applyLogging(ctx context.Context, cfg *config.Config, log logger.Logger) {
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		log.Warn(ctx, "invalid log_format; keeping text", logger.String("log_format", cfg.LogFormat), logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
}

// newService builds the badge service from configuration.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log),
		app.WithInputs(cfg.VisitorsPath, cfg.SignupsPath, cfg.AliasesPath),
		app.WithSessions(sessionSpecs(cfg.MorningSessions), sessionSpecs(cfg.AfternoonSessions)),
		app.WithQRDir(cfg.QRDir),
		app.WithQRWorkers(cfg.QRWorkers),
		app.WithBadgesPerPage(cfg.BadgesPerPage),
	)
}

// newHandler registers the docs, API and site routes and wraps them with
// request id tagging.
func newHandler(ctx context.Context, svc *app.Service, log logger.Logger) (http.Handler, error) {
	mux := http.NewServeMux()

	// API docs under /api-docs and /openapi.yaml
	swagger.Register(ctx, mux)

	api.NewServer(svc, svc).Register(ctx, mux)

	if err := site.Register(ctx, mux, svc); err != nil {
		return nil, err
	}

	return api.RequestIDMiddleware(mux, log.Named("http")), nil
}

func sessionSpecs(in []config.SessionConfig) []assign.Spec {
	out := make([]assign.Spec, 0, len(in))
	for _, s := range in {
		out = append(out, assign.Spec{Name: s.Name, Capacity: s.Capacity})
	}
	return out
}
