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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tabprep/internal/config"
	"tabprep/internal/infrastructure"
	customMiddleware "tabprep/internal/middleware"
	"tabprep/internal/services"
	handlers "tabprep/internal/transport/http"
	"tabprep/pkg/contracts"
	"tabprep/pkg/contracts/domain"
)

// Application represents the main application container
type Application struct {
	Config            *config.Config
	Router            *chi.Mux
	Server            *http.Server
	PreprocessService *services.PreprocessService
	HealthService     *services.HealthService
	Logger            *slog.Logger
	OTelProviders     *infrastructure.OTelProviders
}

// NewApplication wires telemetry, services and the HTTP router for cfg.
// The logger is created by the caller so configuration errors can still be
// reported before the application exists.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	preprocess, err := services.NewPreprocessService(a.Config.Output, a.OTelProviders, a.Logger)
	if err != nil {
		return err
	}
	a.PreprocessService = preprocess
	a.HealthService = services.NewHealthService(a.Config.Output.Dir, a.Logger)
	return nil
}

// setupRouter builds the serve mode router.
// Middleware order: RequestID → RealIP → OTel → Logger → Recoverer → RateLimiter
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		return err
	}
	r.Use(otelMiddleware.Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	r.Get("/healthz", healthHandler.LivenessCheck)
	r.Get("/readyz", healthHandler.ReadinessCheck)
	r.Handle("/metrics", a.OTelProviders.MetricsHandler())

	preprocessHandler := handlers.NewPreprocessHandler(a.PreprocessService, a.Config.Server.RunTimeout, a.Logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateBurst,
			a.Logger,
		).Handler)
		r.Use(customMiddleware.MaxBodySize(a.Config.Server.MaxBodyBytes))

		r.Post("/preprocess", preprocessHandler.Preprocess)
	})

	a.Router = r
	return nil
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// RunBatch runs the pipeline once over files. When a metrics textfile is
// configured the registry is dumped to it after the run, whatever the outcome.
func (a *Application) RunBatch(ctx context.Context, files []domain.FileInfo) (domain.RunResult, error) {
	result, err := a.PreprocessService.Run(ctx, files)

	if path := a.Config.Telemetry.MetricsTextfile; path != "" {
		if werr := a.OTelProviders.WriteMetricsTextfile(path); werr != nil {
			a.Logger.WarnContext(ctx, "Failed to write metrics textfile",
				slog.String("path", path),
				slog.String("error", werr.Error()))
		}
	}

	return result, err
}

// Start starts the HTTP server in the background. A listen failure cancels
// the application context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("addr", a.Config.Server.Addr),
		slog.String("output_dir", a.Config.Output.Dir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully stops the server, waiting for in-flight runs up to the
// shutdown timeout
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.Close(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Close releases telemetry providers. Batch runs call it directly; serve mode
// reaches it through Stop.
func (a *Application) Close(ctx context.Context) error {
	if a.OTelProviders == nil {
		return nil
	}
	return a.OTelProviders.Shutdown(ctx)
}

// Run serves until interrupted or until ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(ctx)
}
