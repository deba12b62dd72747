package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/locvowork/employment_history/internal/config"
	"github.com/locvowork/employment_history/internal/domain"
	"github.com/locvowork/employment_history/internal/handler"
	"github.com/locvowork/employment_history/internal/logger"
	"github.com/locvowork/employment_history/internal/repository"
	"github.com/locvowork/employment_history/internal/service"
	"github.com/locvowork/employment_history/internal/storage"
)

type App struct {
	Echo  *echo.Echo
	Store *storage.LineFile
	Repo  domain.EmploymentRepository
	Clock domain.Clock
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &App{
		Echo:  e,
		Clock: domain.SystemClock{},
	}
}

// Initialize loads configuration, sets up logging and builds the storage
// layer. Callers that only need the data file (the seeder) can stop here.
func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	a.Store = storage.NewLineFile(config.DefaultEnvConfig.DATA_FILE_PATH)
	a.Repo = repository.NewEmploymentRepository(a.Store, a.Clock)
	logger.InfoLog(ctx, "Employment records stored in %s", a.Store.Path())
	return nil
}

// InitializeServer wires the service and handlers onto the echo instance.
func (a *App) InitializeServer(ctx context.Context) error {
	if a.Repo == nil {
		return errors.New("app is not initialized")
	}

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	a.Echo.Renderer = renderer
	a.Echo.Validator = handler.NewRequestValidator()

	// Initialize dependencies
	empSvc := service.NewEmploymentService(a.Repo, a.Clock, config.DefaultEnvConfig.REPORT_CONFIG_PATH)
	empHandler := handler.NewEmploymentHandler(empSvc)
	personHandler := handler.NewPersonHandler(empSvc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(empHandler, personHandler)

	logger.DebugLog(ctx, "HTTP routes registered")
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(contextLogger)
	a.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := logger.Logger().Info()
			if v.Error != nil {
				evt = logger.Logger().Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	a.Echo.Use(middleware.Recover())
}

// contextLogger puts a logger carrying the request id into the request
// context so service code logs with it.
func contextLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		req := c.Request()
		ctx := logger.WithLogger(req.Context(), map[string]interface{}{"request_id": id})
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

func (a *App) RegisterRoutes(empHandler *handler.EmploymentHandler, personHandler *handler.PersonHandler) {
	a.Echo.GET("/", empHandler.IndexHandler)
	a.Echo.GET("/healthz", empHandler.HealthHandler)

	pages := a.Echo.Group("/employments")
	pages.GET("/new", empHandler.NewFormHandler)
	pages.POST("", empHandler.CollectHandler)
	pages.GET("/report", empHandler.ReportHandler)
	pages.GET("/report/export", empHandler.ExportHandler)

	api := a.Echo.Group("/api")
	api.GET("/employments", empHandler.ListHandler)
	api.POST("/employments", empHandler.CreateHandler)
	api.POST("/people/preview", personHandler.PreviewHandler)
}

// Run serves HTTP until ctx is cancelled, then shuts the server down within
// the configured timeout.
func (a *App) Run(ctx context.Context) error {
	return a.serve(ctx, config.DefaultEnvConfig.Address(), config.DefaultEnvConfig.SHUTDOWN_TIMEOUT)
}

func (a *App) serve(ctx context.Context, address string, shutdownTimeout time.Duration) error {
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.InfoLog(gctx, "HTTP server listening on %s", address)
		if err := a.Echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLog(gctx, "HTTP server stopped with error", err)
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
		logger.InfoLog(shutdownCtx, "HTTP server stopped")
		return nil
	})

	return group.Wait()
}
