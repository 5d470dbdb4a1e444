package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docanalytics/internal/classify"
	"docanalytics/internal/config"
	"docanalytics/internal/database"
	"docanalytics/internal/database/migration"
	"docanalytics/internal/extract"
	handlers "docanalytics/internal/http/handler"
	"docanalytics/internal/http/middleware"
	"docanalytics/internal/logging"
	"docanalytics/internal/otel"
	"docanalytics/internal/repository/postgres"
	"docanalytics/internal/service"
	"docanalytics/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Document Analytics API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, loc)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		return err
	}

	objStore, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to initialize object storage", zap.Error(err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	// Repositories and services. The classifier is trained once and shared.
	docRepo := postgres.NewDocumentPostgres(db)
	logRepo := postgres.NewSearchLogPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo,
		extract.New(extract.WithLogger(logger)),
		classify.New(),
		service.WithLogger(logger),
		service.WithMetrics(metrics),
		service.WithSpoolDir(cfg.UploadDir),
	)
	searchSvc := service.NewSearchService(docRepo, logRepo, metrics, logger)
	statsSvc := service.NewStatisticsService(docRepo, logRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(logger),
		BodyLimit:    int(cfg.UploadMaxBytes),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:         db,
		Documents:  docSvc,
		Search:     searchSvc,
		Statistics: statsSvc,
		Metrics:    reg,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.Port), zap.String("host", cfg.AppHost))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
	return nil
}
