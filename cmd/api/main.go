package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycintake/docs"
	"kycintake/internal/config"
	"kycintake/internal/database"
	"kycintake/internal/database/migration"
	handlers "kycintake/internal/http/handler"
	"kycintake/internal/http/middleware"
	"kycintake/internal/kyc"
	"kycintake/internal/logger"
	"kycintake/internal/otel"
	"kycintake/internal/repository/postgres"
	"kycintake/internal/service"
	"kycintake/internal/storage"
)

// @title KYC Intake API
// @version 1.0
// @description Business and individual KYC submission intake.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	log := logger.NewWithLevel(os.Stdout, loc, logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		fatal(log, "failed to register service metrics", err)
	}

	contentStore, svcOpts, closeStore := buildContentStore(ctx, cfg, log)
	defer closeStore()

	validator := kyc.NewValidator(
		kyc.WithStrictFilenames(cfg.KYC.StrictFilenames),
		kyc.WithMaxDocumentAge(cfg.KYC.CR12MaxAgeDays),
		kyc.WithLocation(loc),
		kyc.WithLogger(log),
	)
	assembler := kyc.NewAssembler(contentStore,
		kyc.WithConcurrency(cfg.KYC.UploadConcurrency),
		kyc.WithUploadObserver(metrics.ObserveUpload),
	)

	subRepo := postgres.NewSubmissionPostgres(db)
	svcOpts = append(svcOpts, service.WithMetrics(metrics), service.WithLogger(log))
	subSvc := service.NewSubmissionService(validator, assembler, subRepo, svcOpts...)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.KYC.MaxUploadMB * 1024 * 1024,
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "failed to register http metrics", err)
	}

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, subSvc)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", addr, "content_store", cfg.ContentStore.Backend)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			fatal(log, "failed to start server", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", "error", err)
	}
}

// buildContentStore selects the archive backend. Document retrieval is only
// offered for the object store, where content identifiers map to keys.
func buildContentStore(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (storage.ContentStore, []service.Option, func()) {
	switch cfg.ContentStore.Backend {
	case config.BackendMinIO:
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			fatal(log, "failed to initialize object storage", err)
		}
		cs := storage.NewObjectContentStore(objStore, cfg.ContentStore.Prefix)
		opts := []service.Option{
			service.WithDocumentStore(objStore, cfg.ContentStore.Prefix, cfg.ContentStore.PresignExpiry),
		}
		return cs, opts, func() {}

	case config.BackendGateway:
		gw, err := storage.NewGatewayContentStore(cfg.ContentStore)
		if err != nil {
			fatal(log, "failed to initialize storage gateway", err)
		}

		rdb, err := storage.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			fatal(log, "failed to connect to redis", err)
		}
		if rdb == nil {
			log.Warn("REDIS_URL not set, content index is process-local")
			return storage.NewDedupContentStore(gw, storage.NewMemoryContentIndex(), log), nil, func() {}
		}
		index := storage.NewRedisContentIndex(rdb, cfg.Redis.IndexTTL)
		return storage.NewDedupContentStore(gw, index, log), nil, func() { _ = rdb.Close() }

	default:
		fatal(log, "unsupported content store backend", errors.New(cfg.ContentStore.Backend))
		return nil, nil, nil
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
