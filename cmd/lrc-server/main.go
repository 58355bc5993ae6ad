package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/zad-edu/masadr2040/api/swagger"
	"github.com/zad-edu/masadr2040/internal/handler"
	"github.com/zad-edu/masadr2040/internal/localstore"
	"github.com/zad-edu/masadr2040/internal/middleware"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/remote"
	"github.com/zad-edu/masadr2040/internal/repository"
	"github.com/zad-edu/masadr2040/internal/service"
	"github.com/zad-edu/masadr2040/internal/store"
	syncengine "github.com/zad-edu/masadr2040/internal/sync"
	"github.com/zad-edu/masadr2040/pkg/cache"
	"github.com/zad-edu/masadr2040/pkg/config"
	"github.com/zad-edu/masadr2040/pkg/export"
	"github.com/zad-edu/masadr2040/pkg/logger"
	corsmiddleware "github.com/zad-edu/masadr2040/pkg/middleware/cors"
	reqidmiddleware "github.com/zad-edu/masadr2040/pkg/middleware/requestid"
)

// @title Masadr 2040 Booking API
// @version 1.0.0
// @description Learning resource center timetable booking service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		logr.Sugar().Fatalw("failed to open local store", "path", cfg.LocalStore.Path, "error", err)
	}
	defer db.Close() //nolint:errcheck
	documents := localstore.NewDocumentRepository(db, cfg.LocalStore.DocumentKey, logr)

	bookings := store.New()
	persisted, err := documents.Load(ctx)
	if err != nil {
		logr.Sugar().Fatalw("failed to load booking document", "error", err)
	}
	bookings.Load(persisted)
	logr.Sugar().Infow("local bookings loaded", "count", bookings.Len())

	backend, err := remote.NewBackend(cfg.Remote)
	if err != nil {
		logr.Sugar().Fatalw("failed to build remote backend", "error", err)
	}
	prober := remote.NewHTTPProber(cfg.Remote.ProbeURL)

	orch := syncengine.New(bookings, documents, backend, prober, logr, syncengine.Options{
		DebounceDelay: cfg.Sync.DebounceDelay,
		PollInterval:  cfg.Sync.PollInterval,
	})
	orch.SetNotifier(func(level, message string) {
		logr.Sugar().Infow("sync notice", "level", level, "message", message)
	})

	var metricsService *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsService = service.NewMetricsService(func() float64 {
			return float64(bookings.Len())
		})
		orch.SetRecorder(metricsService)
	}

	var cacheService *service.CacheService
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, stats cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Stats.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	bookingService := service.NewBookingService(bookings, models.DefaultRoster(), validate, logr)
	statsService := service.NewStatsService(bookings, cacheService, logr, cfg.Stats.CacheTTL)
	gateService := service.NewGateService(cfg.Gate, validate, logr)
	syncService := service.NewSyncService(orch, cfg.Remote, validate, logr)
	exportService := service.NewExportService(bookings, statsService, logr, export.NewCSVExporter(), export.NewPDFExporter())

	orch.Start(ctx)
	defer orch.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsService != nil {
		r.Use(middleware.Metrics(metricsService))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "sync": orch.State().Status})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if metricsService != nil {
		r.GET("/metrics", handler.NewMetricsHandler(metricsService).Scrape)
	}

	bookingHandler := handler.NewBookingHandler(bookingService)
	scheduleHandler := handler.NewScheduleHandler(bookingService)
	statsHandler := handler.NewStatsHandler(statsService)
	gateHandler := handler.NewGateHandler(gateService)
	syncHandler := handler.NewSyncHandler(syncService)

	api := r.Group(cfg.APIPrefix)
	gate := middleware.Gate(gateService)

	// The all-bookings listing, stats, exports and sync configuration are
	// protected actions; slot lookups and creation are not.
	api.GET("/bookings", gate, bookingHandler.List)
	api.GET("/bookings/:id", bookingHandler.Get)
	api.POST("/bookings", bookingHandler.Create)
	api.POST("/bookings/precheck", bookingHandler.Precheck)
	api.PUT("/bookings/:id", gate, bookingHandler.Update)
	api.DELETE("/bookings/:id", gate, bookingHandler.Delete)

	api.GET("/roster", bookingHandler.Roster)
	api.GET("/weeks", scheduleHandler.Weeks)
	api.GET("/slots", scheduleHandler.Grid)
	api.GET("/stats", gate, statsHandler.Overview)

	api.POST("/gate/unlock", gateHandler.Unlock)

	api.GET("/sync/status", syncHandler.Status)
	api.POST("/sync/refresh", syncHandler.Refresh)
	api.GET("/sync/config", gate, syncHandler.Config)
	api.PUT("/sync/config", gate, syncHandler.Configure)

	if cfg.Export.Enabled {
		exportHandler := handler.NewExportHandler(exportService)
		api.GET("/export/bookings", gate, exportHandler.Bookings)
		api.GET("/export/stats", gate, exportHandler.Stats)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
