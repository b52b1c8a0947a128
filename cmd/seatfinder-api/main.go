package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-seat-finder/api/swagger"
	"github.com/noah-isme/exam-seat-finder/internal/catalog"
	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/handler"
	internalmiddleware "github.com/noah-isme/exam-seat-finder/internal/middleware"
	"github.com/noah-isme/exam-seat-finder/internal/repository"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	"github.com/noah-isme/exam-seat-finder/pkg/cache"
	"github.com/noah-isme/exam-seat-finder/pkg/config"
	"github.com/noah-isme/exam-seat-finder/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-seat-finder/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-seat-finder/pkg/middleware/requestid"
)

// @title Exam Seat Finder API
// @version 1.0.0
// @description Hall ticket lookup, classroom seating charts and exam rosters.
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

	cat, err := catalog.Generate(catalog.GeneratorConfig{
		Seed:          cfg.Catalog.Seed,
		Students:      cfg.Catalog.Students,
		Classrooms:    cfg.Catalog.Classrooms,
		Exams:         cfg.Catalog.Exams,
		ExamStartDate: cfg.Catalog.ExamStartDate,
	})
	if err != nil {
		logr.Fatal("failed to build catalog", zap.Error(err))
	}
	for _, issue := range cat.Audit() {
		logr.Warn("catalog issue", zap.String("kind", string(issue.Kind)), zap.String("subject", issue.Subject), zap.String("detail", issue.Detail))
	}
	stats := cat.Stats()
	logr.Info("catalog loaded",
		zap.Int("students", stats.Students),
		zap.Int("exams", stats.Exams),
		zap.Int("classrooms", stats.Classrooms),
		zap.Int("seats", stats.Seats),
		zap.Int("issues", stats.Issues))

	metricsSvc := service.NewMetricsService()
	metricsSvc.SetCatalogSize("students", stats.Students)
	metricsSvc.SetCatalogSize("exams", stats.Exams)
	metricsSvc.SetCatalogSize("classrooms", stats.Classrooms)
	metricsSvc.SetCatalogSize("seats", stats.Seats)

	cacheSvc := newCacheService(cfg, metricsSvc, logr)

	searchSvc := service.NewSearchService(service.SearchServiceParams{
		Directory: cat,
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Logger:    logr,
		Config:    service.SearchServiceConfig{CacheTTL: cfg.Cache.TTL},
	})
	classroomSvc := service.NewClassroomService(service.ClassroomServiceParams{
		Directory: cat,
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Logger:    logr,
		Config: service.ClassroomServiceConfig{
			Layout:   geometry.Config{CellSize: cfg.Layout.CellSize, Padding: cfg.Layout.Padding},
			CacheTTL: cfg.Cache.TTL,
		},
	})
	studentSvc := service.NewStudentService(cat, nil, logr)
	examSvc := service.NewExamService(cat, logr)

	handlers := handler.Handlers{
		Search:     handler.NewSearchHandler(searchSvc),
		Classrooms: handler.NewClassroomHandler(classroomSvc, nil),
		Students:   handler.NewStudentHandler(studentSvc),
		Exams:      handler.NewExamHandler(examSvc, nil),
		Exports:    cfg.Exports.Enabled,
	}
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(examSvc, classroomSvc, logr, nil, nil)
		handlers.Classrooms = handler.NewClassroomHandler(classroomSvc, exportSvc)
		handlers.Exams = handler.NewExamHandler(examSvc, exportSvc)
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, cat.Stats)

	if cfg.Cache.WarmupWorkers > 0 {
		warmup := service.NewWarmupService(cat, classroomSvc, cacheSvc, logr, service.WarmupConfig{Workers: cfg.Cache.WarmupWorkers})
		go func() {
			if _, err := warmup.Warm(context.Background()); err != nil {
				logr.Warn("layout warm-up incomplete", zap.Error(err))
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "exports", cfg.Exports.Enabled, "cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()
	metricsHandler.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	metricsHandler.SetReady(false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := cacheSvc.Close(); err != nil {
		logr.Warn("failed to close cache connection", zap.Error(err))
	}
	logr.Info("server stopped")
}

// newCacheService connects to Redis when caching is enabled. A failed connection
// disables caching instead of aborting start-up.
func newCacheService(cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Cache.Enabled {
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr, false)
	}
	client, err := cache.NewRedis(context.Background(), cfg.Redis, 3*time.Second)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr, false)
	}
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(client, logr), metrics, cfg.Cache.TTL, logr, true)
	// Entries from a previous run may describe a different generated catalog.
	if err := cacheSvc.Invalidate(context.Background(), service.Key("*")); err != nil {
		logr.Warn("failed to flush stale cache entries", zap.Error(err))
	}
	return cacheSvc
}
