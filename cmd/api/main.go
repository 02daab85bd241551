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

	_ "github.com/campusplan/planner-api/api/swagger"
	"github.com/campusplan/planner-api/internal/handler"
	"github.com/campusplan/planner-api/internal/middleware"
	"github.com/campusplan/planner-api/internal/repository"
	"github.com/campusplan/planner-api/internal/service"
	"github.com/campusplan/planner-api/pkg/cache"
	"github.com/campusplan/planner-api/pkg/config"
	"github.com/campusplan/planner-api/pkg/database"
	"github.com/campusplan/planner-api/pkg/export"
	"github.com/campusplan/planner-api/pkg/jobs"
	"github.com/campusplan/planner-api/pkg/logger"
	corsmiddleware "github.com/campusplan/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusplan/planner-api/pkg/middleware/requestid"
)

// @title Campus Plan API
// @version 1.0.0
// @description Weekly timetable generation and conflict resolution for students
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, plan caching disabled", "error", err)
		redisClient = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	constraintRepo := repository.NewConstraintRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planner.CacheTTL, logr, cfg.Planner.CacheEnabled && redisClient != nil)

	plannerSvc := service.NewPlannerService(courseRepo, sessionRepo, constraintRepo, cacheSvc, metricsSvc, logr, cfg.Planner.CacheTTL)

	warmupSvc := service.NewWarmupService(plannerSvc, jobs.QueueConfig{
		Workers:    cfg.Planner.WarmupWorkers,
		MaxRetries: cfg.Planner.WarmupRetries,
		RetryDelay: cfg.Planner.WarmupDelay,
		Logger:     logr,
	})
	if cfg.Planner.WarmupEnabled {
		warmupSvc.Start(ctx)
		defer warmupSvc.Stop()
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, plannerSvc, warmupSvc, validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, courseRepo, plannerSvc, warmupSvc, validate, logr)
	constraintSvc := service.NewConstraintService(constraintRepo, plannerSvc, warmupSvc, validate, logr)
	intentSvc := service.NewIntentService(validate, logr)
	exportSvc := service.NewExportService(plannerSvc, courseRepo, export.NewCSVExporter(), export.NewPDFExporter(cfg.Exports.Author), logr)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	constraintHandler := handler.NewConstraintHandler(constraintSvc)
	planHandler := handler.NewPlanHandler(plannerSvc, exportSvc)
	intentHandler := handler.NewIntentHandler(intentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, cacheRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/courses", courseHandler.List)
			protected.POST("/courses", courseHandler.Create)
			protected.GET("/courses/:id", courseHandler.Get)
			protected.PUT("/courses/:id", courseHandler.Update)
			protected.DELETE("/courses/:id", courseHandler.Delete)

			protected.GET("/sessions", sessionHandler.List)
			protected.POST("/sessions", sessionHandler.Create)
			protected.GET("/sessions/:id", sessionHandler.Get)
			protected.PUT("/sessions/:id", sessionHandler.Update)
			protected.DELETE("/sessions/:id", sessionHandler.Delete)

			protected.GET("/constraints", constraintHandler.List)
			protected.POST("/constraints", constraintHandler.Create)
			protected.GET("/constraints/:id", constraintHandler.Get)
			protected.PUT("/constraints/:id", constraintHandler.Update)
			protected.DELETE("/constraints/:id", constraintHandler.Delete)

			protected.POST("/plan/generate", planHandler.Generate)
			protected.POST("/plan/optimize", planHandler.Optimize)
			if cfg.Exports.Enabled {
				protected.GET("/plan/export", planHandler.Export)
			}

			protected.POST("/intent/parse", intentHandler.Parse)

			protected.GET("/metrics/stats", metricsHandler.Stats)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	if cacheRepo != nil {
		_ = cacheRepo.Close()
	}
	logr.Sugar().Infow("server stopped")
}
