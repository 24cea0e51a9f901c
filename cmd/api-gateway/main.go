package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutor-dash-api/api/swagger"
	"github.com/noah-isme/tutor-dash-api/internal/handler"
	"github.com/noah-isme/tutor-dash-api/internal/middleware"
	"github.com/noah-isme/tutor-dash-api/internal/repository"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	"github.com/noah-isme/tutor-dash-api/pkg/cache"
	"github.com/noah-isme/tutor-dash-api/pkg/config"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
	"github.com/noah-isme/tutor-dash-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutor-dash-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutor-dash-api/pkg/middleware/requestid"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// @title Tutor Dash API
// @version 0.1.0
// @description Scheduling dashboard gateway fronting the legacy booking API
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

	metricsSvc := service.NewMetricsService()

	store, closeStore, err := newCacheStore(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init cache backend", "backend", cfg.Cache.Backend, "error", err)
	}
	defer closeStore()

	upstream := repository.NewUpstreamClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout,
		repository.DefaultRetryPolicy(cfg.Upstream.RetryMaxAttempts, cfg.Upstream.RetryBackoff),
		metricsSvc,
		logr,
	)

	bookingRepo := repository.NewBookingRepository(upstream)
	teacherRepo := repository.NewTeacherRepository(upstream)
	availabilityRepo := repository.NewAvailabilityRepository(upstream)
	courseTypeRepo := repository.NewCourseTypeRepository(upstream)

	staleFactor := cfg.Cache.StaleFactor
	bookingCache := service.NewCacheService("bookings", store, metricsSvc, staleFactor, true, logr)
	rosterCache := service.NewCacheService("roster", store, metricsSvc, staleFactor, true, logr)
	catalogCache := service.NewCacheService("coursetypes", store, metricsSvc, staleFactor, true, logr)
	// availability must never be served stale: eligibility may not be
	// judged against declarations from a previous editing session
	availabilityCache := service.NewCacheService("availability", store, metricsSvc, staleFactor, false, logr)

	normalizeSvc := service.NewNormalizeService(courseTypeRepo, catalogCache, cfg.Cache.RosterTTL, logr)
	scheduleSvc := service.NewScheduleService(bookingRepo, normalizeSvc, service.NewClusterService(), bookingCache, cfg.Cache.BookingTTL, logr)
	rosterSvc := service.NewRosterService(teacherRepo, rosterCache, cfg.Cache.RosterTTL, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, availabilityCache, cfg.Cache.AvailabilityTTL, logr)
	resolverSvc := service.NewResolverService(rosterSvc, scheduleSvc, availabilitySvc, metricsSvc, cfg.Resolver.SessionTTL, logr)

	teacherHandler := handler.NewTeacherHandler(rosterSvc)
	gridHandler := handler.NewGridHandler(scheduleSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	resolverHandler := handler.NewResolverHandler(resolverSvc)
	cacheHandler := handler.NewCacheHandler(scheduleSvc, availabilitySvc, rosterSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/teachers", teacherHandler.List)
		api.GET("/grid", gridHandler.Grid)
		api.GET("/availability", availabilityHandler.List)
		api.POST("/resolver/sessions", resolverHandler.OpenSession)
		api.POST("/resolver/sessions/:id/eligibility", resolverHandler.Eligibility)
		api.POST("/cache/invalidations", cacheHandler.Invalidate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"upstream", cfg.Upstream.BaseURL,
		"cache_backend", cfg.Cache.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newCacheStore picks the cache backend; memory for single instances,
// Redis when several gateway replicas must share one cache.
func newCacheStore(cfg *config.Config, logr *zap.Logger) (service.CacheStore, func(), error) {
	if cfg.Cache.Backend == config.CacheBackendRedis {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewRedisCacheStore(client, logr)
		return store, func() { _ = store.Close() }, nil
	}
	return repository.NewMemoryCacheStore(), func() {}, nil
}
