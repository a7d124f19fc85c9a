package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/teamsyntaxerror/selyo-api/api/swagger"
	"github.com/teamsyntaxerror/selyo-api/internal/handler"
	"github.com/teamsyntaxerror/selyo-api/internal/middleware"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	"github.com/teamsyntaxerror/selyo-api/internal/repository"
	"github.com/teamsyntaxerror/selyo-api/internal/service"
	"github.com/teamsyntaxerror/selyo-api/pkg/cache"
	"github.com/teamsyntaxerror/selyo-api/pkg/config"
	"github.com/teamsyntaxerror/selyo-api/pkg/database"
	"github.com/teamsyntaxerror/selyo-api/pkg/export"
	"github.com/teamsyntaxerror/selyo-api/pkg/logger"
	corsmiddleware "github.com/teamsyntaxerror/selyo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/teamsyntaxerror/selyo-api/pkg/middleware/requestid"
	"github.com/teamsyntaxerror/selyo-api/pkg/storage"

	"go.uber.org/zap"
)

// @title Selyo Registrar API
// @version 0.1.0
// @description Student registrar request portal backend
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// The portal stays usable without Redis; caches degrade to source reads.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload storage", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db, metricsSvc)
	announcementRepo := repository.NewAnnouncementRepository(db)
	typeRepo := repository.NewRequestTypeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, metricsSvc, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	typeSvc := service.NewRequestTypeService(typeRepo, cacheRepo, cfg.RequestTypes.CacheTTL, logr)
	requestSvc := service.NewRequestService(requestRepo, typeSvc, validate, logr)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, requestSvc, typeSvc, cfg.Appointments.Slots, cfg.Appointments.OpenWeekends, validate, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, cacheRepo, cfg.Announcements.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, typeSvc, announcementSvc, store, cfg.Uploads, logr)
	adminHandler := handler.NewAdminHandler(requestSvc, appointmentSvc, export.NewClaimSlipExporter())
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static("/uploads", store.Dir())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	requests := api.Group("/requests", middleware.JWT(authSvc))
	requests.GET("/types", middleware.RequireRoles(models.RoleStudent, models.RoleAdmin), requestHandler.Types)
	requests.GET("/announcements", middleware.RequireRoles(models.RoleStudent, models.RoleAdmin), requestHandler.Announcements)
	requests.GET("", middleware.RequireRoles(models.RoleStudent), requestHandler.List)
	requests.POST("", middleware.RequireRoles(models.RoleStudent), requestHandler.Create)
	requests.GET("/:id", middleware.RequireRoles(models.RoleStudent), requestHandler.Get)

	admin := api.Group("/admin", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/requests", adminHandler.ListRequests)
	admin.GET("/requests/:id", adminHandler.GetRequest)
	admin.PUT("/requests/:id", adminHandler.UpdateStatus)
	admin.GET("/requests/:id/claim-slip", adminHandler.ClaimSlip)
	admin.GET("/slots", adminHandler.Slots)
	admin.POST("/appointments", adminHandler.ScheduleAppointment)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
