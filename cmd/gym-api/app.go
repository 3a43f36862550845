package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gym-management-api/api/swagger"
	"github.com/noah-isme/gym-management-api/internal/handler"
	"github.com/noah-isme/gym-management-api/internal/middleware"
	"github.com/noah-isme/gym-management-api/internal/repository"
	"github.com/noah-isme/gym-management-api/internal/service"
	"github.com/noah-isme/gym-management-api/pkg/config"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/jobs"
	"github.com/noah-isme/gym-management-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gym-management-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gym-management-api/pkg/middleware/requestid"
	"github.com/noah-isme/gym-management-api/pkg/response"
	"github.com/noah-isme/gym-management-api/pkg/storage"
)

type application struct {
	engine *gin.Engine
	queue  *jobs.Queue
}

type handlers struct {
	trainers  *handler.TrainerHandler
	members   *handler.MemberHandler
	equipment *handler.EquipmentHandler
	uploads   *handler.UploadHandler
	exports   *handler.ExportHandler
	auth      *handler.AuthHandler
	system    *handler.MetricsHandler
}

func newApplication(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, store storage.Store) *application {
	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Redis.CacheTTL, logr, cacheRepo.Enabled())

	locator := service.NewFileLocator(cfg.Upload.PublicBaseURL)
	cleanup := service.NewFileCleanupService(store, locator, metrics, logr)
	queue := jobs.NewQueue(service.FileCleanupJob, cleanup.Handle, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		Logger:     logr,
	})
	cleanup.BindQueue(queue)

	deps := service.ServiceDeps{Cache: cacheSvc, Cleanup: cleanup, Metrics: metrics}
	uploads := service.NewUploadService(store, locator, service.UploadServiceConfig{
		MaxFileSize:       cfg.Upload.MaxFileSizeBytes,
		MaxCertificates:   cfg.Upload.MaxCertificates,
		ImageMaxDimension: cfg.Upload.ImageMaxDimension,
	}, metrics, logr)

	trainers := service.NewTrainerService(repository.NewTrainerRepository(db), validate, deps, logr)
	members := service.NewMemberService(repository.NewMemberRepository(db), validate, deps, logr)
	equipment := service.NewEquipmentService(repository.NewEquipmentRepository(db), uploads, validate, deps, logr)
	exports := service.NewExportService(trainers, members, equipment, logr)
	auth := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})

	h := handlers{
		trainers:  handler.NewTrainerHandler(trainers, uploads),
		members:   handler.NewMemberHandler(members),
		equipment: handler.NewEquipmentHandler(equipment),
		uploads:   handler.NewUploadHandler(uploads),
		exports:   handler.NewExportHandler(exports),
		auth:      handler.NewAuthHandler(auth),
		system:    handler.NewMetricsHandler(metrics, db, cacheRepo, logr),
	}
	return &application{
		engine: newRouter(cfg, logr, metrics, auth, h),
		queue:  queue,
	}
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, tokens middleware.TokenValidator, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(logger.Recovery(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	if !cfg.IsProduction() {
		r.Use(logger.BodyDebug(logr))
	}
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrRouteNotFound)
	})

	r.GET("/", h.system.Root)
	r.GET("/metrics", h.system.Prometheus)
	if cfg.Upload.Driver == "" || cfg.Upload.Driver == config.StorageLocal {
		r.Static("/uploads", cfg.Upload.Dir)
	}
	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", h.system.Health)
	api.POST("/auth/login", middleware.BodyLimit(cfg.BodyLimitBytes), h.auth.Login)
	api.GET("/auth/me", middleware.JWT(tokens), h.auth.Me)

	guard := middleware.RequireAdminForWrites(cfg.Auth.Enabled, tokens)
	records := api.Group("", guard, middleware.BodyLimit(cfg.BodyLimitBytes))
	files := api.Group("", guard, middleware.BodyLimit(uploadBodyLimit(cfg)))

	trainers := records.Group("/trainers")
	trainers.GET("", h.trainers.List)
	trainers.GET("/export", h.exports.For(service.ResourceTrainers))
	trainers.GET("/:id", h.trainers.Get)
	trainers.POST("", h.trainers.Create)
	trainers.PUT("/:id", h.trainers.Replace)
	trainers.PATCH("/:id", h.trainers.Patch)
	trainers.DELETE("/:id", h.trainers.Delete)
	files.POST("/trainers/:id/certificates", h.trainers.UploadCertificates)

	members := records.Group("/members")
	members.GET("", h.members.List)
	members.GET("/export", h.exports.For(service.ResourceMembers))
	members.GET("/:id", h.members.Get)
	members.POST("", h.members.Create)
	members.PUT("/:id", h.members.Update)
	members.DELETE("/:id", h.members.Delete)

	equipment := records.Group("/equipment")
	equipment.GET("", h.equipment.List)
	equipment.GET("/export", h.exports.For(service.ResourceEquipment))
	equipment.GET("/maintenance-due", h.equipment.MaintenanceDue)
	equipment.GET("/:id", h.equipment.Get)
	equipment.POST("", h.equipment.Create)
	equipment.PUT("/:id", h.equipment.Update)
	equipment.DELETE("/:id", h.equipment.Delete)

	upload := files.Group("/upload")
	upload.POST("/profile-photo", h.uploads.ProfilePhoto)
	upload.POST("/certificates", h.uploads.Certificates)
	upload.POST("/equipment-image", h.uploads.EquipmentImage)

	return r
}

// uploadBodyLimit leaves room for a full certificate batch plus form overhead.
func uploadBodyLimit(cfg *config.Config) int64 {
	batch := cfg.Upload.MaxFileSizeBytes*int64(max(cfg.Upload.MaxCertificates, 1)) + 1<<20
	return max(batch, cfg.BodyLimitBytes)
}
