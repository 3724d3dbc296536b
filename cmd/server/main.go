package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/internal/app/controller"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/internal/app/service"
	"github.com/ikkim/storerate-backend/internal/db"
	"github.com/ikkim/storerate-backend/internal/middleware"
	"github.com/ikkim/storerate-backend/internal/router"
	"github.com/ikkim/storerate-backend/internal/scheduler"
	"github.com/ikkim/storerate-backend/internal/storage"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/redis"
	"github.com/ikkim/storerate-backend/pkg/util"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "console"
	if cfg.IsDevelopment() {
		logLevel = "debug"
	}
	if cfg.IsProduction() {
		logFormat = "json"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: !cfg.IsProduction(),
	})

	logger.Info("Starting Store Rating Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	hasher := util.NewPasswordHasher(cfg.Security.BcryptCost)

	// Run migrations and make sure an administrator exists
	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if _, err := db.SeedAdmin(db.GetDB(), cfg.Admin, hasher); err != nil {
		logger.Warn("Failed to seed admin user", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Optional shared revocation tier
	var revocationCache service.RevocationCache
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, revocations use the database only", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			revocationCache = redis.NewRevocationCache(redis.GetClient())
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Optional report archive
	var reportStorage service.ReportStorage
	if cfg.S3.Enabled() {
		reportStorage = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
		logger.Info("Report archive enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"region": cfg.S3.Region,
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	revokedTokenRepo := repository.NewRevokedTokenRepository(db.GetDB())

	// Initialize services
	revocationService := service.NewRevocationService(revokedTokenRepo, revocationCache, cfg.Revocation.Retention)
	authService := service.NewAuthService(userRepo, revocationService, hasher, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, hasher)
	reportService := service.NewReportService(storeRepo, adminService, reportStorage)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(storeService, ratingService)
	adminController := controller.NewAdminController(authService, adminService, storeService, reportService)
	storeOwnerController := controller.NewStoreOwnerController(storeService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, revocationService)

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		adminController,
		storeOwnerController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Revocation ledger cleanup
	sweepScheduler := scheduler.NewRevocationScheduler(revocationService, cfg.Revocation.SweepSchedule)
	if err := sweepScheduler.Start(); err != nil {
		logger.Fatal("Failed to start revocation sweep scheduler", err)
	}
	defer sweepScheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
