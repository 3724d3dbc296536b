package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storerate-backend/config"
	"github.com/ikkim/storerate-backend/internal/app/controller"
	"github.com/ikkim/storerate-backend/internal/app/model"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/internal/middleware"
	"github.com/ikkim/storerate-backend/internal/validation"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	adminController      *controller.AdminController
	storeOwnerController *controller.StoreOwnerController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	adminController *controller.AdminController,
	storeOwnerController *controller.StoreOwnerController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		adminController:      adminController,
		storeOwnerController: storeOwnerController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)
	validation.Register()
	apperrors.SetExposeInternal(r.config.IsDevelopment())

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Store Rating API is running",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFoundResponse(c, apperrors.ResourceNotFound, "Route not found")
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", r.authController.Login)

		user := api.Group("/user")
		{
			user.POST("/signup", r.authController.Signup)
			user.POST("/login", r.authController.LoginAs(model.RoleUser))

			protected := user.Group("")
			protected.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleUser))
			{
				protected.PUT("/password", r.authController.UpdatePassword)
				protected.GET("/stores", r.userController.ListStores)
				protected.POST("/ratings", r.userController.SubmitRating)
				protected.PUT("/ratings", r.userController.UpdateRating)
				protected.POST("/logout", r.authController.Logout)
			}
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", r.authController.LoginAs(model.RoleAdmin))

			protected := admin.Group("")
			protected.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleAdmin))
			{
				protected.GET("/dashboard/stats", r.adminController.DashboardStats)
				protected.POST("/users", r.adminController.CreateUser)
				protected.GET("/users", r.adminController.ListUsers)
				protected.GET("/users/:id", r.adminController.GetUser)
				protected.POST("/stores", r.adminController.CreateStore)
				protected.GET("/stores", r.adminController.ListStores)
				protected.GET("/stores/export", r.adminController.ExportStores)
				protected.POST("/reports/stores", r.adminController.ArchiveStoresReport)
				protected.POST("/logout", r.authController.Logout)
			}
		}

		storeOwner := api.Group("/store-owner")
		{
			storeOwner.POST("/login", r.authController.LoginAs(model.RoleStoreOwner))

			protected := storeOwner.Group("")
			protected.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleStoreOwner))
			{
				protected.PUT("/password", r.authController.UpdatePassword)
				protected.GET("/dashboard", r.storeOwnerController.Dashboard)
				protected.POST("/logout", r.authController.Logout)
			}
		}
	}

	return router
}
