package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupPostRoutes(v1, c)
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PUT("/users/:id/role", c.UserHandler.UpdateUserRole)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	authors.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.POST("/export", c.AuthorHandler.Export)
		authors.GET("/:id/posts", c.BlogPostHandler.ListByAuthor)
	}
}

// ========================================
// BLOG POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	posts.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		posts.POST("", c.BlogPostHandler.Create)
		posts.GET("", c.BlogPostHandler.List)
		posts.GET("/:id", c.BlogPostHandler.GetByID)
		posts.PUT("/:id", c.BlogPostHandler.Update)

		// Drag-reorder persistence and the inline image/description editor
		posts.PUT("/reorder", c.BlogPostHandler.Reorder)
		posts.PUT("/:id/tree", c.BlogPostHandler.SaveTree)
		posts.PUT("/:id/images/reorder", c.BlogPostHandler.ReorderImages)

		// Deletes: soft by default, permanent for admins only
		posts.DELETE("/:id", c.BlogPostHandler.Delete)
		posts.POST("/:id/restore", c.BlogPostHandler.Restore)
		posts.DELETE("/:id/permanent", middleware.AdminMiddleware(), c.BlogPostHandler.HardDelete)

		// Uploads
		posts.POST("/:id/banner", c.BlogPostHandler.UploadBanner)
		posts.POST("/:id/images", c.BlogPostHandler.UploadImage)
		posts.POST("/:id/document", c.BlogPostHandler.UploadDocument)

		posts.POST("/export", c.BlogPostHandler.Export)
	}
}
