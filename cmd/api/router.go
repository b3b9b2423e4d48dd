package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stagelink-backend/internal/shared"
	"stagelink-backend/internal/shared/middleware"
	"stagelink-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPublicRoutes(v1, c)
		setupProducerRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupCheckoutRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC ROUTES
// ========================================
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	shows := v1.Group("/shows")
	{
		shows.GET("", c.PublicHandler.Browse)
		shows.GET("/:id", c.PublicHandler.Get)
	}
}

// ========================================
// PRODUCER ROUTES
// ========================================
func setupProducerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	producer := v1.Group("/producer/shows")
	producer.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleProducer, shared.RoleAdmin),
	)
	{
		producer.POST("", c.ProducerHandler.Create)
		producer.GET("", c.ProducerHandler.List)
		producer.PUT("/:id", c.ProducerHandler.Update)
		producer.GET("/:id/edit", c.ProducerHandler.GetForEdit)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(shared.RoleAdmin),
	)

	shows := admin.Group("/shows")
	{
		shows.GET("", c.ShowAdminHandler.List)
		shows.POST("/:id/approve", c.ShowAdminHandler.Approve)
		shows.POST("/:id/reject", c.ShowAdminHandler.Reject)
		shows.POST("/:id/reset", c.ShowAdminHandler.Reset)
		shows.POST("/:id/broadcast", c.ShowAdminHandler.Broadcast)
		shows.POST("/:id/restore", c.ShowAdminHandler.Restore)
		shows.PUT("/:id/featured", c.ShowAdminHandler.SetFeatured)
		shows.DELETE("/:id", c.ShowAdminHandler.Delete)
	}

	payments := admin.Group("/payments")
	{
		payments.GET("", c.PaymentAdminHandler.List)
		payments.GET("/export", c.PaymentAdminHandler.Export)
		payments.GET("/:id/proof", c.PaymentAdminHandler.ProofURL)
		payments.POST("/:id/approve", c.PaymentAdminHandler.Approve)
		payments.POST("/:id/reject", c.PaymentAdminHandler.Reject)
	}
}

// ========================================
// CHECKOUT ROUTES
// ========================================
func setupCheckoutRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Optional auth: guests check out with name and email
	v1.POST("/checkout", middleware.OptionalAuthMiddleware(c.JWTManager), c.CheckoutHandler.Checkout)

	payments := v1.Group("/payments")
	payments.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		payments.GET("", c.CheckoutHandler.ListMine)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
