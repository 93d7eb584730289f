package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"padelwatch/config"
	"padelwatch/handlers"
	"padelwatch/middleware"
)

// RegisterSearchRoutes registers the synchronous search endpoint and the
// background task endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/search")
	{
		api.Use(middleware.IdentityMiddleware())
		api.POST("", hb.RunSearchHandler)
		api.POST("/tasks", hb.StartSearchTaskHandler)
		api.GET("/tasks/:id", hb.GetSearchTaskHandler)
		api.POST("/tasks/:id/cancel", hb.CancelSearchTaskHandler)
	}
}

// RegisterOrderRoutes registers standing search order endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.IdentityMiddleware())
		api.POST("", hb.CreateOrderHandler)
		api.GET("", hb.ListOrdersHandler)
		api.GET("/:id", hb.GetOrderHandler)
		api.PATCH("/:id", hb.UpdateOrderHandler)
		api.DELETE("/:id", hb.DeleteOrderHandler)
		api.POST("/:id/execute", hb.ExecuteOrderHandler)
		api.GET("/:id/notifications", hb.ListOrderNotificationsHandler)
	}

	notifications := r.Group("/api/notifications")
	{
		notifications.Use(middleware.IdentityMiddleware())
		notifications.POST("/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterLocationRoutes registers tracked club endpoints. Reads are
// open; adding needs an identity and deleting is admin only.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.GET("", hb.ListLocationsHandler)
		api.GET("/:id", hb.GetLocationHandler)
		api.GET("/:id/courts", hb.GetLocationCourtsHandler)

		api.POST("", middleware.IdentityMiddleware(), hb.AddLocationHandler)
		api.DELETE("/:id", middleware.IdentityMiddleware(), middleware.RequireAdmin(), hb.DeleteLocationHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.IdentityMiddleware())
		adminGroup.Use(middleware.RequireAdmin())
		adminGroup.POST("/cache/clear", hb.ClearCacheHandler)
		adminGroup.POST("/refresh-all", hb.RefreshAllDataHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	allowed := strings.Split(config.AppConfig.CORSAllowedOrigins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-ID", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSearchRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
