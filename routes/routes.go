package routes

import (
	"time"

	"zela/handlers"
	"zela/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the public service catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, sh *handlers.ServiceHandler) {
	api := r.Group("/api/services")
	{
		api.GET("", sh.ListServices)
		api.GET("/typologies", sh.GetTypologies)
		api.GET("/:slug", sh.GetService)
	}
}

// RegisterPricingRoutes registers the quote calculator endpoints.
func RegisterPricingRoutes(r *gin.Engine, ph *handlers.PricingHandler) {
	api := r.Group("/api/pricing")
	{
		api.GET("/config", ph.GetPricingConfig)
		api.POST("/calculate", middleware.JWTAuthCustomerMiddleware(), ph.CalculatePrice)
	}
}

// RegisterBookingRoutes registers the wizard and booking lifecycle
// endpoints. All of them require an authenticated customer.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthCustomerMiddleware())
	{
		api.POST("/sessions", bh.StartSession)
		api.GET("/sessions/:id", bh.GetSession)
		api.POST("/sessions/:id/steps/:step", bh.AdvanceStep)
		api.POST("/sessions/:id/steps/:step/back", bh.RetreatStep)
		api.GET("/sessions/:id/quote", bh.Quote)
		api.GET("/sessions/:id/workers", bh.Candidates)
		api.POST("/sessions/:id/confirm", bh.Confirm)
		api.DELETE("/sessions/:id", bh.CancelSession)

		api.GET("", bh.ListBookings)
		api.GET("/:id", bh.GetBooking)
		api.POST("/:id/cancel", bh.CancelBooking)
		api.POST("/:id/status", bh.UpdateBookingStatus)
	}
}

// CORSMiddleware returns the shared CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
