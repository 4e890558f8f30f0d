package routes

import (
	"time"

	"availcal/handlers"
	"availcal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAvailabilityRoutes registers the stateless conversion endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.POST("/slots", hb.SlotsHandler)
		api.POST("/decode", hb.DecodeHandler)
		api.POST("/encode", hb.EncodeHandler)
		api.POST("/quick", hb.QuickHandler)
	}
}

// RegisterCalendarRoutes registers calendar session endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(middleware.JWTAuthOwnerMiddleware())
		api.POST("/sessions", hb.OpenSession)
		api.GET("/sessions/:sessionID", hb.GetSession)
		api.POST("/sessions/:sessionID/month", hb.ShiftMonth)
		api.POST("/sessions/:sessionID/jump", hb.JumpToCurrent)
		api.POST("/sessions/:sessionID/days/:day", hb.SelectDay)
		api.POST("/sessions/:sessionID/multiple", hb.ToggleMultiple)
		api.POST("/sessions/:sessionID/times/:index", hb.ToggleTime)
		api.POST("/sessions/:sessionID/save", hb.Save)
		api.DELETE("/sessions/:sessionID", hb.CloseSession)
		api.DELETE("/availability", hb.ResetAvailability)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterMetricsRoute exposes prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
}
