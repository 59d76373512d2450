package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sripavantejb/GuideXpert-Backend/handlers"
	"github.com/sripavantejb/GuideXpert-Backend/middleware"
)

// RegisterFormRoutes registers the public lead-registration funnel.
func RegisterFormRoutes(r *gin.Engine) {
	api := r.Group("/api/form")
	{
		api.POST("/send-otp", handlers.SendOTPHandler)
		api.POST("/verify-otp", handlers.VerifyOTPHandler)
		api.GET("/demo-slots", handlers.DemoSlotsHandler)

		api.POST("/step1", handlers.Step1Handler)
		api.POST("/step2", handlers.Step2Handler)
		api.POST("/step3", handlers.Step3Handler)
		api.POST("/post-registration", handlers.PostRegistrationHandler)
		api.GET("/status/:phone", handlers.StatusHandler)
	}
}

// RegisterCronRoutes registers the shared-secret cron surface.
func RegisterCronRoutes(r *gin.Engine) {
	api := r.Group("/api/cron")
	{
		api.Use(middleware.CronAuthMiddleware())
		api.GET("/send-reminders", handlers.SendRemindersHandler)
		api.GET("/health", handlers.CronHealthHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for operator actions. Login is
// public; everything else requires the admin JWT.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", handlers.AdminLoginHandler)

		api.Use(middleware.JWTAuthAdminMiddleware())
		api.POST("/admins", handlers.CreateAdminHandler)
		api.PATCH("/slots/:slotId", handlers.UpdateSlotConfigHandler)
		api.POST("/slot-overrides", handlers.UpdateSlotOverrideHandler)
		api.GET("/booking-counts", handlers.BookingCountsHandler)
		api.POST("/notifications/resend", handlers.ResendNotificationHandler)

		api.POST("/influencer-links", handlers.CreateInfluencerLinkHandler)
		api.GET("/influencer-links", handlers.ListInfluencerLinksHandler)
		api.DELETE("/influencer-links/:id", handlers.DeleteInfluencerLinkHandler)
		api.GET("/influencer-analytics", handlers.InfluencerAnalyticsHandler)
		api.GET("/influencer-analytics/trend", handlers.InfluencerTrendHandler)
		api.GET("/meeting-attendance", handlers.MeetingAttendanceHandler)
	}
}

// RegisterMeetingRoutes registers the public meeting-join counter.
func RegisterMeetingRoutes(r *gin.Engine) {
	api := r.Group("/api/meeting")
	{
		api.POST("/register", handlers.MeetingJoinHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "GuideXpert backend"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "x-cron-key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterFormRoutes(r)
	RegisterMeetingRoutes(r)
	RegisterCronRoutes(r)
	RegisterAdminRoutes(r)
}
