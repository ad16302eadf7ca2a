package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"retreat-booking-server/config"
	"retreat-booking-server/database"
	"retreat-booking-server/jobs"
	"retreat-booking-server/middleware"
	"retreat-booking-server/routes"
	"retreat-booking-server/services"
	ws "retreat-booking-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed baseline data on first run
	if err := seedDatabase(); err != nil {
		log.Printf("⚠️ Seeding failed: %v", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS, restricted to the configured frontend origins
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Retreat Booking Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Shared services
	jwtService := services.NewJWTService()
	mailer := services.NewMailer()

	// Admin live feed over WebSocket
	feedHub := ws.NewHub()
	go feedHub.Run()
	feedHandler := ws.NewAdminFeedHandler(feedHub)
	router.GET("/api/v1/ws/admin-feed", feedHandler.HandleFeed)

	notifier := services.NewNotifier(mailer, feedHub)
	bookingService := services.NewBookingService(notifier)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes, jwtService, mailer)
		routes.RegisterOAuthRoutes(authRoutes, jwtService)

		// Public catalog and content routes
		serviceRoutes := api.Group("/services")
		routes.RegisterServiceRoutes(serviceRoutes)
		routes.RegisterContentRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterAccountRoutes(protected, mailer)

			bookingRoutes := protected.Group("/bookings")
			routes.RegisterBookingRoutes(bookingRoutes, bookingService)
		}

		// Admin authentication routes (no authentication required)
		adminAuth := api.Group("/admin/auth")
		adminAuth.Use(middleware.AuthRateLimitMiddleware())
		adminAuth.POST("/login", routes.AdminLogin(jwtService))
		adminAuth.POST("/refresh", routes.AdminRefreshToken(jwtService))

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			adminRoutes.GET("/auth/me", routes.GetCurrentAdmin)
			adminRoutes.GET("/dashboard/stats", routes.GetDashboardStats)

			// Admin user management
			adminRoutes.GET("/users", routes.GetAllUsers)
			adminRoutes.GET("/users/:id", routes.GetUserById)
			adminRoutes.PATCH("/users/:id/status", routes.UpdateUserStatus)
			adminRoutes.DELETE("/users/:id", routes.DeleteUser)

			// Admin booking management
			adminBookings := adminRoutes.Group("/bookings")
			routes.RegisterAdminBookingRoutes(adminBookings, bookingService)

			// Admin catalog management
			adminServices := adminRoutes.Group("/services")
			routes.RegisterAdminServiceRoutes(adminServices)

			// Admin content management (blogs, gallery, settings)
			routes.RegisterAdminContentRoutes(adminRoutes)
		}
	}

	// Start background jobs
	completionJob := jobs.NewCompletionJob(bookingService, jwtService)
	completionJob.Start()
	defer completionJob.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
