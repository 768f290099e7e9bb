package main

import (
	"log"
	"os"
	"time"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/access"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/database"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/handlers"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/lifecycle"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/middleware"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis (optional - session revocation and caching degrade
	// gracefully without it)
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Booking lifecycle controller over the transactional store
	controller := lifecycle.NewController(lifecycle.NewGormStore(db))

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored vehicle images
	r.Static("/uploads", "/app/uploads")

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
			// Logout parses its own token so that repeating it stays a no-op
			auth.POST("/logout", handlers.Logout())
		}

		// Public catalog browsing
		api.GET("/shops", handlers.GetShops(db))
		api.GET("/shops/:id", handlers.GetShop(db))
		api.GET("/shops/:id/vehicles", handlers.GetShopVehicles(db))
		api.GET("/vehicles", handlers.GetVehicles(db))
		api.GET("/vehicles/:id", handlers.GetVehicle(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			// Customer booking routes
			bookings := protected.Group("/bookings")
			bookings.Use(access.RequireRoles(models.RoleCustomer))
			{
				bookings.GET("/quote", handlers.QuoteBooking(db))
				bookings.POST("", handlers.CreateBooking(db, controller, hub))
				bookings.GET("", handlers.GetMyBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PATCH("/:id", handlers.ModifyBooking(db, controller, hub))
				bookings.POST("/:id/cancel", handlers.CancelBooking(controller, hub))
				bookings.POST("/:id/rebook", handlers.RebookBooking(db, controller, hub))
			}

			// Staff task queue routes
			staff := protected.Group("/staff")
			staff.Use(access.RequireRoles(models.RoleStaff))
			{
				staff.GET("/tasks", handlers.GetTasks(db))
				staff.POST("/tasks/:id/start", handlers.StartTask(db, hub))
				staff.POST("/tasks/:id/done", handlers.CompleteTask(db, controller, hub))
			}

			// Owner dashboard routes
			owner := protected.Group("/owner")
			owner.Use(access.RequireRoles(models.RoleOwner))
			{
				owner.GET("/shop", handlers.GetOwnerShop(db))
				owner.POST("/shop", handlers.CreateShop(db))
				owner.POST("/vehicles", handlers.CreateVehicle(db))
				owner.PATCH("/vehicles/:id", handlers.UpdateVehicle(db))
				owner.GET("/bookings", handlers.GetOwnerBookings(db))
				owner.POST("/bookings/:id/cancel", handlers.OverrideCancelBooking(db, controller, hub))
			}

			// Admin dashboard routes
			admin := protected.Group("/admin")
			admin.Use(access.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/overview", handlers.GetAdminOverview(db))
				admin.GET("/users", handlers.GetAllUsers(db))
				admin.GET("/bookings", handlers.GetAllBookings(db))
				admin.POST("/bookings/:id/cancel", handlers.OverrideCancelBooking(db, controller, hub))
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
