package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"dealerstock/internal/caching"
	"dealerstock/internal/config"
	"dealerstock/internal/handlers"
	"dealerstock/internal/jobs"
	"dealerstock/internal/jobs/background"
	"dealerstock/internal/repositories"
	"dealerstock/internal/services"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage for vehicle photos
	imageSvc, err := services.NewImageService(cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("Failed to initialize image service: %v", err)
	}
	if err := imageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: image bucket unavailable: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	vehicleRepo := repositories.NewVehicleRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	maintenanceRepo := repositories.NewMaintenanceRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	userSvc := services.NewUserService(userRepo)
	vehicleSvc := services.NewVehicleService(vehicleRepo, orderRepo, orderItemRepo, cacheSvc)
	orderSvc := services.NewOrderService(pool, orderRepo, orderItemRepo, userRepo,
		vehicleRepo, services.NewOrderNumberGenerator(), cacheSvc)
	maintenanceSvc := services.NewMaintenanceService(maintenanceRepo, vehicleRepo)

	// Create handlers
	userHandlers := handlers.NewUserHandlers(userSvc)
	vehicleHandlers := handlers.NewVehicleHandlers(vehicleSvc, imageSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	maintenanceHandlers := handlers.NewMaintenanceHandlers(maintenanceSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	alertSvc := jobs.NewMaintenanceAlertService(maintenanceRepo, vehicleRepo)
	scheduler, err := background.NewJobScheduler(alertSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// User routes
	e.POST("/users", userHandlers.CreateUser)
	e.GET("/users", userHandlers.GetAllUsers)
	e.GET("/users/:id", userHandlers.GetUserByID)
	e.GET("/users/username/:username", userHandlers.GetUserByUsername)
	e.GET("/users/email/:email", userHandlers.GetUserByEmail)
	e.GET("/users/role/:role", userHandlers.GetUsersByRole)
	e.PUT("/users/:id", userHandlers.UpdateUser)
	e.DELETE("/users/:id", userHandlers.DeleteUser)
	e.GET("/users/check/username/:username", userHandlers.CheckUsername)
	e.GET("/users/check/email/:email", userHandlers.CheckEmail)

	// Vehicle routes
	e.POST("/vehicles", vehicleHandlers.CreateVehicle)
	e.GET("/vehicles", vehicleHandlers.GetAllVehicles)
	e.GET("/vehicles/available", vehicleHandlers.FindAvailable)
	e.GET("/vehicles/price-range", vehicleHandlers.FindByPriceRange)
	e.GET("/vehicles/make/:make", vehicleHandlers.FindByMake)
	e.GET("/vehicles/model/:model", vehicleHandlers.FindByModel)
	e.GET("/vehicles/year/:year", vehicleHandlers.FindByYear)
	e.GET("/vehicles/fuel-type/:fuelType", vehicleHandlers.FindByFuelType)
	e.GET("/vehicles/transmission-type/:transmissionType", vehicleHandlers.FindByTransmissionType)
	e.GET("/vehicles/max-mileage/:maxMileage", vehicleHandlers.FindByMaxMileage)
	e.GET("/vehicles/:id", vehicleHandlers.GetVehicleByID)
	e.PUT("/vehicles/:id", vehicleHandlers.UpdateVehicle)
	e.DELETE("/vehicles/:id", vehicleHandlers.DeleteVehicle)
	e.POST("/vehicles/:id/image", vehicleHandlers.UploadImage)
	e.GET("/vehicles/:id/image-url", vehicleHandlers.GetImageURL)
	e.DELETE("/vehicles/:id/image", vehicleHandlers.DeleteImage)

	// Order routes
	e.POST("/orders", orderHandlers.CreateOrder)
	e.GET("/orders", orderHandlers.GetAllOrders)
	e.GET("/orders/date-range", orderHandlers.GetOrdersByDateRange)
	e.GET("/orders/number/:orderNumber", orderHandlers.GetOrderByNumber)
	e.GET("/orders/user/:userId", orderHandlers.GetOrdersByUserID)
	e.GET("/orders/status/:status", orderHandlers.GetOrdersByStatus)
	e.GET("/orders/:id", orderHandlers.GetOrderByID)
	e.PUT("/orders/:id", orderHandlers.UpdateOrder)
	e.PATCH("/orders/:id/status/:status", orderHandlers.UpdateOrderStatus)
	e.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	// Maintenance routes
	e.POST("/maintenance", maintenanceHandlers.CreateMaintenance)
	e.GET("/maintenance", maintenanceHandlers.GetAllMaintenance)
	e.GET("/maintenance/upcoming", maintenanceHandlers.GetUpcomingMaintenance)
	e.GET("/maintenance/date-range", maintenanceHandlers.GetMaintenanceByDateRange)
	e.GET("/maintenance/vehicle/:vehicleId", maintenanceHandlers.GetMaintenanceByVehicleID)
	e.GET("/maintenance/status/:status", maintenanceHandlers.GetMaintenanceByStatus)
	e.GET("/maintenance/:id", maintenanceHandlers.GetMaintenanceByID)
	e.PUT("/maintenance/:id", maintenanceHandlers.UpdateMaintenance)
	e.PATCH("/maintenance/:id/status/:status", maintenanceHandlers.UpdateMaintenanceStatus)
	e.DELETE("/maintenance/:id", maintenanceHandlers.DeleteMaintenance)

	log.Printf("Dealerstock server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
