package main

import (
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"modamart/internal/caching"
	"modamart/internal/handlers"
	"modamart/internal/jobs"
	"modamart/internal/jobs/background"
	"modamart/internal/middleware"
	"modamart/internal/repositories"
	"modamart/internal/services"
	"modamart/pkg/database"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	reportBucket := os.Getenv("REPORT_BUCKET")
	if reportBucket == "" {
		reportBucket = "modamart-reports"
	}

	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Create repositories
	orderRepo := repositories.NewOrderRepo(pool)
	historyRepo := repositories.NewHistoryRepo(pool)
	statusTypeRepo := repositories.NewStatusTypeRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	catalogSvc := services.NewStatusCatalogService(statusTypeRepo, cacheSvc)
	querySvc := services.NewOrderQueryService(orderRepo, historyRepo, catalogSvc)
	transitionSvc := services.NewOrderTransitionService(pool, orderRepo, historyRepo, catalogSvc)
	dashboardSvc := services.NewDashboardService(dashboardRepo, cacheSvc)

	// Background jobs
	exporter := jobs.NewHistoryReportExporter(historyRepo, storageSvc, reportBucket)
	scheduler, err := background.NewJobScheduler(dashboardSvc, exporter)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create handlers
	orderHandlers := handlers.NewOrderHandlers(querySvc, transitionSvc, dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// Admin routes (require JWT)
	admin := e.Group("")
	admin.Use(middleware.JWTMiddleware(jwtSecret))

	admin.GET("/orders", orderHandlers.GetOrders)
	admin.PATCH("/orders", orderHandlers.PatchOrders)
	admin.GET("/order", orderHandlers.GetOrder)
	admin.GET("/order-status-types", orderHandlers.GetStatusTypes)
	admin.GET("/dashboard/seller", orderHandlers.GetSellerDashboard)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
