package main

import (
	"log"
	"time"

	"repair_shop/internal/config"
	"repair_shop/internal/database"
	"repair_shop/internal/handlers"
	"repair_shop/internal/logger"
	"repair_shop/internal/redis"
	"repair_shop/internal/repository"
	"repair_shop/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	zaplog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zaplog.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	repos := repository.NewRegistry(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	intakeService := services.NewIntakeService(uow, zaplog)
	orderService := services.NewOrderService(repos, uow)
	customerService := services.NewCustomerService(repos, uow)
	catalogService := services.NewCatalogService(uow)
	technicianService := services.NewTechnicianService(repos)
	partService := services.NewPartService(repos, uow)
	searchService := services.NewSearchService(repos, redisClient, time.Duration(cfg.CacheTTL)*time.Second)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(intakeService, orderService, partService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, searchService, technicianService, partService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PUT("/orders/:id", orderHandler.UpdateOrder)
		api.POST("/orders/:id/close", orderHandler.CloseOrder)
		api.POST("/orders/:id/parts", orderHandler.AddPart)
		api.GET("/orders/:id/parts", orderHandler.ListParts)

		api.GET("/customers/lookup", customerHandler.Lookup)
		api.POST("/customers", customerHandler.Create)
		api.PUT("/customers/:id", customerHandler.Update)

		api.POST("/catalog/reconcile", catalogHandler.Reconcile)
		api.GET("/search/catalog", catalogHandler.SearchCatalog)
		api.GET("/search/devices", catalogHandler.SearchDevices)

		api.GET("/technicians", catalogHandler.ListTechnicians)
		api.POST("/technicians", catalogHandler.CreateTechnician)
		api.GET("/parts", catalogHandler.ListParts)
		api.POST("/parts", catalogHandler.CreatePart)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
