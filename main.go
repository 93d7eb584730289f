// File: padelwatch/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"padelwatch/config"
	"padelwatch/courtfinder"
	"padelwatch/cron"
	"padelwatch/database"
	"padelwatch/database/repository"
	"padelwatch/handlers"
	"padelwatch/middleware"
	"padelwatch/routes"
	"padelwatch/services/admin"
	"padelwatch/services/locations"
	"padelwatch/services/notification"
	"padelwatch/services/orders"
	"padelwatch/services/search"
	"padelwatch/services/tasks"
	"padelwatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	db := database.InitDB()
	utils.InitQueueRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	locRepo := repository.NewGormLocationRepo(db)
	crtRepo := repository.NewGormCourtRepo(db)
	availRepo := repository.NewGormAvailabilityRepo(db)
	requestRepo := repository.NewGormSearchRequestRepo(db)
	orderRepo := repository.NewGormSearchOrderRepo(db)
	notifRepo := repository.NewGormNotificationRepo(db)

	// Upstream booking platforms.
	playtomic := courtfinder.NewPlaytomicClient(
		config.AppConfig.PlaytomicBaseURL,
		time.Duration(config.AppConfig.UpstreamTimeoutSeconds)*time.Second,
		config.AppConfig.UpstreamRateLimitRPS,
		config.AppConfig.UpstreamRateLimitBurst,
	)
	registry := courtfinder.NewRegistry(playtomic)

	coordinator := &search.CacheCoordinator{
		Providers:         registry,
		CourtRepo:         crtRepo,
		AvailabilityRepo:  availRepo,
		SearchRequestRepo: requestRepo,
		Freshness:         time.Duration(config.AppConfig.SearchFreshnessMinutes) * time.Minute,
	}

	// services.
	searchService := &search.DefaultSearchService{
		LocationRepo:     locRepo,
		Coordinator:      coordinator,
		Providers:        registry,
		FetchConcurrency: config.AppConfig.FetchConcurrency,
	}

	taskService, err := tasks.NewDefaultTaskService(searchService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize task service: %v", err)
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(notifRepo, orderRepo, queueClient, nil)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	orderService, err := orders.NewDefaultOrderService(orderRepo, searchService, notificationService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize order service: %v", err)
	}

	locationService, err := locations.NewDefaultLocationService(locRepo, crtRepo, registry)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize location service: %v", err)
	}

	adminService, err := admin.NewDefaultAdminService(availRepo, requestRepo, crtRepo, locationService, coordinator)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize admin service: %v", err)
	}

	searchHandler := handlers.NewSearchHandler(searchService)
	taskHandler := handlers.NewTaskHandler(taskService)
	orderHandler := handlers.NewOrderHandler(orderService, notificationService)
	locationHandler := handlers.NewLocationHandler(locationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Search endpoints.
		RunSearchHandler: searchHandler.RunSearchHandler,

		// Background search task endpoints.
		StartSearchTaskHandler:  taskHandler.StartSearchTaskHandler,
		GetSearchTaskHandler:    taskHandler.GetSearchTaskHandler,
		CancelSearchTaskHandler: taskHandler.CancelSearchTaskHandler,

		// Search order endpoints.
		CreateOrderHandler:            orderHandler.CreateOrderHandler,
		ListOrdersHandler:             orderHandler.ListOrdersHandler,
		GetOrderHandler:               orderHandler.GetOrderHandler,
		UpdateOrderHandler:            orderHandler.UpdateOrderHandler,
		DeleteOrderHandler:            orderHandler.DeleteOrderHandler,
		ExecuteOrderHandler:           orderHandler.ExecuteOrderHandler,
		ListOrderNotificationsHandler: orderHandler.ListOrderNotificationsHandler,
		MarkNotificationReadHandler:   orderHandler.MarkNotificationReadHandler,

		// Location endpoints.
		AddLocationHandler:       locationHandler.AddLocationHandler,
		ListLocationsHandler:     locationHandler.ListLocationsHandler,
		GetLocationHandler:       locationHandler.GetLocationHandler,
		GetLocationCourtsHandler: locationHandler.GetLocationCourtsHandler,
		DeleteLocationHandler:    locationHandler.DeleteLocationHandler,

		// Admin endpoints.
		ClearCacheHandler:     adminHandler.ClearCacheHandler,
		RefreshAllDataHandler: adminHandler.RefreshAllDataHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers: the queue consumer and the periodic order sweep.
	cron.InitNotificationWorker(notificationService)
	scheduler, err := cron.NewScheduler(orderService, taskService, requestRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize scheduler: %v", err)
	}
	scheduler.Start()

	utils.StartHealthMonitor(db, utils.GetQueueRedisClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// Let an order sweep that is already running finish first.
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
