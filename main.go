package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"availcal/config"
	"availcal/cron"
	"availcal/database"
	availabilityRepo "availcal/database/repository/availability"
	sessionRepo "availcal/database/repository/session"
	"availcal/handlers"
	"availcal/middleware"
	"availcal/routes"
	"availcal/services/calendar"
	"availcal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	defaults, err := calendar.SettingsFromConfig(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid calendar configuration: %v", err)
	}

	database.InitDB()
	sessionCache := utils.GetSessionCacheClient()

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	if err := availRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	sessionStore := sessionRepo.NewRedisSessionStore(sessionCache, calendar.SessionTTL(config.AppConfig))

	// services.
	var saver calendar.AvailabilitySaver = &calendar.RepositorySaver{Repo: availRepo}
	var queueClient *asynq.Client
	if config.AppConfig.AsyncSave {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		saver = &calendar.QueueSaver{Client: queueClient}
	}

	calendarService := &calendar.DefaultCalendarService{
		Repo:     availRepo,
		Sessions: sessionStore,
		Saver:    saver,
		Defaults: defaults,
		Logger:   logger,
	}

	stopWorker := func() {}
	if config.AppConfig.AsyncSave {
		stopWorker = cron.InitSaveWorker(availRepo, calendarService, logger)
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	utils.StartHealthMonitor(healthCtx, []*redis.Client{sessionCache}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	availabilityHandler := handlers.NewAvailabilityHandler(defaults, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger)
	handlerBundle := handlers.NewHandlerBundle(availabilityHandler, calendarHandler, handlers.HealthHandler)

	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	stopWorker()
	stopHealth()
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}
	if err := sessionCache.Close(); err != nil {
		logger.Warn("main: failed to close session cache", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect mongo", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
