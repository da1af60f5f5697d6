// File: reservio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reservio/config"
	"reservio/cron"
	"reservio/database"
	bookingRepoPkg "reservio/database/repository/booking"
	resourceRepoPkg "reservio/database/repository/resource"
	timeblockRepoPkg "reservio/database/repository/timeblock"
	userRepoPkg "reservio/database/repository/user"
	"reservio/handlers"
	"reservio/middleware"
	"reservio/routes"
	"reservio/services/booking"
	"reservio/services/tasks"
	"reservio/services/user"
	"reservio/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	resourceRepo := resourceRepoPkg.NewMongoResourceRepo()
	timeblockRepo := timeblockRepoPkg.NewMongoTimeBlockRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	handlers.SetUserService(userService)

	bookingService := &booking.DefaultBookingService{
		BookingRepo:   bookingRepo,
		ResourceRepo:  resourceRepo,
		TimeBlockRepo: timeblockRepo,
		UserRepo:      userRepo,
		Completion:    tasks.NewCompletionQueue(),
	}

	if config.AppConfig.CompletionWorkerOn {
		cron.InitCompletionWorker(bookingRepo)
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	suggestionHandler := handlers.NewSuggestionHandler(bookingRepo, timeblockRepo, utils.GetCacheClient())
	resourceHandler := handlers.NewResourceHandler(resourceRepo)
	timeblockHandler := handlers.NewTimeBlockHandler(timeblockRepo)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:   userRepo,
		Booking:    bookingHandler,
		Suggestion: suggestionHandler,
		Resource:   resourceHandler,
		TimeBlock:  timeblockHandler,
	}

	// Register routes with the assembled handler bundle.
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

	logger.Sugar().Info("main: server stopped gracefully")
}
