// File: bookable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookable/config"
	"bookable/cron"
	"bookable/database"
	bkRepo "bookable/database/repository/booking"
	bizRepo "bookable/database/repository/business"
	offRepo "bookable/database/repository/offering"
	"bookable/handlers"
	"bookable/middleware"
	"bookable/routes"
	bookingSvc "bookable/services/booking"
	businessSvc "bookable/services/business"
	"bookable/services/schedule"
	"bookable/services/timezone"
	"bookable/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	businesses := bizRepo.NewMongoBusinessRepo()
	offerings := offRepo.NewMongoOfferingRepo()
	bookings := bkRepo.NewMongoBookingRepo()

	// timezone resolution stack: Google Time Zone API behind a Redis cache.
	resolver := timezone.NewCachedResolver(
		timezone.NewGoogleResolver(
			config.AppConfig.GoogleAPIKey,
			time.Duration(config.AppConfig.ResolverTimeoutMs)*time.Millisecond,
		),
		utils.GetCacheClient(),
		24*time.Hour,
	)

	normalizer := schedule.NewNormalizer(resolver)
	normalizer.StaleAfter = time.Duration(config.AppConfig.StaleAfterDays) * 24 * time.Hour
	engine := schedule.NewEngine(resolver)

	// services.
	businessService := businessSvc.NewService(businesses, offerings, normalizer)
	bookingService := bookingSvc.NewService(businesses, offerings, bookings, normalizer, engine)

	// background re-resolution of stale time records.
	cron.InitRefreshWorker(normalizer, businesses, bookings)

	hb := &routes.HandlerBundle{
		Business: handlers.NewBusinessHandler(businessService),
		Offering: handlers.NewOfferingHandler(businessService),
		Booking:  handlers.NewBookingHandler(bookingService, logger),
	}
	routes.RegisterRoutes(router, hb)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
