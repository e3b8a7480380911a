package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zela/config"
	"zela/database"
	bookingRepo "zela/database/repository/booking"
	packageRepo "zela/database/repository/servicepackage"
	workerRepo "zela/database/repository/worker"
	"zela/handlers"
	"zela/middleware"
	"zela/routes"
	"zela/services/booking"
	"zela/services/catalog"
	"zela/services/notification"
	"zela/services/payment"
	"zela/services/pricing"
	"zela/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	workers := workerRepo.NewMongoWorkerRepo()
	packages := packageRepo.NewMongoPackageRepo()

	// Services.
	serviceCatalog, err := catalog.NewStaticCatalog()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid service catalog: %v", err)
	}

	clock := utils.SystemClock()
	engine := pricing.NewEngine(pricing.PlatformConfig{
		Currency:             config.AppConfig.Currency,
		BookingFee:           config.AppConfig.BookingFee,
		ServiceFee:           config.AppConfig.ServiceFee,
		SpecialtyTaskPrice:   config.AppConfig.SpecialtyTaskPrice,
		MinimumBookingAmount: config.AppConfig.MinimumBookingAmount,
		WeekendMultiplier:    config.AppConfig.WeekendMultiplier,
		HolidayMultiplier:    config.AppConfig.HolidayMultiplier,
		UrgentSurcharge:      pricing.DefaultUrgentSurcharge,
		EmergencySurcharge:   pricing.DefaultEmergencySurcharge,
		Holidays:             pricing.DefaultHolidays,
		ServiceAreas:         catalog.DefaultServiceAreas,
	}, packages, clock)

	sessions := booking.NewRedisSessionStore(utils.GetSessionCacheClient())
	flow := booking.NewFlowController(serviceCatalog, engine, sessions, clock, logger)
	matcher := booking.NewMatcher(workers, bookings)
	matcher.Cache = booking.NewRedisCandidateCache(utils.GetCacheClient())
	gateway := payment.NewGateway()
	notifier := notification.NewLogDispatcher()
	committer := booking.NewCommitter(serviceCatalog, engine, matcher, bookings, packages, gateway, notifier, sessions, clock, logger)

	// Handlers and routes.
	bookingHandler := handlers.NewBookingHandler(flow, committer, matcher, serviceCatalog, bookings)
	pricingHandler := handlers.NewPricingHandler(engine, serviceCatalog)
	serviceHandler := handlers.NewServiceHandler(serviceCatalog)

	routes.RegisterServiceRoutes(router, serviceHandler)
	routes.RegisterPricingRoutes(router, pricingHandler)
	routes.RegisterBookingRoutes(router, bookingHandler)

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
