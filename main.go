// File: meetsync/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"google.golang.org/api/option"

	"meetsync/config"
	"meetsync/cron"
	"meetsync/database"
	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/handlers"
	"meetsync/middleware"
	"meetsync/routes"
	"meetsync/services/calendar"
	ai "meetsync/services/intelligence"
	"meetsync/services/mail"
	"meetsync/services/proposal"
	"meetsync/services/reply"
	"meetsync/services/scheduler"
	"meetsync/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	tz, err := time.LoadLocation(config.AppConfig.TimeZone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid TIME_ZONE %q: %v", config.AppConfig.TimeZone, err)
	}

	ctx := context.Background()
	var googleOpts []option.ClientOption
	if config.AppConfig.GoogleCredentialsFile != "" {
		googleOpts = append(googleOpts, option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile))
	}

	mailTransport, err := mail.NewGmailTransport(ctx, googleOpts...)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gmail transport: %v", err)
	}
	calendarService, err := calendar.NewGoogleCalendarService(ctx, config.AppConfig.TimeZone, googleOpts...)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}
	oracle := ai.NewDefaultTextOracle(config.AppConfig.GeminiAPIKey)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	negRepo := negotiationRepo.NewMongoNegotiationRepo()

	// services.
	labelCache := &proposal.LabelCache{
		Client: utils.GetCacheClient(),
		Mail:   mailTransport,
	}
	availabilityService := &scheduler.DefaultAvailabilityService{
		Calendar:     calendarService,
		TimeZone:     tz,
		WindowDays:   config.AppConfig.WindowDays,
		DayStartHour: config.AppConfig.DayStartHour,
		DayEndHour:   config.AppConfig.DayEndHour,
	}
	proposalService := &proposal.DefaultProposalService{
		Mail:                   mailTransport,
		Oracle:                 oracle,
		Repo:                   negRepo,
		Labels:                 labelCache,
		LabelName:              config.AppConfig.MeetingLabel,
		DefaultDurationMinutes: config.AppConfig.DefaultDurationMin,
	}
	replyCorrelator := &reply.DefaultReplyCorrelator{
		Repo:   negRepo,
		Oracle: oracle,
	}

	// Background worker for inbound push notifications.
	cron.InitInboundWorker(mailTransport, replyCorrelator, calendarService, "primary")
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	slotsHandler := handlers.NewSlotsHandler(availabilityService)
	proposalHandler := handlers.NewProposalHandler(proposalService)
	webhookHandler := handlers.NewWebhookHandler(queueClient)
	negotiationHandler := handlers.NewNegotiationHandler(negRepo)
	watchHandler := handlers.NewWatchHandler(mailTransport, labelCache)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		FindSlotsHandler:          slotsHandler.FindSlotsHandler,
		SendProposalHandler:       proposalHandler.SendProposalHandler,
		InboundWebhookHandler:     webhookHandler.InboundWebhookHandler,
		ListNegotiationsHandler:   negotiationHandler.ListNegotiationsHandler,
		GetNegotiationHandler:     negotiationHandler.GetNegotiationHandler,
		AbandonNegotiationHandler: negotiationHandler.AbandonNegotiationHandler,
		RegisterWatchHandler:      watchHandler.RegisterWatchHandler,
		StopWatchHandler:          watchHandler.StopWatchHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
