package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/config"
	delivery "github.com/kismat91/FinDocGPT/internal/api/delivery/http"
	_ "github.com/kismat91/FinDocGPT/internal/api/docs"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/api/service"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/kismat91/FinDocGPT/pkg/postgres"
	"github.com/kismat91/FinDocGPT/pkg/redis"
	"github.com/kismat91/FinDocGPT/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis, bar caching is disabled without it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err = redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
	} else {
		appLogger.Info("Redis not configured, market data caching disabled")
	}

	// Initialize repositories
	docRepo := repository.NewDocumentRepository(db.DB)
	resultRepo := repository.NewAnalysisResultRepository(db.DB)
	sentimentRepo := repository.NewSentimentRepository(db.DB)
	forecastRepo := repository.NewForecastRepository(db.DB)
	strategyRepo := repository.NewStrategyRepository(db.DB)
	marketDataRepo := repository.NewMarketDataRepository(db.DB)
	newsRepo := repository.NewNewsFeedRepository(cfg, appLogger)

	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	mockRepo := repository.NewMockMarketRepository()
	financeRepo := repository.NewFallbackFinanceRepository(yahooRepo, mockRepo, appLogger)

	// Initialize AI provider, Q&A falls back to rule-based answers without it
	var aiRepo repository.AIRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	} else {
		appLogger.Info("Gemini API key not set, using rule-based Q&A only")
	}

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	} else {
		appLogger.Info("Telegram bot token not set, anomaly alerts disabled")
	}

	// Initialize services
	processor := service.NewDocumentProcessor(appLogger)
	documentSvc := service.NewDocumentService(cfg, docRepo, processor, appLogger)
	analysisSvc := service.NewAnalysisService(docRepo, resultRepo, aiRepo, telegramNotifier, appLogger)
	sentimentSvc := service.NewSentimentService(docRepo, sentimentRepo, newsRepo, appLogger)
	forecastSvc := service.NewForecastService(financeRepo, forecastRepo, appLogger)
	strategySvc := service.NewStrategyService(financeRepo, strategyRepo, appLogger)
	marketSvc := service.NewMarketService(cfg, financeRepo, marketDataRepo, redisClient, appLogger)
	secSvc := service.NewSECService(appLogger)

	// Schedule the daily market data snapshot
	cronScheduler := cron.New()
	if cfg.MarketData.SnapshotSchedule != "" {
		_, err = cronScheduler.AddFunc(cfg.MarketData.SnapshotSchedule, func() {
			if err := marketSvc.Snapshot(ctx); err != nil {
				appLogger.Error("Market data snapshot failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid snapshot schedule", logger.ErrorField(err))
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()

	// Initialize handlers and routes
	healthHandler := delivery.NewHealthHandler()
	healthHandler.RegisterRoutes(e)

	apiV1 := e.Group("/api/v1")

	documentHandler := delivery.NewDocumentHandler(documentSvc, appLogger)
	documentHandler.RegisterRoutes(apiV1.Group("/documents"))

	analysisHandler := delivery.NewAnalysisHandler(analysisSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1.Group("/analysis"))

	sentimentHandler := delivery.NewSentimentHandler(sentimentSvc, appLogger)
	sentimentHandler.RegisterRoutes(apiV1.Group("/sentiment"))

	forecastHandler := delivery.NewForecastHandler(forecastSvc, appLogger)
	forecastHandler.RegisterRoutes(apiV1.Group("/forecast"))

	strategyHandler := delivery.NewStrategyHandler(strategySvc, appLogger)
	strategyHandler.RegisterRoutes(apiV1.Group("/strategy"))

	marketHandler := delivery.NewMarketHandler(marketSvc, appLogger)
	marketHandler.RegisterRoutes(apiV1.Group("/market"))

	secHandler := delivery.NewSECHandler(secSvc, appLogger)
	secHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title FinDocGPT API
// @version 1.0
// @description Financial document analysis API with sentiment, anomaly, forecasting and strategy endpoints.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
