package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"design_ai_server/api"
	"design_ai_server/config"
	"design_ai_server/internal/ai"
	internalapi "design_ai_server/internal/api"
	"design_ai_server/internal/dump"
	"design_ai_server/internal/notify"
	"design_ai_server/internal/project"
)

func main() {
	// --- Load .env file ---
	// Environment variables from .env must land before viper reads config.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// Session store: Redis when configured, in-memory otherwise. Both are
	// ephemeral; the retention window bounds session lifetime either way.
	var store project.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("Cannot connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		pingCancel()
		log.Printf("Redis connection established (%s)", cfg.RedisAddr)
		store = project.NewRedisStore(redisClient, sessionTTL)
	} else {
		store = project.NewMemoryStore()
	}
	log.Printf("Using %s session store", store.Kind())

	// Session manager + expiry sweep
	manager := project.NewManager(store, sessionTTL)
	manager.StartSweeper(time.Duration(cfg.SweepIntervalMinutes) * time.Minute)
	defer manager.Close()

	// LLM generator (OpenRouter-compatible chat completions)
	generator := ai.NewGenerator(cfg.OpenRouterAPIKey, cfg.OpenRouterBase, cfg.ModelID, cfg.FallbackModelID)

	// Diagnostics dumper and optional lifecycle webhook
	dumper := dump.NewDumper(cfg.DumpDir)
	notifier := notify.NewClient(cfg.WebhookAPIKey, cfg.WebhookEndpoint)

	// Orchestration service + API handlers
	service := internalapi.NewService(generator, manager, dumper, notifier)
	apiHandler := internalapi.NewAPIHandler(service, manager, dumper, store.Kind())

	// --- HTTP Server ---
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(internalapi.RequestIDMiddleware())

	// CORS: the plugin runs from a file-based origin, so development defaults
	// to allow-all; production deployments list their origins explicitly.
	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" || cfg.AllowedOrigins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-Id"}
	router.Use(cors.New(corsConfig))

	api.RegisterRoutes(router, apiHandler, store.Kind())

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls are slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
