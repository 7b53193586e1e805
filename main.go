package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog/internal/handlers"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/cache"
	"catalog/pkg/rabbitmq"
)

func main() {
	startTime := time.Now()

	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB", "products")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", time.Hour)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	appEnv := viper.GetString("APP_ENV")

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// --- Connect MongoDB ---
	// The document store is the source of truth: the process does not start
	// without it.
	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(viper.GetString("MONGODB_URI")))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB.")
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB.")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Error during MongoDB disconnect.")
		}
	}()
	log.Info().Str("database", viper.GetString("MONGODB_DB")).Msg("Connected to MongoDB.")

	productRepo := repositories.NewMongoProductRepository(mongoClient.Database(viper.GetString("MONGODB_DB")), log)
	if err := productRepo.EnsureIndexes(connectCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes.")
	}

	// --- Snapshot Cache ---
	// The cache is an optimization, never a correctness dependency: an
	// unreachable Redis is tolerated and every request falls back to the
	// store.
	snapshotCache := cache.NewRedisSnapshotCache(connectCtx, &cache.RedisConfig{
		Addr:     viper.GetString("REDIS_ADDR"),
		Password: viper.GetString("REDIS_PASSWORD"),
		DB:       viper.GetInt("REDIS_DB"),
		CacheTTL: viper.GetDuration("CACHE_TTL"),
	}, log)
	defer func() {
		if err := snapshotCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis client.")
		}
	}()

	// --- Catalog Events (optional) ---
	var events services.EventPublisher
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL}, log)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RabbitMQ client; catalog events disabled.")
		} else {
			defer func() {
				if err := mqClient.Close(); err != nil {
					log.Error().Err(err).Msg("Error closing RabbitMQ client.")
				}
			}()
			events = mqClient
		}
	}

	// --- Services and Handlers ---
	productService := services.NewProductService(productRepo, snapshotCache, events, log)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":      "healthy",
			"timestamp":   time.Now().Format(time.RFC3339),
			"uptime":      time.Since(startTime).Seconds(),
			"environment": appEnv,
		})
	})

	// Catch-all: anything not matched above is an unknown route.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
		})
	})

	// --- Start HTTP Server ---
	log.Info().Str("port", appPort).Str("environment", appEnv).Msg("Starting server.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start.")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown.")
	}

	log.Info().Msg("Server gracefully stopped.")
}
