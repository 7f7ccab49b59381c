package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfarhadattari/ema-john-server/internal/auth"
	"github.com/mfarhadattari/ema-john-server/internal/cache"
	shophttp "github.com/mfarhadattari/ema-john-server/internal/http"
	"github.com/mfarhadattari/ema-john-server/internal/repository"
	"github.com/mfarhadattari/ema-john-server/internal/service"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		// Atlas URI composed from credentials, like the hosted deployment
		mongoURI = fmt.Sprintf(
			"mongodb+srv://%s:%s@cluster0.dciaudj.mongodb.net/?retryWrites=true&w=majority",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"),
		)
	}

	return &Config{
		Port:            getEnv("PORT", "5000"),
		MongoURI:        mongoURI,
		MongoDBName:     getEnv("MONGO_DB_NAME", "emaJhonData"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       os.Getenv("JWT_SECRET_TOKEN"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Set up MongoDB connection
	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB")

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cartRepo := repository.NewCartRepository(mongoDB)
	productRepo := repository.NewProductRepository(mongoDB)
	ordersCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(cartRepo, ordersCache)
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))

	router := shophttp.NewRouter(productRepo, cartService, tokenService, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Ema-John server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}

	log.Println("server exited")
}
