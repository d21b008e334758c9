// Package server wires the feed service: database, rate limiter gate,
// regeneration notifier and all HTTP routes behind one http.Server.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"chirp/internal/database"
	"chirp/internal/ratelimit"
	"chirp/internal/regen"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	port int

	db     database.Service
	gate   ratelimit.Gate
	regen  regen.Notifier
	logger *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	return &Config{
		Port:         port,
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// NewServer creates and configures a new HTTP server
func NewServer(logger *slog.Logger) *http.Server {
	cfg := LoadConfigFromEnv()

	dbService := database.New()
	logger.Info("database service initialized")

	gate := ratelimit.NewRedisGate(
		getEnv("REDIS_ADDR", "localhost:6379"),
		getEnv("REDIS_PASSWORD", ""),
		0,
		ratelimit.DefaultLimit,
		ratelimit.DefaultWindow,
		logger,
	)

	var notifier regen.Notifier = regen.NopNotifier{}
	if kafkaCfg, err := regen.LoadConfig(); err != nil {
		logger.Warn("regeneration bus not configured, signals disabled", "error", err.Error())
	} else {
		kafkaNotifier, err := regen.NewKafkaNotifier(kafkaCfg, logger)
		if err != nil {
			logger.Warn("failed to initialize regeneration notifier, signals disabled", "error", err.Error())
		} else {
			notifier = kafkaNotifier
		}
	}

	appServer := &Server{
		port:   cfg.Port,
		db:     dbService,
		gate:   gate,
		regen:  notifier,
		logger: logger,
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	logger.Info("HTTP server configured", "port", cfg.Port)
	return server
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
