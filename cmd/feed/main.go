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

	_ "github.com/joho/godotenv/autoload"

	"chirp/internal/config"
	"chirp/internal/consul"
	"chirp/internal/logger"
	"chirp/internal/server"
)

func main() {
	appLogger := logger.New()
	logger.SetDefault(appLogger)

	if err := config.ValidateEnv([]string{"DB_HOST", "DB_PORT", "DB_DATABASE", "DB_USERNAME"}); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	port := config.GetEnvOrDefault("PORT", "8080")
	host := config.GetEnvOrDefault("FEED_SERVICE_HOST", "localhost")
	consulAddr := config.GetEnvOrDefault("CONSUL_HTTP_ADDR", "localhost:8500")
	consulToken := os.Getenv("CONSUL_HTTP_TOKEN")

	appLogger.Info("starting feed service",
		"port", port,
		"host", host,
		"consul", consulAddr)

	consulClient, err := consul.NewClientWithToken(consulAddr, consulToken)
	if err != nil {
		log.Fatalf("failed to create Consul client: %v", err)
	}

	// Static service ID prevents duplicate registrations on restart
	serviceID := fmt.Sprintf("feed-service-%s", host)
	_ = consulClient.Deregister(serviceID)

	err = consulClient.Register(&consul.ServiceConfig{
		ID:      serviceID,
		Name:    "feed-service",
		Address: host,
		Port:    mustAtoi(port),
		Tags:    []string{"feed", "posts", "social"},
		Check: &consul.HealthCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", host, port),
			Interval: "10s",
			Timeout:  "3s",
		},
	})
	if err != nil {
		log.Fatalf("failed to register service with Consul: %v", err)
	}
	appLogger.Info("registered with Consul", "service_id", serviceID)

	apiServer := server.NewServer(appLogger)

	go func() {
		appLogger.Info("feed service listening", "port", port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down feed service")

	if err := consulClient.Deregister(serviceID); err != nil {
		appLogger.Warn("consul deregister failed", "error", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	appLogger.Info("feed service stopped")
}

func mustAtoi(s string) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		panic("invalid int: " + s)
	}
	return n
}
