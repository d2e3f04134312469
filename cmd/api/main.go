package main

import (
	"context"
	"log"
	"time"

	"carrier-gateway/internal/core/cache"
	"carrier-gateway/internal/core/config"
	"carrier-gateway/internal/core/logger"
	"carrier-gateway/internal/core/server"
	shippingadapter "carrier-gateway/internal/features/shipping/adapters"
	shippinghandler "carrier-gateway/internal/features/shipping/handler"
	shippingservice "carrier-gateway/internal/features/shipping/service"

	"go.uber.org/zap"
)

// @title Carrier Gateway API
// @version 1.0
// @description This API provides rate shopping, tracking, shipment and address validation through the UPS XML services.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("ups_test_mode", cfg.UPS.TestMode),
	)

	// Initialize the rate quote cache. The gateway stays up without it.
	var quoteCache cache.Cache
	redisAdapter, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Warn("Redis unavailable, rate quote caching disabled", zap.Error(err))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisAdapter.Ping(ctx); err != nil {
			l.Warn("Redis unreachable, rate quote caching disabled", zap.Error(err))
		} else {
			quoteCache = redisAdapter
			defer redisAdapter.Close()
			l.Info("Redis connection verified")
		}
	}

	// Initialize the carrier adapter.
	transport := shippingadapter.NewHTTPTransport(time.Duration(cfg.UPS.RequestTimeoutSeconds) * time.Second)
	upsAdapter := shippingadapter.NewUPSAdapter(cfg.UPS, transport, l)

	// Initialize Shipping Service & Handler
	quoteTTL := time.Duration(cfg.Redis.RateQuoteTTLSeconds) * time.Second
	shippingSvc := shippingservice.NewShippingService(upsAdapter, quoteCache, quoteTTL, l)
	shippingHdl := shippinghandler.NewShippingHandler(shippingSvc)

	srv := server.New(cfg)

	// Register Routes
	shippingHdl.RegisterRoutes(srv.App)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
