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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yurtapp/account-api/internal/config"
	"github.com/yurtapp/account-api/internal/infrastructure/dynamo"
	"github.com/yurtapp/account-api/internal/infrastructure/geoip"
	jwtinfra "github.com/yurtapp/account-api/internal/infrastructure/jwt"
	"github.com/yurtapp/account-api/internal/infrastructure/redis"
	s3infra "github.com/yurtapp/account-api/internal/infrastructure/s3"
	"github.com/yurtapp/account-api/internal/infrastructure/smtp"
	"github.com/yurtapp/account-api/internal/infrastructure/sns"
	"github.com/yurtapp/account-api/internal/metrics"
	transporthttp "github.com/yurtapp/account-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis backs the verification engine: codes, resend markers, capabilities.
	redisClient := redis.NewClient(cfg)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis unreachable at %s: %v", cfg.RedisAddr, err)
	}
	store := redis.NewStore(redisClient)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for profile photos.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	deps := &transporthttp.Deps{
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		DeviceRepo:  dynamo.NewDeviceRepo(dynamoClient, cfg.DynamoTables.Devices),
		CardRepo:    dynamo.NewCardRepo(dynamoClient, cfg.DynamoTables.Cards),
		AddressRepo: dynamo.NewAddressRepo(dynamoClient, cfg.DynamoTables.Addresses),
		Store:       store,
		S3Store:     s3Store,
		Mailer:      mailer,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
		GeoIP:       geoip.NewClient(cfg.GeoIPBaseURL),
		Metrics:     collector,
		Gatherer:    registry,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	_ = redisClient.Close()
	log.Println("Server stopped")
}
