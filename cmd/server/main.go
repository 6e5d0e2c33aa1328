package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/jobportal/internal/bootstrap"
	"anoa.com/jobportal/internal/config"
	"anoa.com/jobportal/internal/server"
	"anoa.com/jobportal/pkg/database"
	"anoa.com/jobportal/pkg/events"
	"anoa.com/jobportal/pkg/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DSN(), cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if cfg.IsDevelopment() {
		if err := bootstrap.SeedDemoData(db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	fileStorage, err := storage.NewCloudinaryStorage(storage.Options{
		URL:        cfg.CloudinaryURL,
		CloudName:  cfg.CloudinaryCloudName,
		APIKey:     cfg.CloudinaryAPIKey,
		APISecret:  cfg.CloudinaryAPISecret,
		RootFolder: cfg.CloudinaryUploadFolder,
	})
	if err != nil {
		log.Printf("⚠️  %v, file uploads are disabled", err)
	}

	publisher := events.NewPublisher(events.Options{
		Broker:       cfg.EventBroker,
		RabbitMQURL:  cfg.RabbitMQURL,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
	})
	defer publisher.Close()

	srv := server.NewServer(cfg, server.Deps{
		DB:          db,
		RedisClient: redisClient,
		Storage:     fileStorage,
		Events:      publisher,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server exited with error: %v", err)
		}
	case sig := <-quit:
		log.Printf("🛑 Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ graceful shutdown failed: %v", err)
	}
}
