package main

import (
	"context"
	"log"

	"github.com/pantryloft/backend/config"
	"github.com/pantryloft/backend/internal/database"
	"github.com/pantryloft/backend/internal/router"
	"github.com/pantryloft/backend/internal/server"
	"github.com/pantryloft/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rate limiting is optional; the service runs without Redis.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	var uploadStore service.UploadStore
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		uploadStore = service.NewS3Store(s3Cfg)
	} else {
		uploadStore, err = service.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize upload directory: %v", err)
		}
	}

	r := router.SetupRouter(cfg, db, redisClient, uploadStore)

	srv := server.New(r)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
