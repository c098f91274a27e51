package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pantrypilot/backend/config"
	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/server"
	"github.com/pantrypilot/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Loaded %d recipes", store.Len())

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Redis is optional; without it generated batches are simply not
	// cached.
	var redisClient *redis.Client
	if redisClient, err = database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, running without suggestion cache: %v", err)
		redisClient = nil
	}

	llm := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMTextModel, cfg.LLMVisionModel)
	if !llm.Configured() {
		log.Println("Generation collaborator not configured, serving dataset suggestions only")
	}

	srv := server.New(cfg, store, db, llm, redisClient)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func loadDataset(cfg *config.Config) (*dataset.Store, error) {
	if !cfg.DatasetFromS3() {
		return dataset.LoadFile(cfg.DatasetPath)
	}

	ctx := context.Background()
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	body, err := s3cfg.FetchDataset(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return dataset.Load(body)
}
