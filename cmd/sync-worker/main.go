package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/config"
	"github.com/Paashik/MyIS-sub000/internal/database"
	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/repository"
	"github.com/Paashik/MyIS-sub000/internal/runner"
	"github.com/Paashik/MyIS-sub000/internal/sync"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode, err := sync.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	// Run migrations
	log.Println("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return err
	}
	log.Println("Migrations completed successfully")

	// Initialize legacy bridge client
	gateway := legacy.NewClient(cfg.LegacyBridgeURL, cfg.LegacyTokenURL, cfg.LegacyClientID, cfg.LegacyClientSecret)

	// Initialize store and runner
	stores := repository.NewStore(db)
	r := runner.New(cfg.ConnectionID, stores, gateway)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if cfg.RunOnce {
		go func() {
			<-sigChan
			log.Println("Shutdown signal received")
			cancel()
		}()
		_, err := r.RunOnce(ctx, mode, cfg.Scopes, cfg.DryRun)
		return err
	}

	// Start watch loop in goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- r.Watch(ctx, mode, cfg.Scopes, cfg.DryRun, time.Duration(cfg.SyncInterval)*time.Second)
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Println("Shutdown signal received")
		cancel()

		// Wait for graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer shutdownCancel()

		select {
		case <-shutdownCtx.Done():
			log.Println("Shutdown timeout exceeded")
		case err := <-errChan:
			if err != nil && err != context.Canceled {
				log.Printf("Watcher error: %v", err)
			}
		}

		log.Println("Application stopped")
		return nil

	case err := <-errChan:
		return err
	}
}
