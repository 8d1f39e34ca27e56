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

	"legacyestates/internal/config"
	"legacyestates/internal/database"
	"legacyestates/internal/handler"
	"legacyestates/internal/lead"
	"legacyestates/internal/metrics"
	"legacyestates/internal/services"
	"legacyestates/internal/util"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second

	sweepInterval = 5 * time.Minute
)

func main() {
	// Initialize structured logging
	log.SetPrefix("[API] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: debug=%v, port=%s, host=%s", cfg.App.Debug, cfg.App.Port, cfg.App.Host)

	// Initialize database
	log.Println("Initializing database connection...")
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		log.Println("Closing database connections...")
		if sqlDB, err := database.GetDB().DB(); err == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				log.Printf("Error closing database: %v", closeErr)
			}
		}
	}()

	// Create service instances
	log.Println("Initializing services...")
	healthSvc := services.NewHealthService(cfg.App.Name)
	authSvc := services.NewAuthService(database.GetDB())
	otpSvc := services.NewOTPService(cfg)
	emailSvc := services.NewEmailService(&cfg.Email)
	contactSvc := services.NewContactService(database.GetDB(), emailSvc)
	propertySvc := services.NewPropertyService(database.GetDB())
	blogSvc := services.NewBlogService(database.GetDB())
	testimonialSvc := services.NewTestimonialService(database.GetDB())

	// Lead-capture sessions live in memory; a background sweep drops the
	// expired ones.
	registry := lead.NewRegistry(otpSvc, contactSvc)

	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := registry.Sweep(); removed > 0 {
					log.Printf("[SESSION] Swept %d expired inquiry sessions", removed)
				}
				util.CleanupExpiredSessions()
				metrics.SetActiveLeadSessions(registry.Len())
			case <-sweepDone:
				return
			}
		}
	}()
	defer close(sweepDone)

	// Mount routes
	log.Println("Mounting HTTP handlers...")
	handlers := handler.NewHandlers(registry, otpSvc, contactSvc, propertySvc, blogSvc, testimonialSvc, authSvc, healthSvc)
	router := handler.NewRouter(cfg, handlers)

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     log.New(os.Stderr, "[HTTP] ", log.LstdFlags),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server failed to start: %v", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
		if err == context.DeadlineExceeded {
			log.Println("Shutdown timeout exceeded, forcing close...")
			httpServer.Close()
		}
	}

	log.Println("Server shutdown complete")
}
