package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewprep/internal/config"
	"interviewprep/internal/container"
	"interviewprep/internal/logging"
	"interviewprep/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(appConfig.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create dependency injection container
	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		logger.Error("Failed to create application container: %v", err)
		os.Exit(1)
	}
	if err := appContainer.Init(ctx); err != nil {
		logger.Error("Failed to initialize container: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}

	// Initialize web server
	server, err := ui.NewServer(ui.Options{
		Service:      appContainer.QuizService,
		Catalog:      appContainer.Catalog,
		API:          appContainer.API,
		Speaker:      appContainer.Speaker,
		CookieName:   appConfig.Session.CookieName,
		CookieMaxAge: appConfig.Session.TTL,
		GinMode:      appConfig.Server.GinMode,
		Logger:       logger.Named("ui"),
	})
	if err != nil {
		logger.Error("Failed to initialize server: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(":" + appConfig.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if err := appContainer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Container shutdown failed: %v", err)
	}
}
