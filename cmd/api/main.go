package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/outbreakrpg/engine/internal/config"
	"github.com/outbreakrpg/engine/internal/handlers"
	"github.com/outbreakrpg/engine/internal/logger"
	"github.com/outbreakrpg/engine/internal/middleware"
	"github.com/outbreakrpg/engine/internal/queue"
	"github.com/outbreakrpg/engine/internal/storage"
	"github.com/outbreakrpg/engine/pkg/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found, continuing with process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	slogger := logger.Setup(cfg)
	slogger.Info("starting outbreak engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"session_ttl", cfg.SessionTTL)

	storageService, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, slogger)
	if err != nil {
		slogger.Error("failed to construct storage client", "error", err)
		os.Exit(1)
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer waitCancel()
	if err := storageService.WaitForConnection(waitCtx); err != nil {
		slogger.Error("failed to connect to storage", "error", err)
		os.Exit(1)
	}
	slogger.Info("storage connection established")

	queueClient, err := queue.NewClient(cfg.RedisURL, slogger)
	if err != nil {
		slogger.Error("failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer queueClient.Close()
	sessionQueue := queue.NewSessionQueue(queueClient, slogger)

	turnPipeline := pipeline.NewStubPipeline()

	router := mux.NewRouter()
	router.Handle("/health", handlers.NewHealthHandler(storageService, slogger)).Methods(http.MethodGet)

	sessionHandler := handlers.NewSessionHandler(slogger, storageService)
	router.Handle("/v1/session", sessionHandler).Methods(http.MethodPost)
	router.Handle("/v1/session/{id}", sessionHandler).Methods(http.MethodGet)

	turnHandler := handlers.NewTurnHandler(slogger, storageService, turnPipeline, sessionQueue)
	router.Handle("/v1/session/{id}/turn", turnHandler).Methods(http.MethodPost)

	handler := middleware.Logger(slogger, router)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		slogger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slogger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("server is shutting down")

	if err := storageService.Close(); err != nil {
		slogger.Error("error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slogger.Info("server exited")
}
