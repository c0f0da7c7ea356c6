package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qhub/qhub_api/config"
	"github.com/qhub/qhub_api/internal/ai"
	deps "github.com/qhub/qhub_api/internal/debs"
	api "github.com/qhub/qhub_api/internal/http/rest"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
	startupTimeout                = 30 * time.Second
)

func main() {
	cfg := config.New()
	deps := deps.New(cfg)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := deps.DB.Migrate(startupCtx); err != nil {
		log.Panicln("failed to run migrations", "error", err)
	}

	var aiService *ai.Service
	if cfg.GeminiAPIKey != "" {
		svc, err := ai.New(startupCtx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel, cfg.TagVocabulary, deps.Embeddings)
		if err != nil {
			log.Println("ai service disabled:", err)
		} else {
			aiService = svc
		}
	} else {
		log.Println("ai service disabled: no API key configured")
	}

	a := &api.API{
		Config: cfg,
		Deps:   deps,
		AI:     aiService,
		DB:     deps.Pool(),
	}
	if err := a.Init(startupCtx); err != nil {
		log.Println("warming tag embeddings failed:", err)
	}

	go deps.WebSocket.Run()
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("server shutdown error:", err)
	}

	deps.DB.Close()
	deps.Embeddings.Close()
	log.Println("Connections closed.")
}
