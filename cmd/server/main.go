package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hvalle/blogforge/internal/api"
	"github.com/hvalle/blogforge/internal/config"
	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/pipeline"
	"github.com/hvalle/blogforge/internal/sanity"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	stats := genai.NewMetrics(cfg.JobTTL)
	store := sanity.NewClient(cfg.SanityProjectID, cfg.SanityDataset, cfg.SanityToken, cfg.SanityAPIVersion)
	articles := genai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, stats)

	var images *genai.ImageClient
	if cfg.ImagesEnabled() {
		images = genai.NewImageClient(cfg.OpenAIAPIKey, cfg.OpenAIImageModel, stats)
	} else {
		log.Info("image generation disabled, no OPENAI_API_KEY set")
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, articles, images, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, articles, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		articles.Close()
		if images != nil {
			images.Close()
		}
		store.Close()
	}()

	log.Info("starting blogforge", "port", cfg.Port, "workers", cfg.WorkerCount, "images", cfg.ImagesEnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
