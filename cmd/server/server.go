package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckfall/run-api/internal/auth"
	"github.com/deckfall/run-api/internal/config"
	"github.com/deckfall/run-api/internal/handlers/api/v1alpha1"
	runorch "github.com/deckfall/run-api/internal/orchestrators/run"
	"github.com/deckfall/run-api/internal/pkg/idgen"
	internalredis "github.com/deckfall/run-api/internal/redis"
	"github.com/deckfall/run-api/internal/repositories/runsave"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the run API HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	redisClient, err := internalredis.NewClient(cfg.RedisAddress, &internalredis.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	saveRepo, err := runsave.NewRedis(&runsave.RedisConfig{
		Client: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create save repository: %w", err)
	}

	runService, err := runorch.NewOrchestrator(&runorch.Config{
		SaveRepo:             saveRepo,
		IDGenerator:          idgen.NewUUID("run"),
		EncounterIDGenerator: idgen.NewUUID("enc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create run orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.Config{
		RunService: runService,
	})
	if err != nil {
		return fmt.Errorf("failed to create run handler: %w", err)
	}

	authMiddleware, err := auth.NewMiddleware(&auth.Config{
		Secret: []byte(cfg.AuthSecret),
	})
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	apiMux := http.NewServeMux()
	handler.Register(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/v1alpha1/", authMiddleware.Wrap(apiMux))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(
			context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown failed, forcing close", "error", err)
			_ = srv.Close()
		}
		slog.Info("Server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
