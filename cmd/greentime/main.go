package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"greentime/internal/config"
	apphttp "greentime/internal/http"
	"greentime/internal/log"
	"greentime/internal/storage"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: cfg.LogLevel, Component: "greentime"})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	backend := storage.Bootstrap(cfg.DBPath, logger)
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("store close failed", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, backend, logger, apphttp.Timeouts{
		Read:  cfg.ReadTimeout,
		Write: cfg.WriteTimeout,
		Idle:  cfg.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
