package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/logging"
	"github.com/nfrund/taskboard/internal/server"
)

func main() {
	cfg := config.MustNew()
	logger := logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := server.New(ctx, cfg, logger)
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(ctx); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
