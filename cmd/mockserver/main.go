package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hrportal/internal/app"
	"hrportal/internal/app/server"
	"hrportal/internal/platform/config"
)

func main() {
	cfg := config.Load()
	logger := app.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Error("mock backend failed", "err", err)
		stop()
		os.Exit(1)
	}
}
