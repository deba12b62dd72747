package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/locvowork/employment_history/internal/bootstrap"
	"github.com/locvowork/employment_history/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		os.Exit(1)
	}
	if err := app.InitializeServer(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize HTTP server", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.ErrorLog(ctx, "Application stopped with error", err)
		os.Exit(1)
	}
}
