package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailrelay/app/mailrelay"
	"github.com/dmitrymomot/mailrelay/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := mailrelay.NewApp()
	if err != nil {
		slog.Error("Failed to initialize application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	log := app.Logger()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(app.Run(ctx))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
