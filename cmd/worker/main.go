package main

import (
	"context"
	"gooman/config"
	"gooman/di"
	"gooman/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	log.Info().Msg("Starting booking event worker.")

	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Booking event worker stopped")

		return
	}

	log.Info().Msg("Booking event worker shut down.")
}
