package main

import (
	"gooman/config"
	"gooman/di"
	"gooman/helper"
	"gooman/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title GoOman API
// @version 1.0
// @description Hotels, local guides and experiences in Oman, with bookings and user sessions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	http := di.InitializeService()
	http.Serve()
}
