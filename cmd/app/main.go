package main

import (
	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/di"
	"tonyspizza/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	log.Info().Str("app", cfg.App.Name).Str("env", cfg.Server.Env).Msg("Booting reservation site.")

	server := di.InitializeService()
	server.Serve()
}
