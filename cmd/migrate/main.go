package main

import (
	"os"
	"slices"

	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/helper"
	"tonyspizza/shared/logger"
)

const (
	argLength = 2
)

var actions = []string{helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp}

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	action := os.Args[1]
	if !slices.Contains(actions, action) {
		log.Fatal().Str("action", action).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
