// Package main runs the interactive food storage console.
package main

import (
	"os"

	"github.com/guttosm/food-storage/config"
	"github.com/guttosm/food-storage/internal/console"
	"github.com/guttosm/food-storage/internal/logger"
	"github.com/guttosm/food-storage/internal/seed"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load env file")
	}
	cfg := config.Load()

	// Keep the menu readable unless a level was asked for explicitly.
	level := cfg.Log.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger.Init(level, true)

	pantry := service.NewPantryService()
	if cfg.Seed.File != "" {
		if _, err := seed.LoadFile(cfg.Seed.File, pantry); err != nil {
			log.Fatal().Err(err).Msg("Failed to import catalog")
		}
	}

	if err := console.New(pantry, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal().Err(err).Msg("Console error")
	}
}
