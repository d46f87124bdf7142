// Package app provides service initialization.
package app

import (
	"github.com/guttosm/food-storage/config"
	"github.com/guttosm/food-storage/internal/seed"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Pantry *service.PantryService
}

// InitializeServices creates the pantry and imports the seed catalog when one is configured.
// A catalog that cannot be read is logged and the pantry starts empty.
func InitializeServices(cfg config.SeedConfig) *ServiceComponents {
	pantry := service.NewPantryService()

	if cfg.File != "" {
		if _, err := seed.LoadFile(cfg.File, pantry); err != nil {
			log.Warn().Err(err).Str("file", cfg.File).Msg("Failed to import catalog - starting with an empty pantry")
		}
	}

	return &ServiceComponents{
		Pantry: pantry,
	}
}
