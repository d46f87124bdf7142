// Package main is the entry point for the food-storage HTTP service.
//
// @title           Food Storage API
// @version         1.0.0
// @description     API for tracking perishable ingredient lots and matching recipes against them.
//
//	Lots are consumed soonest-expiring first; recipes can be checked, suggested and prepared.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/food-storage
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>". Required when JWT_SECRET_KEY is set.
//
// @tag.name        Ingredients
// @tag.description Inventory lots
//
// @tag.name        Inventory
// @tag.description Inventory aggregates
//
// @tag.name        Recipes
// @tag.description Cookbook and recipe matching
//
// @tag.name        Audit
// @tag.description Audit trail of pantry mutations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/food-storage/docs" // swagger docs

	"github.com/guttosm/food-storage/config"
	"github.com/guttosm/food-storage/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load env file")
	}
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
