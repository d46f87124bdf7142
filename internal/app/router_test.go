//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/food-storage/config"
	"github.com/guttosm/food-storage/internal/circuitbreaker"
	"github.com/guttosm/food-storage/internal/mocks"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name         string
		dbComponents *DatabaseComponents
		cfg          config.Config
		validate     func(*testing.T, *RouterComponents)
	}{
		{
			name: "creates router without database",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:      100,
					RateWindow:     time.Minute,
					IdempotencyTTL: 2 * time.Minute,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Handler)
				assert.NotNil(t, components.HealthHandler)
				assert.False(t, components.Config.EnableAuth)
				assert.True(t, components.Config.EnableIdempotency)
				assert.Equal(t, 2*time.Minute, components.Config.IdempotencyTTL)
				assert.Equal(t, 100, components.Config.RateLimit)
				assert.Nil(t, components.Config.LoggingService)
				assert.Nil(t, components.Config.JWTSecret)
			},
		},
		{
			name: "creates router with api key auth",
			cfg: config.Config{
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
			},
		},
		{
			name: "creates router with jwt secret",
			cfg: config.Config{
				Auth: config.AuthConfig{JWTSecretKey: "s3cret"},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Equal(t, []byte("s3cret"), components.Config.JWTSecret)
			},
		},
		{
			name: "creates router with audit sink",
			dbComponents: &DatabaseComponents{
				LoggingService:     mocks.NewMockLoggingService(t),
				LogsCircuitBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Config.LoggingService)
				assert.NotNil(t, components.HealthHandler)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeRouter(service.NewPantryService(), tt.dbComponents, tt.cfg)

			assert.NotNil(t, components)
			tt.validate(t, components)
		})
	}
}
