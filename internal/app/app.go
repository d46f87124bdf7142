// Package app provides application initialization and dependency injection.
package app

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/config"
	"github.com/guttosm/food-storage/internal/http"
	"github.com/guttosm/food-storage/internal/middleware"
	"github.com/guttosm/food-storage/internal/service"
)

// App is the wired application: the HTTP router plus the resources that
// must be released on shutdown.
type App struct {
	Router *gin.Engine
	Pantry *service.PantryService

	closers   []func()
	closeOnce sync.Once
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	serviceComponents := InitializeServices(cfg.Seed)

	// Optional MongoDB audit log sink
	dbComponents := InitializeDatabase(cfg.Database)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(serviceComponents.Pantry, dbComponents, cfg)
	router, stopRouter := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)

	a := &App{
		Router:  router,
		Pantry:  serviceComponents.Pantry,
		closers: []func(){stopRouter},
	}
	if dbComponents != nil {
		// Flush pending audit entries before the connection goes away.
		a.closers = append(a.closers, middleware.StopAsyncLogger, dbComponents.Close)
	}
	return a
}

// Close releases background workers and connections. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for _, closeFn := range a.closers {
			closeFn()
		}
	})
}
