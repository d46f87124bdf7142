package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// PantryRoutes registers the ingredient, inventory and recipe routes.
type PantryRoutes struct {
	handler *Handler
}

// NewPantryRoutes creates a new PantryRoutes instance.
func NewPantryRoutes(handler *Handler) *PantryRoutes {
	return &PantryRoutes{handler: handler}
}

// RegisterRoutes registers the pantry routes.
func (r *PantryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	ingredients.GET("", r.handler.ListIngredients)
	ingredients.POST("", r.handler.AddIngredient)
	ingredients.POST("/consume", r.handler.ConsumeIngredient)
	ingredients.GET("/expired", r.handler.ExpiredIngredients)

	rg.GET("/inventory/summary", r.handler.InventorySummary)

	recipes := rg.Group("/recipes")
	recipes.GET("", r.handler.ListRecipes)
	recipes.POST("", r.handler.SaveRecipe)
	recipes.GET("/names", r.handler.RecipeNames)
	recipes.GET("/suggestions", r.handler.SuggestRecipes)
	recipes.GET("/:name", r.handler.GetRecipe)
	recipes.DELETE("/:name", r.handler.DeleteRecipe)
	recipes.GET("/:name/availability", r.handler.RecipeAvailability)
	recipes.POST("/:name/prepare", r.handler.PrepareRecipe)
}

// AuditRoutes registers the audit log query route.
type AuditRoutes struct {
	handler *Handler
}

// NewAuditRoutes creates a new AuditRoutes instance.
func NewAuditRoutes(handler *Handler) *AuditRoutes {
	return &AuditRoutes{handler: handler}
}

// RegisterRoutes registers the audit routes.
func (r *AuditRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", r.handler.AuditLogs)
}
