package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/dto"
	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/i18n"
	"github.com/guttosm/food-storage/internal/middleware"
	"github.com/guttosm/food-storage/internal/service"
)

const defaultAuditPageSize = 50

// Handler provides HTTP handlers for the ingredient, recipe and audit routes.
type Handler struct {
	pantry         service.Pantry
	loggingService service.LoggingService
}

// NewHandler creates a new Handler. loggingService may be nil, in which case
// mutations are not audited and the audit log endpoint reports 503.
func NewHandler(pantry service.Pantry, loggingService service.LoggingService) *Handler {
	return &Handler{
		pantry:         pantry,
		loggingService: loggingService,
	}
}

// ListIngredients handles GET /api/ingredients.
//
// @Summary      List stored lots
// @Description  Returns every lot, grouped by ingredient. With q, only lots whose name contains q (case-insensitive).
// @Tags         Ingredients
// @Produce      json
// @Param        q query string false "Name keyword"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.IngredientResponse}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/ingredients [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	var lots []*model.Ingredient
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		lots = h.pantry.SearchIngredients(q)
	} else {
		lots = h.pantry.Ingredients()
	}
	NewResponseBuilder(c).SuccessOK(dto.NewIngredientResponses(lots, h.pantry.Today()))
}

// AddIngredient handles POST /api/ingredients.
//
// @Summary      Store a lot
// @Description  Adds a lot to storage. A lot with the same name, unit and expiration date absorbs its amount and price. Supports idempotency via Idempotency-Key header.
// @Tags         Ingredients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AddIngredientRequest true "Lot"
// @Success      201 {object} dto.SuccessResponse{data=dto.IngredientResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid lot or expiration date in the past"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/ingredients [post]
func (h *Handler) AddIngredient(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.AddIngredientRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	today := h.pantry.Today()
	lot, err := req.ToIngredient(today)
	var stored *model.Ingredient
	if err == nil {
		stored, err = h.pantry.StoreIngredient(lot)
	}
	if err != nil {
		middleware.AuditLogError(h.loggingService, c, model.ActionAddIngredient, "Ingredient rejected", err, map[string]interface{}{
			"ingredient": req.Name,
		})
		h.fail(builder, err, "")
		return
	}

	middleware.AuditLog(h.loggingService, c, model.ActionAddIngredient, "Ingredient stored", map[string]interface{}{
		"ingredient":      stored.Name(),
		"amount":          lot.Amount(),
		"stored_amount":   stored.Amount(),
		"unit":            stored.Unit(),
		"expiration_date": stored.ExpirationDate().Format(model.DateLayout),
	})
	builder.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyIngredientAdded, dto.NewIngredientResponse(stored, today))
}

// ConsumeIngredient handles POST /api/ingredients/consume.
//
// @Summary      Consume an ingredient
// @Description  Takes amount from the lots of an ingredient, soonest expiry first, ignoring units. Fails without changes when the stored total is short.
// @Tags         Ingredients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.ConsumeIngredientRequest true "Ingredient and amount"
// @Success      200 {object} dto.SuccessResponse{data=dto.ConsumeResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Ingredient not in storage"
// @Failure      409 {object} dto.ErrorResponse "Not enough stored"
// @Security     ApiKeyAuth
// @Router       /api/ingredients/consume [post]
func (h *Handler) ConsumeIngredient(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ConsumeIngredientRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	fields := map[string]interface{}{
		"ingredient": req.Name,
		"amount":     req.Amount,
	}
	if err := h.pantry.ConsumeIngredient(req.Name, req.Amount); err != nil {
		middleware.AuditLogError(h.loggingService, c, model.ActionConsumeIngredient, "Consumption rejected", err, fields)
		h.fail(builder, err, i18n.ErrKeyIngredientNotFound)
		return
	}
	middleware.AuditLog(h.loggingService, c, model.ActionConsumeIngredient, "Ingredient consumed", fields)

	key := model.NormalizeKey(req.Name)
	var remaining []*model.Ingredient
	for _, lot := range h.pantry.Ingredients() {
		if lot.Key() == key {
			remaining = append(remaining, lot)
		}
	}

	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyIngredientConsumed, dto.ConsumeResponse{
		Name:      req.Name,
		Consumed:  req.Amount,
		Remaining: dto.NewIngredientResponses(remaining, h.pantry.Today()),
	})
}

// ExpiredIngredients handles GET /api/ingredients/expired.
//
// @Summary      List expired lots
// @Description  Lots whose expiration date is before today.
// @Tags         Ingredients
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.IngredientResponse}
// @Security     ApiKeyAuth
// @Router       /api/ingredients/expired [get]
func (h *Handler) ExpiredIngredients(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.NewIngredientResponses(h.pantry.ExpiredIngredients(), h.pantry.Today()))
}

// InventorySummary handles GET /api/inventory/summary.
//
// @Summary      Inventory summary
// @Description  Ingredient and lot counts, expired lots, recipe count and the total value of stored lots.
// @Tags         Inventory
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.InventorySummaryResponse}
// @Security     ApiKeyAuth
// @Router       /api/inventory/summary [get]
func (h *Handler) InventorySummary(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.summary())
}

// ListRecipes handles GET /api/recipes.
//
// @Summary      List recipes
// @Description  Every recipe sorted by name. With q, only recipes whose name contains q (case-insensitive).
// @Tags         Recipes
// @Produce      json
// @Param        q query string false "Name keyword"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.RecipeResponse}
// @Security     ApiKeyAuth
// @Router       /api/recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	var recipes []*model.Recipe
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		recipes = h.pantry.SearchRecipes(q)
	} else {
		recipes = h.pantry.AllRecipes()
	}
	NewResponseBuilder(c).SuccessOK(dto.NewRecipeResponses(recipes))
}

// RecipeNames handles GET /api/recipes/names.
//
// @Summary      Recipe names
// @Tags         Recipes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]string}
// @Security     ApiKeyAuth
// @Router       /api/recipes/names [get]
func (h *Handler) RecipeNames(c *gin.Context) {
	names := h.pantry.AllRecipeNames()
	if names == nil {
		names = []string{}
	}
	NewResponseBuilder(c).SuccessOK(names)
}

// SaveRecipe handles POST /api/recipes.
//
// @Summary      Save a recipe
// @Description  Creates a recipe or replaces the one with the same name (case-insensitive).
// @Tags         Recipes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.RecipeRequest true "Recipe"
// @Success      201 {object} dto.SuccessResponse{data=dto.RecipeResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/recipes [post]
func (h *Handler) SaveRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.RecipeRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	recipe, err := req.ToRecipe(h.pantry.Today())
	if err == nil {
		err = h.pantry.AddRecipe(recipe)
	}
	if err != nil {
		middleware.AuditLogError(h.loggingService, c, model.ActionAddRecipe, "Recipe rejected", err, map[string]interface{}{
			"recipe": req.Name,
		})
		h.fail(builder, err, "")
		return
	}

	middleware.AuditLog(h.loggingService, c, model.ActionAddRecipe, "Recipe saved", map[string]interface{}{
		"recipe":      recipe.Name(),
		"ingredients": len(req.Ingredients),
	})
	builder.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyRecipeSaved, dto.NewRecipeResponse(recipe))
}

// GetRecipe handles GET /api/recipes/:name.
//
// @Summary      Get a recipe
// @Tags         Recipes
// @Produce      json
// @Param        name path string true "Recipe name (case-insensitive)"
// @Success      200 {object} dto.SuccessResponse{data=dto.RecipeResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/recipes/{name} [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)

	recipe, err := h.pantry.GetRecipe(c.Param("name"))
	if err != nil {
		h.fail(builder, err, i18n.ErrKeyRecipeNotFound)
		return
	}
	if recipe == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyRecipeNotFound, nil)
		return
	}
	builder.SuccessOK(dto.NewRecipeResponse(recipe))
}

// DeleteRecipe handles DELETE /api/recipes/:name.
//
// @Summary      Remove a recipe
// @Tags         Recipes
// @Produce      json
// @Param        name path string true "Recipe name (case-insensitive)"
// @Success      200 {object} dto.SuccessResponse{data=dto.RecipeResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/recipes/{name} [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	recipe, err := h.pantry.RemoveRecipe(name)
	if err != nil {
		h.fail(builder, err, i18n.ErrKeyRecipeNotFound)
		return
	}
	if recipe == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyRecipeNotFound, nil)
		return
	}

	middleware.AuditLog(h.loggingService, c, model.ActionRemoveRecipe, "Recipe removed", map[string]interface{}{
		"recipe": recipe.Name(),
	})
	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyRecipeRemoved, dto.NewRecipeResponse(recipe))
}

// RecipeAvailability handles GET /api/recipes/:name/availability.
//
// @Summary      Can a recipe be prepared
// @Description  True when every line is covered by non-expired lots of the same unit.
// @Tags         Recipes
// @Produce      json
// @Param        name path string true "Recipe name (case-insensitive)"
// @Success      200 {object} dto.SuccessResponse{data=dto.AvailabilityResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/recipes/{name}/availability [get]
func (h *Handler) RecipeAvailability(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	ok, err := h.pantry.CanPrepareRecipeByName(name)
	if err != nil {
		h.fail(builder, err, i18n.ErrKeyRecipeNotFound)
		return
	}
	builder.SuccessOK(dto.AvailabilityResponse{Recipe: name, CanPrepare: ok})
}

// PrepareRecipe handles POST /api/recipes/:name/prepare.
//
// @Summary      Prepare a recipe
// @Description  Consumes every line of the recipe from storage, soonest expiry first. Nothing is consumed when any line is short.
// @Tags         Recipes
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        name path string true "Recipe name (case-insensitive)"
// @Success      200 {object} dto.SuccessResponse{data=dto.PreparationResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse "Not enough ingredients"
// @Security     ApiKeyAuth
// @Router       /api/recipes/{name}/prepare [post]
func (h *Handler) PrepareRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	recipe, err := h.pantry.GetRecipe(name)
	if err == nil && recipe == nil {
		err = model.NotFound("recipe %q not found", name)
	}
	if err == nil {
		err = h.pantry.PrepareRecipe(recipe)
	}
	if err != nil {
		middleware.AuditLogError(h.loggingService, c, model.ActionPrepareRecipe, "Preparation rejected", err, map[string]interface{}{
			"recipe": name,
		})
		h.fail(builder, err, i18n.ErrKeyRecipeNotFound)
		return
	}

	middleware.AuditLog(h.loggingService, c, model.ActionPrepareRecipe, "Recipe prepared", map[string]interface{}{
		"recipe":   recipe.Name(),
		"servings": recipe.Servings(),
	})
	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyRecipePrepared, dto.PreparationResponse{
		Recipe:    dto.NewRecipeResponse(recipe),
		Inventory: h.summary(),
	})
}

// SuggestRecipes handles GET /api/recipes/suggestions.
//
// @Summary      Suggest recipes
// @Description  Every recipe that can be prepared from the current inventory, sorted by name.
// @Tags         Recipes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.RecipeResponse}
// @Security     ApiKeyAuth
// @Router       /api/recipes/suggestions [get]
func (h *Handler) SuggestRecipes(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.NewRecipeResponses(h.pantry.SuggestRecipes()))
}

// AuditLogs handles GET /api/audit-logs.
//
// @Summary      Audit log
// @Description  Stored pantry mutations and requests, newest first. Requires the MongoDB sink.
// @Tags         Audit
// @Produce      json
// @Param        action query string false "Filter by action" Enums(add_ingredient, consume_ingredient, add_recipe, remove_recipe, prepare_recipe)
// @Param        limit query int false "Page size" default(50)
// @Param        skip query int false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogsResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse "Audit sink disabled or unreachable"
// @Security     ApiKeyAuth
// @Router       /api/audit-logs [get]
func (h *Handler) AuditLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.loggingService == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, nil)
		return
	}

	limit, err := queryInt(c, "limit", defaultAuditPageSize)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err)
		return
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidQuery, err)
		return
	}

	opts := model.LogQueryOptions{
		Action: strings.TrimSpace(c.Query("action")),
		Limit:  limit,
		Skip:   skip,
	}
	entries, err := h.loggingService.QueryLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
		return
	}
	total, err := h.loggingService.CountLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
		return
	}

	builder.SuccessOK(dto.NewAuditLogsResponse(entries, total, limit, skip))
}

func (h *Handler) summary() dto.InventorySummaryResponse {
	s := h.pantry.Summary()
	return dto.NewInventorySummaryResponse(s.IngredientTypes, s.Lots, s.ExpiredLots, s.Recipes, s.TotalValue, h.pantry.Today())
}

// fail routes domain errors to their status and everything else to 400.
func (h *Handler) fail(builder *ResponseBuilder, err error, notFoundKey string) {
	if model.ReasonOf(err) != "" {
		builder.DomainError(err, notFoundKey)
		return
	}
	builder.ValidationError(err)
}

// queryInt parses a non-negative integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, model.InvalidInput("%s must be a non-negative integer", name)
	}
	return n, nil
}
