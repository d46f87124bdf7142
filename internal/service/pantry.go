package service

import (
	"sync"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Pantry is the entry point used by the HTTP API, the console and the seed loader.
type Pantry interface {
	Today() time.Time

	AddIngredient(lot *model.Ingredient) error
	StoreIngredient(lot *model.Ingredient) (*model.Ingredient, error)
	ConsumeIngredient(name string, amount float64) error
	Ingredients() []*model.Ingredient
	SearchIngredients(keyword string) []*model.Ingredient
	ExpiredIngredients() []*model.Ingredient
	TotalValue() decimal.Decimal
	Summary() InventorySummary
	InventoryReport() string

	AddRecipe(recipe *model.Recipe) error
	RemoveRecipe(name string) (*model.Recipe, error)
	GetRecipe(name string) (*model.Recipe, error)
	SearchRecipes(keyword string) []*model.Recipe
	AllRecipes() []*model.Recipe
	AllRecipeNames() []string
	CanPrepareRecipe(recipe *model.Recipe) (bool, error)
	CanPrepareRecipeByName(name string) (bool, error)
	PrepareRecipe(recipe *model.Recipe) error
	PrepareRecipeByName(name string) error
	SuggestRecipes() []*model.Recipe
}

// InventorySummary aggregates the current inventory and cookbook state.
type InventorySummary struct {
	IngredientTypes int
	Lots            int
	ExpiredLots     int
	Recipes         int
	TotalValue      decimal.Decimal
}

// PantryService guards one FoodStorage and one Cookbook with a RWMutex.
// Queries share the read lock; mutations and preparations hold the write
// lock, so a recipe is checked and consumed atomically.
type PantryService struct {
	mu       sync.RWMutex
	storage  *FoodStorage
	cookbook *Cookbook
}

// NewPantryService creates a pantry with an empty inventory and cookbook.
func NewPantryService(opts ...StorageOption) *PantryService {
	return &PantryService{
		storage:  NewFoodStorage(opts...),
		cookbook: NewCookbook(),
	}
}

// Today returns the calendar date used for expiry decisions.
func (p *PantryService) Today() time.Time {
	return p.storage.Today()
}

// AddIngredient stores a copy of lot, merging it into a matching lot.
func (p *PantryService) AddIngredient(lot *model.Ingredient) error {
	_, err := p.StoreIngredient(lot)
	return err
}

// StoreIngredient is AddIngredient returning a copy of the lot as stored.
func (p *PantryService) StoreIngredient(lot *model.Ingredient) (*model.Ingredient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, err := p.storage.StoreIngredient(lot)
	if err != nil {
		metrics.RecordInventoryOperation("add", statusOf(err))
		return nil, err
	}
	metrics.RecordInventoryOperation("add", "success")
	p.updateInventoryMetrics()

	log.Debug().
		Str("ingredient", stored.Name()).
		Float64("amount", lot.Amount()).
		Float64("stored", stored.Amount()).
		Str("unit", stored.Unit()).
		Msg("Ingredient added")
	return stored, nil
}

// ConsumeIngredient removes amount of the named ingredient, soonest expiry first.
func (p *PantryService) ConsumeIngredient(name string, amount float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.storage.ConsumeIngredient(name, amount); err != nil {
		metrics.RecordInventoryOperation("consume", statusOf(err))
		log.Debug().Err(err).Str("ingredient", name).Float64("amount", amount).Msg("Consume rejected")
		return err
	}
	metrics.RecordInventoryOperation("consume", "success")
	p.updateInventoryMetrics()

	log.Info().Str("ingredient", name).Float64("amount", amount).Msg("Ingredient consumed")
	return nil
}

// Ingredients returns copies of every stored lot.
func (p *PantryService) Ingredients() []*model.Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.AllIngredients()
}

// SearchIngredients returns copies of the lots whose name contains keyword.
func (p *PantryService) SearchIngredients(keyword string) []*model.Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.SearchIngredientsByName(keyword)
}

// ExpiredIngredients returns copies of the expired lots.
func (p *PantryService) ExpiredIngredients() []*model.Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.ExpiredIngredients()
}

// TotalValue sums the price of every stored lot.
func (p *PantryService) TotalValue() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.TotalValue()
}

// Summary reports inventory and cookbook counts.
func (p *PantryService) Summary() InventorySummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return InventorySummary{
		IngredientTypes: p.storage.IngredientTypeCount(),
		Lots:            p.storage.LotCount(),
		ExpiredLots:     len(p.storage.ExpiredIngredients()),
		Recipes:         p.cookbook.Count(),
		TotalValue:      p.storage.TotalValue(),
	}
}

// InventoryReport renders the inventory grouped by ingredient name.
func (p *PantryService) InventoryReport() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.String()
}

// AddRecipe stores recipe, replacing any recipe with the same name.
func (p *PantryService) AddRecipe(recipe *model.Recipe) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.cookbook.AddRecipe(recipe); err != nil {
		return err
	}
	metrics.UpdateCookbookMetrics(p.cookbook.Count())
	log.Debug().Str("recipe", recipe.Name()).Msg("Recipe stored")
	return nil
}

// RemoveRecipe deletes the named recipe. A nil recipe means nothing was removed.
func (p *PantryService) RemoveRecipe(name string) (*model.Recipe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	recipe, err := p.cookbook.RemoveRecipe(name)
	if err != nil || recipe == nil {
		return recipe, err
	}
	metrics.UpdateCookbookMetrics(p.cookbook.Count())
	log.Debug().Str("recipe", recipe.Name()).Msg("Recipe removed")
	return recipe, nil
}

// GetRecipe returns the named recipe, or nil when absent.
func (p *PantryService) GetRecipe(name string) (*model.Recipe, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.GetRecipe(name)
}

// SearchRecipes returns the recipes whose name contains keyword.
func (p *PantryService) SearchRecipes(keyword string) []*model.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.SearchRecipes(keyword)
}

// AllRecipes returns every recipe ordered by name.
func (p *PantryService) AllRecipes() []*model.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.AllRecipes()
}

// AllRecipeNames returns the sorted display names of every recipe.
func (p *PantryService) AllRecipeNames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.AllRecipeNames()
}

// CanPrepareRecipe reports whether the inventory covers recipe.
func (p *PantryService) CanPrepareRecipe(recipe *model.Recipe) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.storage.CanPrepareRecipe(recipe)
}

// CanPrepareRecipeByName looks the recipe up and reports whether the inventory covers it.
func (p *PantryService) CanPrepareRecipeByName(name string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	recipe, err := p.lookupRecipe(name)
	if err != nil {
		return false, err
	}
	return p.cookbook.CanPrepareRecipe(recipe, p.storage), nil
}

// PrepareRecipe consumes every line of recipe, or nothing when any line is short.
func (p *PantryService) PrepareRecipe(recipe *model.Recipe) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prepare(recipe)
}

// PrepareRecipeByName looks the recipe up and prepares it.
func (p *PantryService) PrepareRecipeByName(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	recipe, err := p.lookupRecipe(name)
	if err != nil {
		return err
	}
	return p.prepare(recipe)
}

// SuggestRecipes returns every recipe the inventory currently covers.
func (p *PantryService) SuggestRecipes() []*model.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()

	// storage is never nil here, so the error path cannot trigger.
	recipes, _ := p.cookbook.SuggestRecipes(p.storage)
	return recipes
}

func (p *PantryService) prepare(recipe *model.Recipe) error {
	start := time.Now()
	err := p.storage.PrepareRecipe(recipe)
	metrics.RecordRecipePreparation(time.Since(start), statusOf(err))
	if err != nil {
		return err
	}
	p.updateInventoryMetrics()

	log.Info().Str("recipe", recipe.Name()).Msg("Recipe prepared")
	return nil
}

func (p *PantryService) lookupRecipe(name string) (*model.Recipe, error) {
	recipe, err := p.cookbook.GetRecipe(name)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, model.NotFound("Recipe %q not found", name)
	}
	return recipe, nil
}

// updateInventoryMetrics must be called with the write lock held.
func (p *PantryService) updateInventoryMetrics() {
	value, _ := p.storage.TotalValue().Float64()
	metrics.UpdateInventoryMetrics(p.storage.LotCount(), p.storage.IngredientTypeCount(), value)
}

func statusOf(err error) string {
	if err == nil {
		return "success"
	}
	if reason := model.ReasonOf(err); reason != "" {
		return string(reason)
	}
	return "error"
}

var _ Pantry = (*PantryService)(nil)
