package service

import (
	"sort"
	"strings"

	"github.com/guttosm/food-storage/internal/domain/model"
)

// InventoryReader is the read-only view of an inventory the matcher needs.
type InventoryReader interface {
	// AvailableAmount sums the non-expired lots of name measured in unit.
	AvailableAmount(name, unit string) float64
}

// Cookbook stores recipes by case-insensitive name and matches them against
// an inventory. It is not safe for concurrent use.
type Cookbook struct {
	recipes map[string]*model.Recipe
}

// NewCookbook creates an empty cookbook.
func NewCookbook() *Cookbook {
	return &Cookbook{recipes: make(map[string]*model.Recipe)}
}

// AddRecipe stores recipe, replacing any recipe with the same name.
func (c *Cookbook) AddRecipe(recipe *model.Recipe) error {
	if recipe == nil {
		return model.InvalidInput("Recipe must not be nil")
	}
	if model.IsBlank(recipe.Name()) {
		return model.InvalidInput("Recipe name must not be blank")
	}
	c.recipes[recipe.Key()] = recipe
	return nil
}

// RemoveRecipe deletes and returns the named recipe, or nil when absent.
func (c *Cookbook) RemoveRecipe(name string) (*model.Recipe, error) {
	key, err := recipeKey(name)
	if err != nil {
		return nil, err
	}
	recipe, ok := c.recipes[key]
	if !ok {
		return nil, nil
	}
	delete(c.recipes, key)
	return recipe, nil
}

// GetRecipe returns the named recipe, or nil when absent.
func (c *Cookbook) GetRecipe(name string) (*model.Recipe, error) {
	key, err := recipeKey(name)
	if err != nil {
		return nil, err
	}
	return c.recipes[key], nil
}

// SearchRecipes returns the recipes whose name contains keyword,
// case-insensitively. A blank keyword matches nothing.
func (c *Cookbook) SearchRecipes(keyword string) []*model.Recipe {
	if model.IsBlank(keyword) {
		return []*model.Recipe{}
	}
	needle := model.NormalizeKey(keyword)
	return c.filter(func(key string, _ *model.Recipe) bool {
		return strings.Contains(key, needle)
	})
}

// AllRecipeNames returns the display names of all recipes, sorted.
func (c *Cookbook) AllRecipeNames() []string {
	names := make([]string, 0, len(c.recipes))
	for _, recipe := range c.recipes {
		names = append(names, recipe.Name())
	}
	sort.Strings(names)
	return names
}

// AllRecipes returns every recipe ordered by key.
func (c *Cookbook) AllRecipes() []*model.Recipe {
	return c.filter(func(string, *model.Recipe) bool { return true })
}

// Count returns the number of stored recipes.
func (c *Cookbook) Count() int {
	return len(c.recipes)
}

// CanPrepareRecipe reports whether inventory covers every line of recipe.
// A nil recipe or inventory is never preparable.
func (c *Cookbook) CanPrepareRecipe(recipe *model.Recipe, inventory InventoryReader) bool {
	if recipe == nil || inventory == nil {
		return false
	}
	return coversRecipe(inventory, recipe)
}

// SuggestRecipes returns every stored recipe inventory can currently cover.
// A typed nil *FoodStorage behaves as an empty inventory.
func (c *Cookbook) SuggestRecipes(inventory InventoryReader) ([]*model.Recipe, error) {
	if inventory == nil {
		return nil, model.InvalidInput("Food storage must not be nil")
	}
	return c.filter(func(_ string, recipe *model.Recipe) bool {
		return coversRecipe(inventory, recipe)
	}), nil
}

func (c *Cookbook) filter(match func(key string, recipe *model.Recipe) bool) []*model.Recipe {
	keys := make([]string, 0, len(c.recipes))
	for key := range c.recipes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*model.Recipe, 0, len(keys))
	for _, key := range keys {
		if match(key, c.recipes[key]) {
			out = append(out, c.recipes[key])
		}
	}
	return out
}

func recipeKey(name string) (string, error) {
	if model.IsBlank(name) {
		return "", model.InvalidInput("Recipe name must not be blank")
	}
	return model.NormalizeKey(name), nil
}

// coversRecipe checks the requirement lines of recipe against the same-unit,
// non-expired totals held by inventory. Lines naming the same ingredient and
// unit are summed first so repeated lines cannot each pass on the same stock.
func coversRecipe(inventory InventoryReader, recipe *model.Recipe) bool {
	type need struct {
		key, unit string
	}
	required := make(map[need]float64)
	order := make([]need, 0)
	for _, line := range recipe.Ingredients() {
		n := need{key: line.Key(), unit: line.Unit()}
		if _, seen := required[n]; !seen {
			order = append(order, n)
		}
		required[n] += line.Amount()
	}

	for _, n := range order {
		if inventory.AvailableAmount(n.key, n.unit)+amountEpsilon < required[n] {
			return false
		}
	}
	return true
}
