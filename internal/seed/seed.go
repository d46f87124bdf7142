// Package seed imports an initial catalog of ingredient lots and recipes from YAML.
//
// A catalog looks like:
//
//	ingredients:
//	  - name: Flour
//	    amount: 1000
//	    unit: g
//	    price: "2.50"
//	    expires: 31-12-2026
//	  - name: Milk
//	    amount: 1
//	    unit: l
//	    price: 1.10
//	    expires_in_days: 7
//	recipes:
//	  - name: Pancakes
//	    description: Fluffy breakfast pancakes
//	    instructions: Mix and fry.
//	    servings: 2
//	    ingredients:
//	      - {name: Flour, amount: 200, unit: g}
//
// Loading is a one-way import: nothing is ever written back.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/logger"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML document root.
type Catalog struct {
	Ingredients []LotEntry    `yaml:"ingredients"`
	Recipes     []RecipeEntry `yaml:"recipes"`
}

// LotEntry describes one inventory lot. Exactly one of Expires and
// ExpiresInDays must be set.
type LotEntry struct {
	Name          string  `yaml:"name"`
	Amount        float64 `yaml:"amount"`
	Unit          string  `yaml:"unit"`
	Price         string  `yaml:"price"`
	Expires       string  `yaml:"expires"`
	ExpiresInDays *int    `yaml:"expires_in_days"`
}

// RecipeEntry describes one recipe and its requirement lines.
type RecipeEntry struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Instructions string      `yaml:"instructions"`
	Servings     int         `yaml:"servings"`
	Ingredients  []LineEntry `yaml:"ingredients"`
}

// LineEntry is a recipe requirement line.
type LineEntry struct {
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
	Unit   string  `yaml:"unit"`
}

// Result counts what an import did.
type Result struct {
	Lots           int
	Recipes        int
	SkippedLots    int
	SkippedRecipes int
}

// Parse decodes a catalog. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &catalog, nil
}

// LoadFile parses the catalog at path and imports it into pantry.
func LoadFile(path string, pantry service.Pantry) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := Parse(f)
	if err != nil {
		return Result{}, err
	}

	result := Import(catalog, pantry)
	log := logger.Component("seed")
	log.Info().
		Str("file", path).
		Int("lots", result.Lots).
		Int("recipes", result.Recipes).
		Int("skipped_lots", result.SkippedLots).
		Int("skipped_recipes", result.SkippedRecipes).
		Msg("Catalog imported")
	return result, nil
}

// Import adds every valid entry of catalog to pantry. Invalid entries are
// logged and skipped so one bad line does not block startup.
func Import(catalog *Catalog, pantry service.Pantry) Result {
	var result Result
	if catalog == nil {
		return result
	}
	log := logger.Component("seed")
	today := pantry.Today()

	for i, entry := range catalog.Ingredients {
		lot, err := entry.toIngredient(today)
		if err == nil {
			err = pantry.AddIngredient(lot)
		}
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("name", entry.Name).Msg("Skipping catalog ingredient")
			result.SkippedLots++
			continue
		}
		result.Lots++
	}

	for i, entry := range catalog.Recipes {
		recipe, err := entry.toRecipe(today)
		if err == nil {
			err = pantry.AddRecipe(recipe)
		}
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("name", entry.Name).Msg("Skipping catalog recipe")
			result.SkippedRecipes++
			continue
		}
		result.Recipes++
	}

	return result
}

func (e LotEntry) toIngredient(today time.Time) (*model.Ingredient, error) {
	price := decimal.Zero
	if s := strings.TrimSpace(e.Price); s != "" {
		p, err := decimal.NewFromString(s)
		if err != nil {
			return nil, model.InvalidInput("Price %q is not a number", e.Price)
		}
		price = p
	}

	expires, err := e.expirationDate(today)
	if err != nil {
		return nil, err
	}
	return model.NewIngredient(e.Name, e.Amount, e.Unit, price, expires, today)
}

func (e LotEntry) expirationDate(today time.Time) (time.Time, error) {
	hasDate := strings.TrimSpace(e.Expires) != ""
	switch {
	case hasDate && e.ExpiresInDays != nil:
		return time.Time{}, model.InvalidInput("Set either expires or expires_in_days, not both")
	case e.ExpiresInDays != nil:
		return today.AddDate(0, 0, *e.ExpiresInDays), nil
	case hasDate:
		return ParseDate(e.Expires)
	default:
		return time.Time{}, model.InvalidInput("Expiration date is required")
	}
}

func (e RecipeEntry) toRecipe(today time.Time) (*model.Recipe, error) {
	recipe, err := model.NewRecipe(e.Name, e.Description, e.Instructions, e.Servings)
	if err != nil {
		return nil, err
	}
	for _, line := range e.Ingredients {
		requirement, err := model.NewRequirement(line.Name, line.Amount, line.Unit, today)
		if err != nil {
			return nil, err
		}
		if err := recipe.AddIngredient(requirement); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// ParseDate accepts dd-MM-yyyy or ISO yyyy-MM-dd.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{model.InputDateLayout, model.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t), nil
		}
	}
	return time.Time{}, model.InvalidInput("Date %q must be dd-MM-yyyy or yyyy-MM-dd", s)
}
