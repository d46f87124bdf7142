package model

import (
	"fmt"
	"strings"
)

// Recipe describes a dish and the ingredient amounts it requires.
// Its ingredient lines are requirements only and never share identity with stored lots.
type Recipe struct {
	name         string
	description  string
	instructions string
	servings     int
	ingredients  []*Ingredient
}

// NewRecipe validates and creates a recipe with no ingredient lines.
func NewRecipe(name, description, instructions string, servings int) (*Recipe, error) {
	r := &Recipe{}
	if err := r.SetName(name); err != nil {
		return nil, err
	}
	if err := r.SetDescription(description); err != nil {
		return nil, err
	}
	if err := r.SetInstructions(instructions); err != nil {
		return nil, err
	}
	if err := r.SetServings(servings); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns the display name.
func (r *Recipe) Name() string { return r.name }

// Key returns the case-insensitive lookup key for the name.
func (r *Recipe) Key() string { return NormalizeKey(r.name) }

// Description returns the short overview.
func (r *Recipe) Description() string { return r.description }

// Instructions returns the preparation steps.
func (r *Recipe) Instructions() string { return r.instructions }

// Servings returns how many servings the recipe yields.
func (r *Recipe) Servings() int { return r.servings }

// SetName replaces the name.
func (r *Recipe) SetName(name string) error {
	if IsBlank(name) {
		return InvalidInput("Name must not be empty")
	}
	r.name = name
	return nil
}

// SetDescription replaces the description.
func (r *Recipe) SetDescription(description string) error {
	if IsBlank(description) {
		return InvalidInput("Description must not be empty")
	}
	r.description = description
	return nil
}

// SetInstructions replaces the instructions.
func (r *Recipe) SetInstructions(instructions string) error {
	if IsBlank(instructions) {
		return InvalidInput("Instructions must not be empty")
	}
	r.instructions = instructions
	return nil
}

// SetServings replaces the servings count.
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return InvalidInput("Servings must be greater than zero")
	}
	r.servings = servings
	return nil
}

// Ingredients returns a copy of the ordered requirement lines.
func (r *Recipe) Ingredients() []*Ingredient {
	out := make([]*Ingredient, len(r.ingredients))
	copy(out, r.ingredients)
	return out
}

// AddIngredient appends a requirement line.
func (r *Recipe) AddIngredient(ingredient *Ingredient) error {
	if ingredient == nil {
		return InvalidInput("Ingredient must not be nil")
	}
	r.ingredients = append(r.ingredients, ingredient)
	return nil
}

// RemoveIngredient removes the given line. The exact pointer must be present.
func (r *Recipe) RemoveIngredient(ingredient *Ingredient) error {
	if ingredient == nil {
		return InvalidInput("Ingredient must not be nil")
	}
	for idx, line := range r.ingredients {
		if line == ingredient {
			r.ingredients = append(r.ingredients[:idx], r.ingredients[idx+1:]...)
			return nil
		}
	}
	return NotFound("Ingredient %q not found in the recipe", ingredient.Name())
}

// String renders the recipe and its lines.
func (r *Recipe) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipe Name: %s\n", r.name)
	fmt.Fprintf(&sb, "Description: %s\n", r.description)
	fmt.Fprintf(&sb, "Instructions: %s\n", r.instructions)
	fmt.Fprintf(&sb, "Servings: %d\n", r.servings)
	sb.WriteString("Ingredients:\n")
	for _, line := range r.ingredients {
		fmt.Fprintf(&sb, "- %.2f %s %s\n", line.Amount(), line.Unit(), line.Name())
	}
	return sb.String()
}
