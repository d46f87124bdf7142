// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model: dates travel as
// YYYY-MM-DD strings and prices as JSON numbers.
package dto

import (
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrInvalidExpirationDate is returned when expiration_date is not YYYY-MM-DD.
var ErrInvalidExpirationDate = &ValidationError{
	Field:   "expiration_date",
	Message: "must be a date formatted as YYYY-MM-DD",
}

// AddIngredientRequest is the body of POST /api/ingredients.
//
// @Description Lot to store; merged into an existing lot with the same name, unit and expiration date
type AddIngredientRequest struct {
	Name           string  `json:"name" binding:"required" example:"Rice"`
	Amount         float64 `json:"amount" binding:"gte=0" example:"1.5"`
	Unit           string  `json:"unit" binding:"required" example:"kg"`
	Price          float64 `json:"price" binding:"gte=0" example:"4.20"`
	ExpirationDate string  `json:"expiration_date" binding:"required" example:"2026-12-31"`
} // @name AddIngredientRequest

// ToIngredient validates the request against today and builds the lot.
func (r *AddIngredientRequest) ToIngredient(today time.Time) (*model.Ingredient, error) {
	expires, err := time.Parse(model.DateLayout, r.ExpirationDate)
	if err != nil {
		return nil, ErrInvalidExpirationDate
	}
	return model.NewIngredient(r.Name, r.Amount, r.Unit, decimal.NewFromFloat(r.Price), expires, today)
}

// ConsumeIngredientRequest is the body of POST /api/ingredients/consume.
//
// @Description Amount of an ingredient to take from storage, soonest expiry first
type ConsumeIngredientRequest struct {
	Name   string  `json:"name" binding:"required" example:"Rice"`
	Amount float64 `json:"amount" binding:"required,gt=0" example:"0.5"`
} // @name ConsumeIngredientRequest

// RecipeLineRequest is one ingredient requirement of a recipe.
type RecipeLineRequest struct {
	Name   string  `json:"name" binding:"required" example:"Flour"`
	Amount float64 `json:"amount" binding:"gte=0" example:"200"`
	Unit   string  `json:"unit" binding:"required" example:"g"`
} // @name RecipeLineRequest

// RecipeRequest is the body of POST /api/recipes.
//
// @Description Recipe to store; replaces any recipe with the same name
type RecipeRequest struct {
	Name         string              `json:"name" binding:"required" example:"Pancakes"`
	Description  string              `json:"description" binding:"required" example:"Fluffy breakfast pancakes"`
	Instructions string              `json:"instructions" binding:"required" example:"Mix everything and fry"`
	Servings     int                 `json:"servings" binding:"required,gt=0" example:"4"`
	Ingredients  []RecipeLineRequest `json:"ingredients" binding:"dive"`
} // @name RecipeRequest

// ToRecipe validates the request and builds the recipe with its requirement lines.
func (r *RecipeRequest) ToRecipe(today time.Time) (*model.Recipe, error) {
	recipe, err := model.NewRecipe(r.Name, r.Description, r.Instructions, r.Servings)
	if err != nil {
		return nil, err
	}
	for _, line := range r.Ingredients {
		ingredient, err := model.NewRequirement(line.Name, line.Amount, line.Unit, today)
		if err != nil {
			return nil, err
		}
		if err := recipe.AddIngredient(ingredient); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}
