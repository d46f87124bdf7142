package dto

import (
	"testing"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestAddIngredientRequest_ToIngredient(t *testing.T) {
	tests := []struct {
		name    string
		request AddIngredientRequest
		wantErr error
	}{
		{
			name:    "valid",
			request: AddIngredientRequest{Name: "Rice", Amount: 1.5, Unit: "kg", Price: 4.2, ExpirationDate: "2026-12-31"},
		},
		{
			name:    "day-first date is rejected",
			request: AddIngredientRequest{Name: "Rice", Amount: 1, Unit: "kg", ExpirationDate: "31-12-2026"},
			wantErr: ErrInvalidExpirationDate,
		},
		{
			name:    "past date",
			request: AddIngredientRequest{Name: "Rice", Amount: 1, Unit: "kg", ExpirationDate: "2026-05-31"},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "blank unit",
			request: AddIngredientRequest{Name: "Rice", Amount: 1, Unit: " ", ExpirationDate: "2026-12-31"},
			wantErr: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot, err := tt.request.ToIngredient(today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, lot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Rice", lot.Name())
			assert.Equal(t, "4.2", lot.Price().String())
			assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), lot.ExpirationDate())
		})
	}
}

func TestRecipeRequest_ToRecipe(t *testing.T) {
	t.Run("builds requirement lines in order", func(t *testing.T) {
		req := RecipeRequest{
			Name: "Pancakes", Description: "Fluffy", Instructions: "Fry", Servings: 2,
			Ingredients: []RecipeLineRequest{
				{Name: "Flour", Amount: 200, Unit: "g"},
				{Name: "Milk", Amount: 0.3, Unit: "l"},
			},
		}

		recipe, err := req.ToRecipe(today)

		require.NoError(t, err)
		lines := recipe.Ingredients()
		require.Len(t, lines, 2)
		assert.Equal(t, "Flour", lines[0].Name())
		assert.Equal(t, "Milk", lines[1].Name())
		assert.True(t, lines[0].Price().IsZero())
	})

	t.Run("invalid line", func(t *testing.T) {
		req := RecipeRequest{
			Name: "Pancakes", Description: "Fluffy", Instructions: "Fry", Servings: 2,
			Ingredients: []RecipeLineRequest{{Name: "Flour", Amount: -1, Unit: "g"}},
		}

		_, err := req.ToRecipe(today)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("invalid servings", func(t *testing.T) {
		req := RecipeRequest{Name: "Pancakes", Description: "Fluffy", Instructions: "Fry"}

		_, err := req.ToRecipe(today)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "expiration_date: must be a date formatted as YYYY-MM-DD", ErrInvalidExpirationDate.Error())
}
