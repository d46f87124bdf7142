package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestPantry() (*service.PantryService, *testClock) {
	clock := &testClock{now: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)}
	return service.NewPantryService(service.WithClock(clock.Now)), clock
}

func addLot(t *testing.T, pantry *service.PantryService, name string, amount float64, unit, price, expires string) {
	t.Helper()
	date, err := time.Parse(model.DateLayout, expires)
	require.NoError(t, err)
	lot, err := model.NewIngredient(name, amount, unit, decimal.RequireFromString(price), date, pantry.Today())
	require.NoError(t, err)
	require.NoError(t, pantry.AddIngredient(lot))
}

func run(t *testing.T, pantry *service.PantryService, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	require.NoError(t, New(pantry, strings.NewReader(input), &out).Run())
	return out.String()
}

func TestConsole_AddIngredientAndTotal(t *testing.T) {
	pantry, _ := newTestPantry()

	out := run(t, pantry,
		"1", "Flour", "g", "1000", "2.5", "31-12-2026",
		"6",
		"0",
	)

	assert.Contains(t, out, "Welcome to the food saver app!")
	assert.Contains(t, out, "Ingredient added successfully.")
	assert.Contains(t, out, "Total value of ingredients: 2.50")
	assert.Contains(t, out, "Goodbye!")
	require.Len(t, pantry.Ingredients(), 1)
	assert.Equal(t, 1000.0, pantry.Ingredients()[0].Amount())
}

func TestConsole_DomainErrorsKeepLoopAlive(t *testing.T) {
	pantry, _ := newTestPantry()
	addLot(t, pantry, "Milk", 1, "l", "1.10", "2026-06-10")

	out := run(t, pantry,
		"2", "Saffron", "1",
		"2", "Milk", "5",
		"2", "Milk", "-1",
		"9", "Soup",
		"2", "Milk", "0.25",
		"0",
	)

	assert.Contains(t, out, `Ingredient "Saffron" not found in storage`)
	assert.Contains(t, out, "Insufficient quantity available for Milk. Available: 1.00 l")
	assert.Contains(t, out, "Amount to consume must be positive")
	assert.Contains(t, out, `Recipe "Soup" not found`)
	assert.Contains(t, out, "Ingredient consumed successfully.")
	assert.Equal(t, 0.75, pantry.Ingredients()[0].Amount())
}

func TestConsole_MenuNavigation(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		contains []string
	}{
		{
			name:     "invalid choices",
			lines:    []string{"42", "-1", "menu", "0"},
			contains: []string{"Invalid action. Please try again.", "Please enter a valid integer."},
		},
		{
			name:     "empty inventory",
			lines:    []string{"3", "5", "6", "0"},
			contains: []string{"No ingredients in storage.", "No expired ingredients found."},
		},
		{
			name:     "empty cookbook",
			lines:    []string{"8", "10", "0"},
			contains: []string{"No recipes to display.", "No recipes can be made with the ingredients in the food storage."},
		},
		{
			name:     "lists every action",
			lines:    []string{"0"},
			contains: []string{" 1. Add an ingredient", "11. Prepare a recipe", " 0. Exit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pantry, _ := newTestPantry()

			out := run(t, pantry, tt.lines...)

			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConsole_SearchExpiredAndInventory(t *testing.T) {
	pantry, clock := newTestPantry()
	addLot(t, pantry, "Milk", 1, "l", "1.10", "2026-06-02")
	addLot(t, pantry, "Oat milk", 1, "l", "2.00", "2026-09-01")
	addLot(t, pantry, "Flour", 500, "g", "1.00", "2026-12-01")
	clock.now = clock.now.AddDate(0, 0, 5)

	out := run(t, pantry,
		"4", "milk",
		"4", "rice",
		"5",
		"3",
		"0",
	)

	assert.Contains(t, out, "Found 2 ingredients:")
	assert.Contains(t, out, "No ingredients found.")
	assert.Contains(t, out, "Found 1 ingredient that are expired:")
	assert.Contains(t, out, "Expiration date: 2026-06-02")
	assert.Contains(t, out, "Food Storage Contents:")
	assert.Contains(t, out, "Ingredient: flour")
}

func TestConsole_RecipeFlow(t *testing.T) {
	pantry, _ := newTestPantry()
	addLot(t, pantry, "Flour", 1000, "g", "2.00", "2026-12-31")

	out := run(t, pantry,
		"7", "Pancakes", "Fluffy pancakes", "Mix and fry", "2",
		"maybe",
		"yes", "Flour", "g", "200",
		"done",
		"8",
		"9", "pancakes",
		"10",
		"11", "Pancakes",
		"0",
	)

	assert.Contains(t, out, "Invalid input. Please type 'yes' to add an ingredient or 'done' to finish.")
	assert.Contains(t, out, "Ingredient added to the recipe.")
	assert.Contains(t, out, "Recipe added successfully!")
	assert.Contains(t, out, "Recipe #1:")
	assert.Contains(t, out, "Recipe Name: Pancakes")
	assert.Contains(t, out, "- 200.00 g Flour")
	assert.Contains(t, out, "You can prepare the recipe!")
	assert.Contains(t, out, "- Pancakes")
	assert.Contains(t, out, "Recipe prepared.")

	require.Len(t, pantry.Ingredients(), 1)
	assert.Equal(t, 800.0, pantry.Ingredients()[0].Amount())
	assert.True(t, decimal.RequireFromString("1.6").Equal(pantry.TotalValue()))
}

func TestConsole_RecipeWithoutLinesIsRejected(t *testing.T) {
	pantry, _ := newTestPantry()

	out := run(t, pantry,
		"7", "Toast", "Crispy bread", "Toast it", "1", "done",
		"11", "Toast",
		"0",
	)

	assert.Contains(t, out, "Recipe must have at least one ingredient.")
	assert.Contains(t, out, `Recipe "Toast" not found`)
	assert.Empty(t, pantry.AllRecipeNames())
}

func TestConsole_PrepareWithoutStock(t *testing.T) {
	pantry, _ := newTestPantry()

	out := run(t, pantry,
		"7", "Pancakes", "Fluffy pancakes", "Mix and fry", "2",
		"yes", "Flour", "g", "200",
		"done",
		"9", "Pancakes",
		"11", "Pancakes",
		"0",
	)

	assert.Contains(t, out, "You cannot prepare the recipe.")
	assert.Contains(t, out, "Insufficient non-expired ingredients to prepare Pancakes")
}

func TestConsole_Run_EndOfInput(t *testing.T) {
	pantry, _ := newTestPantry()

	t.Run("at the menu", func(t *testing.T) {
		var out bytes.Buffer
		assert.NoError(t, New(pantry, strings.NewReader(""), &out).Run())
	})

	t.Run("inside an action", func(t *testing.T) {
		var out bytes.Buffer
		assert.NoError(t, New(pantry, strings.NewReader("1\nFlour\n"), &out).Run())
		assert.Empty(t, pantry.Ingredients())
	})

	t.Run("read error is returned", func(t *testing.T) {
		var out bytes.Buffer
		boom := errors.New("boom")

		err := New(pantry, iotest.ErrReader(boom), &out).Run()

		assert.ErrorIs(t, err, boom)
	})
}
