package service

import (
	"sync"
	"testing"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPantry(t *testing.T, clock *testClock) *PantryService {
	t.Helper()
	p := NewPantryService(WithClock(clock.Now))
	require.NoError(t, p.AddIngredient(lot(t, "Tomato", 5, "pcs", 5.0, 3)))
	require.NoError(t, p.AddIngredient(lot(t, "Salt", 100, "g", 1.0, 30)))
	require.NoError(t, p.AddRecipe(recipeWith(t, "Salad",
		requirement(t, "Tomato", 3, "pcs"),
		requirement(t, "Salt", 10, "g"))))
	require.NoError(t, p.AddRecipe(recipeWith(t, "Soup",
		requirement(t, "Tomato", 4, "pcs"))))
	return p
}

func TestPantryService_PrepareRecipeByName(t *testing.T) {
	tests := []struct {
		name    string
		recipe  string
		wantErr error
		tomato  float64
	}{
		{name: "prepares and consumes", recipe: "salad", tomato: 2},
		{name: "unknown recipe", recipe: "Curry", wantErr: model.ErrNotFound, tomato: 5},
		{name: "blank name", recipe: "", wantErr: model.ErrInvalidInput, tomato: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPantry(t, newTestClock())

			err := p.PrepareRecipeByName(tt.recipe)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			tomato := p.SearchIngredients("tomato")
			require.Len(t, tomato, 1)
			assert.Equal(t, tt.tomato, tomato[0].Amount())
		})
	}
}

func TestPantryService_PrepareRecipe_Insufficient(t *testing.T) {
	p := newTestPantry(t, newTestClock())
	require.NoError(t, p.PrepareRecipeByName("Salad"))

	err := p.PrepareRecipeByName("Soup")

	assert.ErrorIs(t, err, model.ErrInsufficientQuantity)
	assert.Equal(t, 2.0, p.SearchIngredients("tomato")[0].Amount())
	assert.ErrorIs(t, p.PrepareRecipe(nil), model.ErrInvalidInput)
}

func TestPantryService_CanPrepare(t *testing.T) {
	clock := newTestClock()
	p := newTestPantry(t, clock)

	ok, err := p.CanPrepareRecipeByName("SALAD")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.CanPrepareRecipeByName("Curry")
	assert.ErrorIs(t, err, model.ErrNotFound)

	ok, err = p.CanPrepareRecipe(recipeWith(t, "Huge Salad", requirement(t, "Tomato", 50, "pcs")))
	require.NoError(t, err)
	assert.False(t, ok)

	names := func(recipes []*model.Recipe) []string {
		out := make([]string, 0, len(recipes))
		for _, r := range recipes {
			out = append(out, r.Name())
		}
		return out
	}
	assert.Equal(t, []string{"Salad", "Soup"}, names(p.SuggestRecipes()))

	clock.Advance(4)
	assert.Empty(t, p.SuggestRecipes())
}

func TestPantryService_Summary(t *testing.T) {
	clock := newTestClock()
	p := newTestPantry(t, clock)
	require.NoError(t, p.AddIngredient(lot(t, "Basil", 1, "bunch", 2.5, 1)))
	clock.Advance(2)

	summary := p.Summary()

	assert.Equal(t, 3, summary.IngredientTypes)
	assert.Equal(t, 3, summary.Lots)
	assert.Equal(t, 1, summary.ExpiredLots)
	assert.Equal(t, 2, summary.Recipes)
	assert.Equal(t, "8.5", summary.TotalValue.String())
	assert.Equal(t, "8.5", p.TotalValue().String())
	assert.Len(t, p.ExpiredIngredients(), 1)
	assert.Contains(t, p.InventoryReport(), "Ingredient: basil")
}

func TestPantryService_Recipes(t *testing.T) {
	p := newTestPantry(t, newTestClock())

	assert.Equal(t, []string{"Salad", "Soup"}, p.AllRecipeNames())
	assert.Len(t, p.AllRecipes(), 2)
	assert.Len(t, p.SearchRecipes("sou"), 1)

	removed, err := p.RemoveRecipe("soup")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "Soup", removed.Name())

	removed, err = p.RemoveRecipe("soup")
	require.NoError(t, err)
	assert.Nil(t, removed)

	got, err := p.GetRecipe("Soup")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CookbookRecipes))
}

func TestPantryService_UpdatesInventoryMetrics(t *testing.T) {
	p := newTestPantry(t, newTestClock())

	require.NoError(t, p.ConsumeIngredient("Salt", 50))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.InventoryLots))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.InventoryIngredientTypes))
	assert.InDelta(t, 5.5, testutil.ToFloat64(metrics.InventoryValue), 1e-9)
}

func TestPantryService_ConcurrentConsume(t *testing.T) {
	p := NewPantryService(WithClock(newTestClock().Now))
	require.NoError(t, p.AddIngredient(lot(t, "Rice", 100, "g", 10.0, 30)))

	var wg sync.WaitGroup
	errs := make(chan error, 150)
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- p.ConsumeIngredient("Rice", 1)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, failed int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		failed++
	}
	assert.Equal(t, 100, ok)
	assert.Equal(t, 50, failed)
	assert.Empty(t, p.Ingredients())
}
