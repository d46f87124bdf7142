package dto

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeInternal, "test error").WithRequestID("test-id")

	assert.Equal(t, "test-id", err.RequestID)
	assert.Equal(t, ErrCodeInternal, err.Error)
	assert.Equal(t, "test error", err.Message)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestStatusFromReason(t *testing.T) {
	tests := []struct {
		reason     model.Reason
		wantStatus int
		wantCode   string
	}{
		{model.ReasonInvalidInput, http.StatusBadRequest, ErrCodeInvalidRequest},
		{model.ReasonNotFound, http.StatusNotFound, ErrCodeNotFound},
		{model.ReasonInsufficientQuantity, http.StatusConflict, ErrCodeInsufficientQuantity},
		{model.Reason(""), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			status, code := StatusFromReason(tt.reason)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeInvalidRequest, "test message")

	assert.Equal(t, ErrCodeInvalidRequest, err.Error)
	assert.Equal(t, "test message", err.Message)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestNewIngredientResponse(t *testing.T) {
	expires := today.AddDate(0, 0, 3)
	lot, err := model.NewIngredient("Rice", 2, "kg", decimal.RequireFromString("3.10"), expires, today)
	require.NoError(t, err)

	fresh := NewIngredientResponse(lot, today)
	assert.Equal(t, IngredientResponse{
		Name: "Rice", Amount: 2, Unit: "kg", Price: 3.1, ExpirationDate: "2026-06-04",
	}, fresh)

	later := NewIngredientResponse(lot, today.AddDate(0, 0, 4))
	assert.True(t, later.Expired)
}

func TestNewIngredientResponses_Empty(t *testing.T) {
	out := NewIngredientResponses(nil, today)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewRecipeResponse(t *testing.T) {
	recipe, err := model.NewRecipe("Pancakes", "Fluffy", "Fry", 4)
	require.NoError(t, err)
	flour, err := model.NewRequirement("Flour", 200, "g", today)
	require.NoError(t, err)
	require.NoError(t, recipe.AddIngredient(flour))

	resp := NewRecipeResponse(recipe)

	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, 4, resp.Servings)
	assert.Equal(t, []RecipeLineResponse{{Name: "Flour", Amount: 200, Unit: "g"}}, resp.Ingredients)
}

func TestNewInventorySummaryResponse(t *testing.T) {
	resp := NewInventorySummaryResponse(2, 3, 1, 4, decimal.RequireFromString("10.006"), today)

	assert.Equal(t, 10.01, resp.TotalValue)
	assert.Equal(t, "2026-06-01", resp.Today)
	assert.Equal(t, 3, resp.Lots)
}

func TestNewAuditLogsResponse(t *testing.T) {
	id := primitive.NewObjectID()
	entries := []model.LogEntry{{ID: id, Level: "info", Action: model.ActionPrepareRecipe, Actor: "key-1"}}

	resp := NewAuditLogsResponse(entries, 9, 50, 0)

	require.Len(t, resp.Entries, 1)
	assert.Equal(t, id.Hex(), resp.Entries[0].ID)
	assert.Equal(t, model.ActionPrepareRecipe, resp.Entries[0].Action)
	assert.Equal(t, int64(9), resp.Total)
}
